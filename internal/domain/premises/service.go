package premises

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	premises        PremisesRepository
	rooms           RoomRepository
	beds            BedRepository
	characteristics CharacteristicRepository
	outOfService    OutOfServiceRepository
}

func NewService(p PremisesRepository, r RoomRepository, b BedRepository, c CharacteristicRepository, o OutOfServiceRepository) *Service {
	return &Service{premises: p, rooms: r, beds: b, characteristics: c, outOfService: o}
}

// -- Premises --

func (s *Service) CreatePremises(ctx context.Context, p *Premises) error {
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	if p.Status != "" && p.Status != StatusActive && p.Status != StatusArchived {
		return fmt.Errorf("invalid premises status: %s", p.Status)
	}
	return s.premises.Create(ctx, p)
}

func (s *Service) GetPremises(ctx context.Context, id uuid.UUID) (*Premises, error) {
	return s.premises.GetByID(ctx, id)
}

func (s *Service) UpdatePremises(ctx context.Context, p *Premises) error {
	if p.Status != "" && p.Status != StatusActive && p.Status != StatusArchived {
		return fmt.Errorf("invalid premises status: %s", p.Status)
	}
	return s.premises.Update(ctx, p)
}

func (s *Service) DeletePremises(ctx context.Context, id uuid.UUID) error {
	return s.premises.Delete(ctx, id)
}

func (s *Service) ListPremises(ctx context.Context, limit, offset int) ([]*Premises, int, error) {
	return s.premises.List(ctx, limit, offset)
}

// -- Rooms --

func (s *Service) CreateRoom(ctx context.Context, r *Room, characteristicIDs []uuid.UUID) error {
	if r.PremisesID == uuid.Nil {
		return fmt.Errorf("premises_id is required")
	}
	if r.Name == "" {
		return fmt.Errorf("name is required")
	}
	if err := s.validateCharacteristicIDs(ctx, characteristicIDs); err != nil {
		return err
	}
	return s.rooms.Create(ctx, r, characteristicIDs)
}

func (s *Service) GetRoom(ctx context.Context, id uuid.UUID) (*Room, error) {
	return s.rooms.GetByID(ctx, id)
}

func (s *Service) ListRooms(ctx context.Context, premisesID uuid.UUID) ([]*Room, error) {
	return s.rooms.ListByPremises(ctx, premisesID)
}

func (s *Service) SetRoomCharacteristics(ctx context.Context, roomID uuid.UUID, characteristicIDs []uuid.UUID) error {
	if err := s.validateCharacteristicIDs(ctx, characteristicIDs); err != nil {
		return err
	}
	return s.rooms.SetCharacteristics(ctx, roomID, characteristicIDs)
}

func (s *Service) DeleteRoom(ctx context.Context, id uuid.UUID) error {
	return s.rooms.Delete(ctx, id)
}

func (s *Service) validateCharacteristicIDs(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	known, err := s.characteristics.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}
	if len(known) != len(ids) {
		return fmt.Errorf("unknown characteristic id in %v", ids)
	}
	return nil
}

// -- Beds --

func (s *Service) CreateBed(ctx context.Context, b *Bed) error {
	if b.RoomID == uuid.Nil {
		return fmt.Errorf("room_id is required")
	}
	if b.Name == "" {
		return fmt.Errorf("name is required")
	}
	return s.beds.Create(ctx, b)
}

func (s *Service) GetBed(ctx context.Context, id uuid.UUID) (*Bed, error) {
	return s.beds.GetByID(ctx, id)
}

func (s *Service) ListBeds(ctx context.Context, premisesID uuid.UUID, includeEnded bool) ([]*Bed, error) {
	return s.beds.ListByPremises(ctx, premisesID, includeEnded)
}

func (s *Service) UpdateBed(ctx context.Context, b *Bed) error {
	return s.beds.Update(ctx, b)
}

func (s *Service) DeleteBed(ctx context.Context, id uuid.UUID) error {
	return s.beds.Delete(ctx, id)
}

// -- Characteristics --

func (s *Service) ListCharacteristics(ctx context.Context) ([]Characteristic, error) {
	return s.characteristics.List(ctx)
}

// -- Out-of-service beds --

func (s *Service) CreateOutOfServiceBed(ctx context.Context, o *OutOfServiceBed) error {
	if o.BedID == uuid.Nil {
		return fmt.Errorf("bed_id is required")
	}
	if o.StartDate.IsZero() || o.EndDate.IsZero() {
		return fmt.Errorf("start_date and end_date are required")
	}
	if o.EndDate.Before(o.StartDate) {
		return fmt.Errorf("end_date must not be before start_date")
	}
	if _, err := s.beds.GetByID(ctx, o.BedID); err != nil {
		return fmt.Errorf("bed %s: %w", o.BedID, err)
	}
	return s.outOfService.Create(ctx, o)
}

func (s *Service) GetOutOfServiceBed(ctx context.Context, id uuid.UUID) (*OutOfServiceBed, error) {
	return s.outOfService.GetByID(ctx, id)
}

func (s *Service) UpdateOutOfServiceBed(ctx context.Context, o *OutOfServiceBed) error {
	if o.EndDate.Before(o.StartDate) {
		return fmt.Errorf("end_date must not be before start_date")
	}
	return s.outOfService.Update(ctx, o)
}

func (s *Service) DeleteOutOfServiceBed(ctx context.Context, id uuid.UUID) error {
	return s.outOfService.Delete(ctx, id)
}

func (s *Service) ListOutOfServiceBeds(ctx context.Context, premisesID uuid.UUID, start, end time.Time, limit, offset int) ([]*OutOfServiceBed, int, error) {
	return s.outOfService.ListByPremises(ctx, premisesID, start, end, limit, offset)
}

func (s *Service) ListOutOfServiceReasons(ctx context.Context) ([]OutOfServiceReason, error) {
	return s.outOfService.ListReasons(ctx)
}
