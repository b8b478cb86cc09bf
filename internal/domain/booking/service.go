package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/placements/placements/internal/domain/premises"
)

// CharacteristicResolver resolves requested characteristic property names to
// catalogue rows, so a booking can never reference an unknown criterion.
type CharacteristicResolver interface {
	GetByPropertyNames(ctx context.Context, propertyNames []string) ([]premises.Characteristic, error)
}

type Service struct {
	bookings        Repository
	characteristics CharacteristicResolver
}

func NewService(bookings Repository, characteristics CharacteristicResolver) *Service {
	return &Service{bookings: bookings, characteristics: characteristics}
}

// Create validates and stores a new space booking. Criteria are supplied as
// characteristic property names and resolved against the catalogue.
func (s *Service) Create(ctx context.Context, b *SpaceBooking, criteria []string) error {
	if b.PremisesID == uuid.Nil {
		return fmt.Errorf("premises_id is required")
	}
	if b.CRN == "" {
		return fmt.Errorf("crn is required")
	}
	if b.CanonicalArrivalDate.IsZero() || b.CanonicalDepartureDate.IsZero() {
		return fmt.Errorf("canonical_arrival_date and canonical_departure_date are required")
	}
	if !b.CanonicalDepartureDate.After(b.CanonicalArrivalDate) {
		return fmt.Errorf("canonical_departure_date must be after canonical_arrival_date")
	}

	var characteristicIDs []uuid.UUID
	if len(criteria) > 0 {
		resolved, err := s.characteristics.GetByPropertyNames(ctx, criteria)
		if err != nil {
			return err
		}
		if len(resolved) != len(criteria) {
			return fmt.Errorf("unknown characteristic in criteria %v", criteria)
		}
		b.Criteria = resolved
		for _, c := range resolved {
			characteristicIDs = append(characteristicIDs, c.ID)
		}
	}

	return s.bookings.Create(ctx, b, characteristicIDs)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*SpaceBooking, error) {
	return s.bookings.GetByID(ctx, id)
}

// Cancel marks the booking cancelled, removing it from all future planning
// runs. Cancelling twice is a no-op.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID) error {
	if _, err := s.bookings.GetByID(ctx, id); err != nil {
		return fmt.Errorf("booking %s: %w", id, err)
	}
	return s.bookings.Cancel(ctx, id, time.Now().UTC())
}

func (s *Service) ListByPremises(ctx context.Context, premisesID uuid.UUID, start, end time.Time, limit, offset int) ([]*SpaceBooking, int, error) {
	return s.bookings.ListByPremises(ctx, premisesID, start, end, limit, offset)
}
