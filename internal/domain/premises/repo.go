package premises

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/placements/placements/internal/domain/planning"
)

type PremisesRepository interface {
	Create(ctx context.Context, p *Premises) error
	GetByID(ctx context.Context, id uuid.UUID) (*Premises, error)
	Update(ctx context.Context, p *Premises) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*Premises, int, error)
}

type RoomRepository interface {
	Create(ctx context.Context, r *Room, characteristicIDs []uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*Room, error)
	ListByPremises(ctx context.Context, premisesID uuid.UUID) ([]*Room, error)
	SetCharacteristics(ctx context.Context, roomID uuid.UUID, characteristicIDs []uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type BedRepository interface {
	Create(ctx context.Context, b *Bed) error
	GetByID(ctx context.Context, id uuid.UUID) (*Bed, error)
	ListByPremises(ctx context.Context, premisesID uuid.UUID, includeEnded bool) ([]*Bed, error)
	Update(ctx context.Context, b *Bed) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type CharacteristicRepository interface {
	List(ctx context.Context) ([]Characteristic, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]Characteristic, error)
	GetByPropertyNames(ctx context.Context, propertyNames []string) ([]Characteristic, error)
}

type OutOfServiceRepository interface {
	Create(ctx context.Context, o *OutOfServiceBed) error
	GetByID(ctx context.Context, id uuid.UUID) (*OutOfServiceBed, error)
	Update(ctx context.Context, o *OutOfServiceBed) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByPremises(ctx context.Context, premisesID uuid.UUID, start, end time.Time, limit, offset int) ([]*OutOfServiceBed, int, error)
	ListReasons(ctx context.Context) ([]OutOfServiceReason, error)
}

// PlanningQueries is the read surface consumed by the planning engine. The
// Postgres repository satisfies planning.BedSummarySource and
// planning.OutOfServiceSource through it.
type PlanningQueries interface {
	BedSummaries(ctx context.Context, premisesID uuid.UUID, includeEnded bool) ([]planning.BedSummary, error)
	OutOfServiceWindows(ctx context.Context, premisesID uuid.UUID, start, end time.Time) ([]planning.OutOfServiceWindow, error)
}
