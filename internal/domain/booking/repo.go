package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/placements/placements/internal/domain/planning"
)

type Repository interface {
	Create(ctx context.Context, b *SpaceBooking, characteristicIDs []uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*SpaceBooking, error)
	Cancel(ctx context.Context, id uuid.UUID, at time.Time) error
	ListByPremises(ctx context.Context, premisesID uuid.UUID, start, end time.Time, limit, offset int) ([]*SpaceBooking, int, error)

	// PlanningBookings is the planning engine's view: non-cancelled bookings
	// intersecting [start, end], optionally excluding one booking entirely.
	// Satisfies planning.BookingSource.
	PlanningBookings(ctx context.Context, premisesID uuid.UUID, start, end time.Time, excludeBookingID *uuid.UUID) ([]planning.SpaceBooking, error)
}
