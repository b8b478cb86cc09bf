package planning

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// BedSummarySource supplies the bed inventory of a premises. Implemented by
// the premises repository.
type BedSummarySource interface {
	BedSummaries(ctx context.Context, premisesID uuid.UUID, includeEnded bool) ([]BedSummary, error)
}

// OutOfServiceSource supplies the out-of-service windows that could intersect
// a date range. Implemented by the premises repository.
type OutOfServiceSource interface {
	OutOfServiceWindows(ctx context.Context, premisesID uuid.UUID, start, end time.Time) ([]OutOfServiceWindow, error)
}

// BookingSource supplies the non-cancelled space bookings of a premises
// intersecting a date range, optionally excluding a single booking from all
// computations. Implemented by the booking repository.
type BookingSource interface {
	PlanningBookings(ctx context.Context, premisesID uuid.UUID, start, end time.Time, excludeBookingID *uuid.UUID) ([]SpaceBooking, error)
}

// Service runs the planning engine over collaborator-supplied data. It holds
// no state of its own; every call is a fresh pure computation over what the
// sources return.
type Service struct {
	beds     BedSummarySource
	oos      OutOfServiceSource
	bookings BookingSource
	logger   zerolog.Logger
}

func NewService(beds BedSummarySource, oos OutOfServiceSource, bookings BookingSource, logger zerolog.Logger) *Service {
	return &Service{beds: beds, oos: oos, bookings: bookings, logger: logger}
}

// PlanPremises produces the day-by-day bed plan for one premises across an
// inclusive date range. Ended beds are included so historic days still show
// their full inventory.
func (s *Service) PlanPremises(ctx context.Context, premisesID uuid.UUID, start, end time.Time) (*PremisePlan, error) {
	beds, windows, bookings, err := s.load(ctx, premisesID, start, end, nil)
	if err != nil {
		return nil, err
	}

	plan := Plan(start, end, beds, windows, bookings)

	unplanned := 0
	for _, day := range plan.Days {
		unplanned += len(day.Result.Unplanned)
	}
	s.logger.Debug().
		Str("premises_id", premisesID.String()).
		Str("start_date", plan.StartDate.Format(DayFormat)).
		Str("end_date", plan.EndDate.Format(DayFormat)).
		Int("beds", len(plan.Beds)).
		Int("unplanned_booking_days", unplanned).
		Msg("premises planned")

	return &plan, nil
}

// Capacity computes the capacity breakdown for each requested premises,
// optionally excluding one booking from every count.
func (s *Service) Capacity(ctx context.Context, premisesIDs []uuid.UUID, start, end time.Time, excludeBookingID *uuid.UUID) ([]PremiseCapacity, error) {
	capacities := make([]PremiseCapacity, 0, len(premisesIDs))
	for _, premisesID := range premisesIDs {
		beds, windows, bookings, err := s.load(ctx, premisesID, start, end, excludeBookingID)
		if err != nil {
			return nil, err
		}
		capacities = append(capacities, CapacityForPremises(premisesID, start, end, beds, windows, bookings))
	}
	return capacities, nil
}

// PremisesOverbookingRanges returns the maximal contiguous runs of overbooked
// days for one premises across an inclusive range.
func (s *Service) PremisesOverbookingRanges(ctx context.Context, premisesID uuid.UUID, start, end time.Time) ([]OverbookingRange, error) {
	capacities, err := s.Capacity(ctx, []uuid.UUID{premisesID}, start, end, nil)
	if err != nil {
		return nil, err
	}

	var overbooked []PremiseCapacityForDay
	for _, day := range capacities[0].Days {
		if day.IsOverbooked() {
			overbooked = append(overbooked, day)
		}
	}
	return OverbookingRanges(overbooked), nil
}

func (s *Service) load(ctx context.Context, premisesID uuid.UUID, start, end time.Time, excludeBookingID *uuid.UUID) ([]BedSummary, []OutOfServiceWindow, []SpaceBooking, error) {
	beds, err := s.beds.BedSummaries(ctx, premisesID, true)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load bed summaries for %s: %w", premisesID, err)
	}
	windows, err := s.oos.OutOfServiceWindows(ctx, premisesID, start, end)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load out-of-service windows for %s: %w", premisesID, err)
	}
	bookings, err := s.bookings.PlanningBookings(ctx, premisesID, start, end, excludeBookingID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load bookings for %s: %w", premisesID, err)
	}
	return beds, windows, bookings, nil
}
