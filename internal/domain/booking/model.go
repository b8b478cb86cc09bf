// Package booking manages space bookings: requested placements for specific
// nights at a premises, optionally requiring room characteristics. Cancelled
// bookings are kept for audit but never reach the planning engine.
package booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/placements/placements/internal/domain/premises"
)

// SpaceBooking maps to the space_bookings table. CanonicalDepartureDate is a
// checkout day: the booking occupies arrival date up to but not including it.
type SpaceBooking struct {
	ID                     uuid.UUID                 `db:"id" json:"id"`
	PremisesID             uuid.UUID                 `db:"premises_id" json:"premises_id"`
	CRN                    string                    `db:"crn" json:"crn"`
	CanonicalArrivalDate   time.Time                 `db:"canonical_arrival_date" json:"canonical_arrival_date"`
	CanonicalDepartureDate time.Time                 `db:"canonical_departure_date" json:"canonical_departure_date"`
	CancelledAt            *time.Time                `db:"cancelled_at" json:"cancelled_at,omitempty"`
	Criteria               []premises.Characteristic `json:"criteria"`
	CreatedAt              time.Time                 `db:"created_at" json:"created_at"`
	UpdatedAt              time.Time                 `db:"updated_at" json:"updated_at"`
}

// IsCancelled reports whether the booking has been cancelled.
func (b *SpaceBooking) IsCancelled() bool {
	return b.CancelledAt != nil
}
