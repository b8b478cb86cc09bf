// Package premises manages the physical inventory of the service: premises,
// their rooms and beds, the characteristic catalogue, and out-of-service bed
// records. It also supplies the bed summaries and out-of-service windows the
// planning engine consumes.
package premises

import (
	"time"

	"github.com/google/uuid"
)

// Premises statuses.
const (
	StatusActive   = "active"
	StatusArchived = "archived"
)

// Premises maps to the premises table.
type Premises struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	ApCode    string    `db:"ap_code" json:"ap_code"`
	Postcode  string    `db:"postcode" json:"postcode"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Room maps to the rooms table. Characteristics are the full characteristic
// rows linked through room_characteristics.
type Room struct {
	ID              uuid.UUID        `db:"id" json:"id"`
	PremisesID      uuid.UUID        `db:"premises_id" json:"premises_id"`
	Name            string           `db:"name" json:"name"`
	Code            string           `db:"code" json:"code"`
	Characteristics []Characteristic `json:"characteristics"`
	CreatedAt       time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time        `db:"updated_at" json:"updated_at"`
}

// Bed maps to the beds table. A non-nil EndDate means the bed's lifecycle
// ends on that date: it is active strictly before it and ended from it on.
type Bed struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	RoomID    uuid.UUID  `db:"room_id" json:"room_id"`
	Name      string     `db:"name" json:"name"`
	Code      string     `db:"code" json:"code"`
	EndDate   *time.Time `db:"end_date" json:"end_date,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
}

// Characteristic maps to the characteristics table: the seeded catalogue of
// room attributes bookings can require.
type Characteristic struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	PropertyName string    `db:"property_name" json:"property_name"`
	Weighting    int       `db:"weighting" json:"weighting"`
	IsSingleRoom bool      `db:"is_single_room" json:"is_single_room"`
}

// OutOfServiceBed maps to the out_of_service_beds table: a temporary window
// during which a bed is unavailable. Both dates are inclusive.
type OutOfServiceBed struct {
	ID         uuid.UUID `db:"id" json:"id"`
	BedID      uuid.UUID `db:"bed_id" json:"bed_id"`
	StartDate  time.Time `db:"start_date" json:"start_date"`
	EndDate    time.Time `db:"end_date" json:"end_date"`
	ReasonID   uuid.UUID `db:"reason_id" json:"reason_id"`
	ReasonName string    `json:"reason_name,omitempty"`
	Notes      *string   `db:"notes" json:"notes,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// OutOfServiceReason maps to the out_of_service_bed_reasons table.
type OutOfServiceReason struct {
	ID   uuid.UUID `db:"id" json:"id"`
	Name string    `db:"name" json:"name"`
}
