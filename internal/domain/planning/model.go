// Package planning implements the space planning engine: given the physical
// bed inventory of a premises and the space bookings requested for a date
// range, it decides which bookings occupy which beds on each day, which
// bookings cannot be accommodated, and how demand compares to capacity per
// characteristic.
//
// The day planner is a greedy heuristic, not an exact solver. It places the
// most constrained bookings first and never revisits an assignment, so a
// feasible global solution can be missed; that trade-off is deliberate and
// changing it would change planning outcomes for existing premises.
//
// Everything in this package is a pure function of its inputs. No state is
// kept between runs and no I/O happens here; the repositories feeding the
// engine live in the premises and booking packages.
package planning

import (
	"time"

	"github.com/google/uuid"
)

// Characteristic is a tagged attribute a room can possess and a booking can
// require, e.g. en-suite or wheelchair-designated. Weighting orders bookings
// during planning: a booking needing heavily weighted characteristics is
// placed before loosely constrained ones. IsSingleRoom marks the pseudo
// characteristic "must have sole occupancy of the room"; it is a constraint
// on the booking, not a matchable room attribute.
type Characteristic struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	PropertyName string    `json:"property_name"`
	Weighting    int       `json:"weighting"`
	IsSingleRoom bool      `json:"is_single_room"`
}

// Room is a physical grouping of one or more beds sharing one characteristic
// set. The characteristic set is immutable for the duration of a planning run.
type Room struct {
	ID              uuid.UUID        `json:"id"`
	Label           string           `json:"label"`
	Characteristics []Characteristic `json:"characteristics"`
}

// MatchableCharacteristics returns the room's characteristics excluding any
// flagged single-room, which never participate in matching.
func (r Room) MatchableCharacteristics() []Characteristic {
	var out []Characteristic
	for _, c := range r.Characteristics {
		if !c.IsSingleRoom {
			out = append(out, c)
		}
	}
	return out
}

// HasCharacteristic reports whether the room carries the given characteristic
// property name.
func (r Room) HasCharacteristic(propertyName string) bool {
	for _, c := range r.Characteristics {
		if c.PropertyName == propertyName {
			return true
		}
	}
	return false
}

// Bed belongs to exactly one room for its lifetime.
type Bed struct {
	ID    uuid.UUID `json:"id"`
	Label string    `json:"label"`
	Room  Room      `json:"room"`
}

// HasCharacteristic reports whether the bed's room carries the given
// characteristic property name.
func (b Bed) HasCharacteristic(propertyName string) bool {
	return b.Room.HasCharacteristic(propertyName)
}

// BedInactiveReason explains why a bed cannot be used on a day. Exactly two
// variants exist: BedEnded (permanent, lifecycle over) and BedOutOfService
// (temporary window). A nil reason means the bed is active.
type BedInactiveReason interface {
	isBedInactiveReason()
	// Description is a short human-readable label used when rendering plans.
	Description() string
}

// BedEnded marks a bed whose lifecycle ended on or before the day.
type BedEnded struct {
	EndDate time.Time `json:"end_date"`
}

func (BedEnded) isBedInactiveReason() {}

func (e BedEnded) Description() string {
	return "ended " + e.EndDate.Format(DayFormat)
}

// BedOutOfService marks a bed covered by an out-of-service window on the day.
type BedOutOfService struct {
	Reason string `json:"reason"`
}

func (BedOutOfService) isBedInactiveReason() {}

func (o BedOutOfService) Description() string {
	return "out of service: " + o.Reason
}

// BedDayState is the resolved availability of one bed on one day. It is
// recomputed independently for every day of a planning run and never
// persisted.
type BedDayState struct {
	Bed            Bed               `json:"bed"`
	Day            time.Time         `json:"day"`
	InactiveReason BedInactiveReason `json:"inactive_reason,omitempty"`
}

// IsActive reports whether the bed can take a booking on the day.
func (s BedDayState) IsActive() bool {
	return s.InactiveReason == nil
}

// SpaceBooking is a requested placement needing a bed on specific nights.
// The departure date itself is a checkout day and is not occupied.
type SpaceBooking struct {
	ID                      uuid.UUID        `json:"id"`
	Label                   string           `json:"label"`
	ArrivalDate             time.Time        `json:"arrival_date"`
	DepartureDate           time.Time        `json:"departure_date"`
	RequiredCharacteristics []Characteristic `json:"required_characteristics"`
}

// RequiresSingleRoom reports whether any required characteristic demands sole
// occupancy of the room.
func (b SpaceBooking) RequiresSingleRoom() bool {
	for _, c := range b.RequiredCharacteristics {
		if c.IsSingleRoom {
			return true
		}
	}
	return false
}

// RequiredRoomCharacteristics returns the required characteristics excluding
// single-room flags; only these are matched against rooms.
func (b SpaceBooking) RequiredRoomCharacteristics() []Characteristic {
	var out []Characteristic
	for _, c := range b.RequiredCharacteristics {
		if !c.IsSingleRoom {
			out = append(out, c)
		}
	}
	return out
}

// RequiresCharacteristic reports whether the booking requires the given
// characteristic property name.
func (b SpaceBooking) RequiresCharacteristic(propertyName string) bool {
	for _, c := range b.RequiredCharacteristics {
		if c.PropertyName == propertyName {
			return true
		}
	}
	return false
}

// OccupiesDay reports whether the booking occupies the given day, i.e.
// arrival <= day < departure.
func (b SpaceBooking) OccupiesDay(day time.Time) bool {
	return !day.Before(b.ArrivalDate) && day.Before(b.DepartureDate)
}

// priorityScore orders bookings for planning: the sum of weightings over all
// required characteristics, highest first.
func (b SpaceBooking) priorityScore() int {
	score := 0
	for _, c := range b.RequiredCharacteristics {
		score += c.Weighting
	}
	return score
}

// PlannedBed pairs one bed with the booking occupying it for a day. A booking
// holding a whole room appears once per bed in that room.
type PlannedBed struct {
	Bed     Bed          `json:"bed"`
	Booking SpaceBooking `json:"booking"`
}

// DayPlannerResult is the outcome of planning a single day: the ordered bed
// assignments and the bookings that could not be placed. An unplanned booking
// is an expected outcome, not an error.
type DayPlannerResult struct {
	Planned   []PlannedBed   `json:"planned"`
	Unplanned []SpaceBooking `json:"unplanned"`
}

// BedSummary is the collaborator-supplied description of one bed: its
// identity, optional lifecycle end date, owning room and the room's
// characteristic set.
type BedSummary struct {
	BedID           uuid.UUID        `json:"bed_id"`
	BedName         string           `json:"bed_name"`
	EndDate         *time.Time       `json:"end_date,omitempty"`
	RoomID          uuid.UUID        `json:"room_id"`
	RoomName        string           `json:"room_name"`
	Characteristics []Characteristic `json:"characteristics"`
}

// OutOfServiceWindow is a temporary period during which a bed is unavailable.
// Both dates are inclusive.
type OutOfServiceWindow struct {
	BedID     uuid.UUID `json:"bed_id"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Reason    string    `json:"reason"`
}

// DayFormat is the wire and display format for planning dates.
const DayFormat = "2006-01-02"

// Day normalises a timestamp to midnight UTC so that planning dates compare
// and hash consistently regardless of how the caller produced them.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// BedsFromSummaries converts collaborator bed summaries into planner beds,
// sharing one Room value per room id so that room identity survives the
// conversion.
func BedsFromSummaries(summaries []BedSummary) []Bed {
	rooms := make(map[uuid.UUID]Room)
	for _, s := range summaries {
		if _, ok := rooms[s.RoomID]; !ok {
			rooms[s.RoomID] = Room{ID: s.RoomID, Label: s.RoomName, Characteristics: s.Characteristics}
		}
	}
	beds := make([]Bed, 0, len(summaries))
	for _, s := range summaries {
		beds = append(beds, Bed{ID: s.BedID, Label: s.BedName, Room: rooms[s.RoomID]})
	}
	return beds
}
