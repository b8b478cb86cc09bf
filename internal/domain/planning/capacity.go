package planning

import (
	"time"

	"github.com/google/uuid"
)

// TrackedCharacteristics is the fixed set of characteristic property names
// reported in every capacity breakdown and consulted by the overbooking
// predicate.
var TrackedCharacteristics = []string{
	"acceptsSexOffenders",
	"hasEnSuite",
	"isArsonSuitable",
	"isSingle",
	"isStepFreeDesignated",
	"isSuitedForSexOffenders",
	"isWheelchairDesignated",
}

// PremiseCharacteristicAvailability compares supply and demand for one
// tracked characteristic on one day.
type PremiseCharacteristicAvailability struct {
	PropertyName      string `json:"property_name"`
	AvailableBedCount int    `json:"available_bed_count"`
	BookingCount      int    `json:"booking_count"`
}

// IsOverbooked reports whether demand for the characteristic exceeds the
// active beds carrying it.
func (a PremiseCharacteristicAvailability) IsOverbooked() bool {
	return a.BookingCount > a.AvailableBedCount
}

// PremiseCapacityForDay is the capacity breakdown for one premises on one
// day: raw availability against demand, independent of any greedy plan.
type PremiseCapacityForDay struct {
	Date              time.Time                           `json:"date"`
	TotalBedCount     int                                 `json:"total_bed_count"`
	AvailableBedCount int                                 `json:"available_bed_count"`
	BookingCount      int                                 `json:"booking_count"`
	Characteristics   []PremiseCharacteristicAvailability `json:"characteristics"`
}

// IsOverbooked reports whether the day is overbooked: more bookings than
// active beds overall, or for any tracked characteristic.
func (d PremiseCapacityForDay) IsOverbooked() bool {
	if d.BookingCount > d.AvailableBedCount {
		return true
	}
	for _, c := range d.Characteristics {
		if c.IsOverbooked() {
			return true
		}
	}
	return false
}

// PremiseCapacity is the day-by-day capacity breakdown for one premises.
type PremiseCapacity struct {
	PremisesID uuid.UUID               `json:"premises_id"`
	StartDate  time.Time               `json:"start_date"`
	EndDate    time.Time               `json:"end_date"`
	Days       []PremiseCapacityForDay `json:"days"`
}

// CapacityForPremises computes the capacity breakdown for one premises over
// an inclusive range. It counts raw supply versus demand: the total bed count
// includes inactive beds, the available count only beds whose resolved state
// is active, and the booking count every booking occupying the day. The
// per-characteristic counts use the full characteristic set of each room,
// single-room flags included, since single occupancy is itself a tracked
// capacity dimension.
func CapacityForPremises(premisesID uuid.UUID, start, end time.Time, beds []BedSummary, windows []OutOfServiceWindow, bookings []SpaceBooking) PremiseCapacity {
	start, end = Day(start), Day(end)
	capacity := PremiseCapacity{PremisesID: premisesID, StartDate: start, EndDate: end}

	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		states := BedStatesOn(day, beds, windows)
		dayBookings := BookingsOn(day, bookings)

		forDay := PremiseCapacityForDay{
			Date:          day,
			TotalBedCount: len(states),
			BookingCount:  len(dayBookings),
		}
		for _, s := range states {
			if s.IsActive() {
				forDay.AvailableBedCount++
			}
		}

		for _, property := range TrackedCharacteristics {
			avail := PremiseCharacteristicAvailability{PropertyName: property}
			for _, s := range states {
				if s.IsActive() && s.Bed.HasCharacteristic(property) {
					avail.AvailableBedCount++
				}
			}
			for _, b := range dayBookings {
				if b.RequiresCharacteristic(property) {
					avail.BookingCount++
				}
			}
			forDay.Characteristics = append(forDay.Characteristics, avail)
		}

		capacity.Days = append(capacity.Days, forDay)
	}

	return capacity
}
