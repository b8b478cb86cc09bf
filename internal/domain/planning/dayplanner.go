package planning

import (
	"sort"

	"github.com/google/uuid"
)

// PlanBedsForDay assigns one day's bookings to that day's available beds.
//
// Bookings are taken in descending order of summed characteristic weighting,
// so the most constrained placements go first; ties fall back to ascending
// booking label, then id, making the plan reproducible regardless of input
// order. Each booking gets the matching bed whose room wastes the fewest
// characteristics; a single-room booking takes every bed in the smallest
// exclusively free matching room. A reserved bed or room is never revisited
// within the day, so a low-priority booking can stay unplanned even when a
// different assignment order would have fitted everyone. That is accepted
// behaviour.
func PlanBedsForDay(beds []Bed, bookings []SpaceBooking) DayPlannerResult {
	ledger := newBedLedger(beds)

	ordered := make([]SpaceBooking, len(bookings))
	copy(ordered, bookings)
	sort.SliceStable(ordered, func(i, j int) bool {
		pi, pj := ordered[i].priorityScore(), ordered[j].priorityScore()
		if pi != pj {
			return pi > pj
		}
		if ordered[i].Label != ordered[j].Label {
			return ordered[i].Label < ordered[j].Label
		}
		return ordered[i].ID.String() < ordered[j].ID.String()
	})

	result := DayPlannerResult{}
	for _, booking := range ordered {
		found := ledger.findBeds(booking.RequiredRoomCharacteristics(), booking.RequiresSingleRoom())
		if len(found) == 0 {
			result.Unplanned = append(result.Unplanned, booking)
			continue
		}
		for _, bed := range found {
			result.Planned = append(result.Planned, PlannedBed{Bed: bed, Booking: booking})
			ledger.reserve(bed)
		}
	}
	return result
}

// bedRecord is one ledger entry: a bed and whether it has been handed out.
// A single arena of records with a reserved flag replaces the coupled
// available/reserved collections so the two can never drift apart.
type bedRecord struct {
	bed      Bed
	reserved bool
}

// bedLedger tracks one day's bed reservations. Records are ordered ascending
// by bed label at construction; that order is the tie-break basis for every
// subsequent selection and is preserved as beds are reserved.
type bedLedger struct {
	records []*bedRecord
	byRoom  map[uuid.UUID][]*bedRecord
}

func newBedLedger(beds []Bed) *bedLedger {
	sorted := make([]Bed, len(beds))
	copy(sorted, beds)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Label < sorted[j].Label
	})

	l := &bedLedger{byRoom: make(map[uuid.UUID][]*bedRecord)}
	for _, bed := range sorted {
		rec := &bedRecord{bed: bed}
		l.records = append(l.records, rec)
		l.byRoom[bed.Room.ID] = append(l.byRoom[bed.Room.ID], rec)
	}
	return l
}

// findBeds returns the bed(s) to give the booking, or nil when no bed fits.
// For a single-room booking the whole matching room is returned; otherwise a
// single bed.
func (l *bedLedger) findBeds(required []Characteristic, requiresSingleRoom bool) []Bed {
	var candidates []*bedRecord
	for _, rec := range l.records {
		if rec.reserved {
			continue
		}
		if !roomSatisfies(rec.bed.Room, required) {
			continue
		}
		if requiresSingleRoom && l.roomHasReservation(rec.bed.Room.ID) {
			continue
		}
		candidates = append(candidates, rec)
	}
	if len(candidates) == 0 {
		return nil
	}

	if requiresSingleRoom {
		// Prefer smaller rooms so multi-bed rooms are not wasted on a
		// booking that needs only one bed.
		sort.SliceStable(candidates, func(i, j int) bool {
			return len(l.byRoom[candidates[i].bed.Room.ID]) < len(l.byRoom[candidates[j].bed.Room.ID])
		})
	}

	best := candidates[0]
	bestSurplus := surplusCharacteristics(best.bed.Room, required)
	for _, rec := range candidates[1:] {
		if s := surplusCharacteristics(rec.bed.Room, required); s < bestSurplus {
			best, bestSurplus = rec, s
		}
	}

	if requiresSingleRoom {
		var beds []Bed
		for _, rec := range l.byRoom[best.bed.Room.ID] {
			beds = append(beds, rec.bed)
		}
		return beds
	}
	return []Bed{best.bed}
}

// reserve marks the bed as taken for the remainder of the day.
func (l *bedLedger) reserve(bed Bed) {
	for _, rec := range l.records {
		if rec.bed.ID == bed.ID {
			rec.reserved = true
			return
		}
	}
}

func (l *bedLedger) roomHasReservation(roomID uuid.UUID) bool {
	for _, rec := range l.byRoom[roomID] {
		if rec.reserved {
			return true
		}
	}
	return false
}

// roomSatisfies reports whether the room's matchable characteristic set is a
// superset of the required set. An empty requirement matches every room.
func roomSatisfies(room Room, required []Characteristic) bool {
	for _, req := range required {
		if !roomHasProperty(room, req.PropertyName) {
			return false
		}
	}
	return true
}

// surplusCharacteristics counts the room's matchable characteristics beyond
// those required; the planner prefers the smallest surplus.
func surplusCharacteristics(room Room, required []Characteristic) int {
	surplus := 0
	for _, c := range room.MatchableCharacteristics() {
		if !characteristicRequired(required, c.PropertyName) {
			surplus++
		}
	}
	return surplus
}

func roomHasProperty(room Room, propertyName string) bool {
	for _, c := range room.MatchableCharacteristics() {
		if c.PropertyName == propertyName {
			return true
		}
	}
	return false
}

func characteristicRequired(required []Characteristic, propertyName string) bool {
	for _, c := range required {
		if c.PropertyName == propertyName {
			return true
		}
	}
	return false
}
