package planning

import "time"

// BedStateOn resolves one bed's availability for one day. Out-of-service
// windows are checked before the lifecycle end date; a bed covered by both on
// the same day reports out of service. Keep that order: downstream rendering
// and historic plans depend on it.
//
// End-date semantics follow the premises bed lifecycle contract: a bed is
// active strictly before its end date and ended from the end date onward.
func BedStateOn(day time.Time, bed BedSummary, windows []OutOfServiceWindow) BedDayState {
	state := BedDayState{
		Bed: Bed{ID: bed.BedID, Label: bed.BedName, Room: Room{ID: bed.RoomID, Label: bed.RoomName, Characteristics: bed.Characteristics}},
		Day: day,
	}

	for _, w := range windows {
		if w.BedID != bed.BedID {
			continue
		}
		if !day.Before(w.StartDate) && !day.After(w.EndDate) {
			state.InactiveReason = BedOutOfService{Reason: w.Reason}
			return state
		}
	}

	if bed.EndDate != nil && !day.Before(*bed.EndDate) {
		state.InactiveReason = BedEnded{EndDate: *bed.EndDate}
	}

	return state
}

// BedStatesOn resolves every bed's state for one day.
func BedStatesOn(day time.Time, beds []BedSummary, windows []OutOfServiceWindow) []BedDayState {
	states := make([]BedDayState, 0, len(beds))
	for _, b := range beds {
		states = append(states, BedStateOn(day, b, windows))
	}
	return states
}

// BookingsOn filters the bookings occupying the given day.
func BookingsOn(day time.Time, bookings []SpaceBooking) []SpaceBooking {
	var out []SpaceBooking
	for _, b := range bookings {
		if b.OccupiesDay(day) {
			out = append(out, b)
		}
	}
	return out
}
