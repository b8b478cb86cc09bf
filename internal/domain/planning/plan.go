package planning

import "time"

// BedDayPlan is one day of a premises plan: every bed's resolved state and
// the day planner outcome for that day.
type BedDayPlan struct {
	Date      time.Time        `json:"date"`
	BedStates []BedDayState    `json:"bed_states"`
	Result    DayPlannerResult `json:"result"`
}

// PremisePlan is the full multi-day plan for one premises across an inclusive
// date range.
type PremisePlan struct {
	StartDate time.Time    `json:"start_date"`
	EndDate   time.Time    `json:"end_date"`
	Beds      []Bed        `json:"beds"`
	Days      []BedDayPlan `json:"days"`
}

// Plan drives the day planner across every day in [start, end]. Bed states
// are resolved fresh per day; a day's available beds are those whose state is
// active, and its bookings are those whose occupancy window covers the day.
// Callers are responsible for ensuring start <= end; a negative range yields
// a plan with no days.
func Plan(start, end time.Time, beds []BedSummary, windows []OutOfServiceWindow, bookings []SpaceBooking) PremisePlan {
	start, end = Day(start), Day(end)
	plan := PremisePlan{
		StartDate: start,
		EndDate:   end,
		Beds:      BedsFromSummaries(beds),
	}

	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		states := BedStatesOn(day, beds, windows)

		var available []Bed
		for _, s := range states {
			if s.IsActive() {
				available = append(available, s.Bed)
			}
		}

		plan.Days = append(plan.Days, BedDayPlan{
			Date:      day,
			BedStates: states,
			Result:    PlanBedsForDay(available, BookingsOn(day, bookings)),
		})
	}

	return plan
}
