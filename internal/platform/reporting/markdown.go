// Package reporting renders planning and capacity results as human-readable
// markdown tables. It is a pure consumer of the planning package's output
// model; nothing here feeds back into the engine.
package reporting

import (
	"fmt"
	"strings"

	"github.com/placements/placements/internal/domain/planning"
)

// PlanMarkdown renders a premises plan as a table of beds against days. Each
// cell shows the booking occupying the bed, the reason the bed is unusable,
// or is blank when the bed is free. Unplanned bookings are listed under the
// table per day.
func PlanMarkdown(plan *planning.PremisePlan) string {
	var b strings.Builder

	fmt.Fprintf(&b, "## Bed plan %s to %s\n\n",
		plan.StartDate.Format(planning.DayFormat), plan.EndDate.Format(planning.DayFormat))

	b.WriteString("| Bed | Room |")
	for _, day := range plan.Days {
		fmt.Fprintf(&b, " %s |", day.Date.Format(planning.DayFormat))
	}
	b.WriteString("\n|---|---|")
	for range plan.Days {
		b.WriteString("---|")
	}
	b.WriteString("\n")

	for _, bed := range plan.Beds {
		fmt.Fprintf(&b, "| %s | %s |", bed.Label, bed.Room.Label)
		for _, day := range plan.Days {
			fmt.Fprintf(&b, " %s |", planCell(day, bed))
		}
		b.WriteString("\n")
	}

	wroteHeader := false
	for _, day := range plan.Days {
		if len(day.Result.Unplanned) == 0 {
			continue
		}
		if !wroteHeader {
			b.WriteString("\n### Unplanned\n\n")
			wroteHeader = true
		}
		labels := make([]string, 0, len(day.Result.Unplanned))
		for _, booking := range day.Result.Unplanned {
			labels = append(labels, booking.Label)
		}
		fmt.Fprintf(&b, "- %s: %s\n", day.Date.Format(planning.DayFormat), strings.Join(labels, ", "))
	}

	return b.String()
}

func planCell(day planning.BedDayPlan, bed planning.Bed) string {
	for _, state := range day.BedStates {
		if state.Bed.ID == bed.ID && !state.IsActive() {
			return state.InactiveReason.Description()
		}
	}
	for _, planned := range day.Result.Planned {
		if planned.Bed.ID == bed.ID {
			return planned.Booking.Label
		}
	}
	return ""
}

// CapacityMarkdown renders a premises capacity breakdown as one row per day,
// with a column per tracked characteristic showing booked/available counts.
func CapacityMarkdown(capacity planning.PremiseCapacity) string {
	var b strings.Builder

	fmt.Fprintf(&b, "## Capacity %s, %s to %s\n\n",
		capacity.PremisesID,
		capacity.StartDate.Format(planning.DayFormat), capacity.EndDate.Format(planning.DayFormat))

	b.WriteString("| Date | Beds | Available | Bookings | Overbooked |")
	for _, property := range planning.TrackedCharacteristics {
		fmt.Fprintf(&b, " %s |", property)
	}
	b.WriteString("\n|---|---|---|---|---|")
	for range planning.TrackedCharacteristics {
		b.WriteString("---|")
	}
	b.WriteString("\n")

	for _, day := range capacity.Days {
		overbooked := ""
		if day.IsOverbooked() {
			overbooked = "yes"
		}
		fmt.Fprintf(&b, "| %s | %d | %d | %d | %s |",
			day.Date.Format(planning.DayFormat),
			day.TotalBedCount, day.AvailableBedCount, day.BookingCount, overbooked)
		for _, c := range day.Characteristics {
			fmt.Fprintf(&b, " %d/%d |", c.BookingCount, c.AvailableBedCount)
		}
		b.WriteString("\n")
	}

	return b.String()
}
