package planning

import (
	"sort"
	"time"
)

// OverbookingRange is a maximal run of consecutive overbooked days. Both
// dates are inclusive.
type OverbookingRange struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// OverbookingRanges collapses per-day capacity records already known to be
// overbooked into maximal contiguous date ranges. The input need not be
// sorted or deduplicated; the output ranges are non-overlapping, ascending,
// and together cover exactly the distinct input days. An empty input yields
// an empty result.
func OverbookingRanges(days []PremiseCapacityForDay) []OverbookingRange {
	if len(days) == 0 {
		return nil
	}

	seen := make(map[time.Time]struct{}, len(days))
	var dates []time.Time
	for _, d := range days {
		date := Day(d.Date)
		if _, ok := seen[date]; ok {
			continue
		}
		seen[date] = struct{}{}
		dates = append(dates, date)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	var ranges []OverbookingRange
	current := OverbookingRange{StartDate: dates[0], EndDate: dates[0]}
	for _, date := range dates[1:] {
		if date.Equal(current.EndDate.AddDate(0, 0, 1)) {
			current.EndDate = date
			continue
		}
		ranges = append(ranges, current)
		current = OverbookingRange{StartDate: date, EndDate: date}
	}
	return append(ranges, current)
}
