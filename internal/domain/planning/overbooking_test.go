package planning

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func capacityDay(date string) PremiseCapacityForDay {
	return PremiseCapacityForDay{Date: day(date)}
}

func TestOverbookingRanges_Empty(t *testing.T) {
	if got := OverbookingRanges(nil); got != nil {
		t.Errorf("expected nil for empty input, got %v", got)
	}
}

func TestOverbookingRanges_SingleDay(t *testing.T) {
	ranges := OverbookingRanges([]PremiseCapacityForDay{capacityDay("2024-03-10")})
	if len(ranges) != 1 {
		t.Fatalf("expected 1 range, got %d", len(ranges))
	}
	if !ranges[0].StartDate.Equal(day("2024-03-10")) || !ranges[0].EndDate.Equal(day("2024-03-10")) {
		t.Errorf("expected single-day range, got %+v", ranges[0])
	}
}

func TestOverbookingRanges_MergesContiguousRuns(t *testing.T) {
	// Unsorted input with a duplicate; two runs separated by a gap.
	days := []PremiseCapacityForDay{
		capacityDay("2024-03-12"),
		capacityDay("2024-03-10"),
		capacityDay("2024-03-11"),
		capacityDay("2024-03-11"),
		capacityDay("2024-03-15"),
		capacityDay("2024-03-16"),
	}

	ranges := OverbookingRanges(days)

	want := []OverbookingRange{
		{StartDate: day("2024-03-10"), EndDate: day("2024-03-12")},
		{StartDate: day("2024-03-15"), EndDate: day("2024-03-16")},
	}
	if len(ranges) != len(want) {
		t.Fatalf("expected %d ranges, got %d: %+v", len(want), len(ranges), ranges)
	}
	for i, w := range want {
		if !ranges[i].StartDate.Equal(w.StartDate) || !ranges[i].EndDate.Equal(w.EndDate) {
			t.Errorf("range %d = %+v, want %+v", i, ranges[i], w)
		}
	}
}

func TestOverbookingRanges_CoverageMatchesInput(t *testing.T) {
	days := []PremiseCapacityForDay{
		capacityDay("2024-03-10"),
		capacityDay("2024-03-12"),
		capacityDay("2024-03-13"),
		capacityDay("2024-03-20"),
	}

	ranges := OverbookingRanges(days)

	covered := make(map[time.Time]bool)
	for _, r := range ranges {
		for d := r.StartDate; !d.After(r.EndDate); d = d.AddDate(0, 0, 1) {
			if covered[d] {
				t.Errorf("day %v covered by more than one range", d)
			}
			covered[d] = true
		}
	}

	input := make(map[time.Time]bool)
	for _, d := range days {
		input[Day(d.Date)] = true
	}
	if len(covered) != len(input) {
		t.Fatalf("ranges cover %d days, input has %d distinct days", len(covered), len(input))
	}
	for d := range input {
		if !covered[d] {
			t.Errorf("input day %v not covered by any range", d)
		}
	}
}

func TestOverbookingRanges_FromCapacity(t *testing.T) {
	f := newReferenceFixture()
	capacity := CapacityForPremises(uuid.New(), day("2020-05-06"), day("2020-05-10"), f.beds, f.windows, f.bookings)

	var overbooked []PremiseCapacityForDay
	for _, d := range capacity.Days {
		if d.IsOverbooked() {
			overbooked = append(overbooked, d)
		}
	}

	ranges := OverbookingRanges(overbooked)

	if len(ranges) != 1 {
		t.Fatalf("expected 1 overbooking range, got %d: %+v", len(ranges), ranges)
	}
	if !ranges[0].StartDate.Equal(day("2020-05-06")) || !ranges[0].EndDate.Equal(day("2020-05-08")) {
		t.Errorf("expected range 2020-05-06..2020-05-08, got %+v", ranges[0])
	}
}
