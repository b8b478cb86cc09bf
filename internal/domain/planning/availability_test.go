package planning

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func day(value string) time.Time {
	t, err := time.Parse(DayFormat, value)
	if err != nil {
		panic(err)
	}
	return t
}

func TestBedStateOn_Active(t *testing.T) {
	bed := BedSummary{BedID: uuid.New(), BedName: "bed-1", RoomID: uuid.New(), RoomName: "room-a"}

	state := BedStateOn(day("2024-03-10"), bed, nil)

	if !state.IsActive() {
		t.Fatalf("expected active bed, got reason %v", state.InactiveReason)
	}
}

func TestBedStateOn_EndedOnEndDate(t *testing.T) {
	end := day("2024-03-10")
	bed := BedSummary{BedID: uuid.New(), BedName: "bed-1", EndDate: &end}

	before := BedStateOn(day("2024-03-09"), bed, nil)
	if !before.IsActive() {
		t.Errorf("bed must be active strictly before its end date, got %v", before.InactiveReason)
	}

	on := BedStateOn(day("2024-03-10"), bed, nil)
	if on.IsActive() {
		t.Fatal("bed must be ended on its end date")
	}
	ended, ok := on.InactiveReason.(BedEnded)
	if !ok {
		t.Fatalf("expected BedEnded, got %T", on.InactiveReason)
	}
	if !ended.EndDate.Equal(end) {
		t.Errorf("expected end date %v, got %v", end, ended.EndDate)
	}

	after := BedStateOn(day("2024-03-11"), bed, nil)
	if after.IsActive() {
		t.Error("bed must stay ended after its end date")
	}
}

func TestBedStateOn_OutOfServiceInclusiveBounds(t *testing.T) {
	bedID := uuid.New()
	bed := BedSummary{BedID: bedID, BedName: "bed-1"}
	windows := []OutOfServiceWindow{{
		BedID:     bedID,
		StartDate: day("2024-03-10"),
		EndDate:   day("2024-03-12"),
		Reason:    "refurb",
	}}

	for _, d := range []string{"2024-03-10", "2024-03-11", "2024-03-12"} {
		state := BedStateOn(day(d), bed, windows)
		oos, ok := state.InactiveReason.(BedOutOfService)
		if !ok {
			t.Fatalf("expected BedOutOfService on %s, got %T", d, state.InactiveReason)
		}
		if oos.Reason != "refurb" {
			t.Errorf("expected reason refurb, got %q", oos.Reason)
		}
	}

	if !BedStateOn(day("2024-03-09"), bed, windows).IsActive() {
		t.Error("expected active before the window")
	}
	if !BedStateOn(day("2024-03-13"), bed, windows).IsActive() {
		t.Error("expected active after the window")
	}
}

func TestBedStateOn_IgnoresOtherBedsWindows(t *testing.T) {
	bed := BedSummary{BedID: uuid.New(), BedName: "bed-1"}
	windows := []OutOfServiceWindow{{
		BedID:     uuid.New(),
		StartDate: day("2024-03-10"),
		EndDate:   day("2024-03-12"),
		Reason:    "refurb",
	}}

	if !BedStateOn(day("2024-03-11"), bed, windows).IsActive() {
		t.Error("a window on another bed must not affect this bed")
	}
}

func TestBedStateOn_OutOfServiceWinsOverEnded(t *testing.T) {
	bedID := uuid.New()
	end := day("2024-03-10")
	bed := BedSummary{BedID: bedID, BedName: "bed-1", EndDate: &end}
	windows := []OutOfServiceWindow{{
		BedID:     bedID,
		StartDate: day("2024-03-09"),
		EndDate:   day("2024-03-11"),
		Reason:    "damage",
	}}

	state := BedStateOn(day("2024-03-10"), bed, windows)
	if _, ok := state.InactiveReason.(BedOutOfService); !ok {
		t.Fatalf("expected out-of-service to take precedence over ended, got %T", state.InactiveReason)
	}
}

func TestBookingsOn_DepartureDayNotOccupied(t *testing.T) {
	booking := SpaceBooking{
		ID:            uuid.New(),
		Label:         "CRN1",
		ArrivalDate:   day("2024-03-10"),
		DepartureDate: day("2024-03-12"),
	}

	tests := []struct {
		day  string
		want int
	}{
		{"2024-03-09", 0},
		{"2024-03-10", 1},
		{"2024-03-11", 1},
		{"2024-03-12", 0},
	}
	for _, tt := range tests {
		got := BookingsOn(day(tt.day), []SpaceBooking{booking})
		if len(got) != tt.want {
			t.Errorf("BookingsOn(%s) = %d bookings, want %d", tt.day, len(got), tt.want)
		}
	}
}

func TestDay_NormalisesToMidnightUTC(t *testing.T) {
	in := time.Date(2024, 3, 10, 17, 45, 3, 12, time.FixedZone("X", 3600))
	got := Day(in)
	want := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Day() = %v, want %v", got, want)
	}
}
