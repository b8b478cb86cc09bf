package planning

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

// referenceFixture builds a premises with 6 beds across 3 rooms:
// room A has one bed with en-suite, arson-suitable and single-room
// characteristics; room B has one single-room bed; room C has three plain
// beds plus one ending 2020-05-08. Room C's third bed is out of service
// ("refurb") on 2020-05-07 and 2020-05-08.
type referenceFixture struct {
	beds     []BedSummary
	windows  []OutOfServiceWindow
	bookings []SpaceBooking
}

func newReferenceFixture() referenceFixture {
	enSuite := newCharacteristic("hasEnSuite", 10, false)
	arson := newCharacteristic("isArsonSuitable", 100, false)
	single := newCharacteristic("isSingle", 50, true)
	wheelchair := newCharacteristic("isWheelchairDesignated", 100, false)

	roomA, roomB, roomC := uuid.New(), uuid.New(), uuid.New()
	bedEnd := day("2020-05-08")
	oosBed := uuid.New()

	beds := []BedSummary{
		{BedID: uuid.New(), BedName: "a1", RoomID: roomA, RoomName: "room-a",
			Characteristics: []Characteristic{enSuite, arson, single}},
		{BedID: uuid.New(), BedName: "b1", RoomID: roomB, RoomName: "room-b",
			Characteristics: []Characteristic{single}},
		{BedID: uuid.New(), BedName: "c1", RoomID: roomC, RoomName: "room-c"},
		{BedID: uuid.New(), BedName: "c2", RoomID: roomC, RoomName: "room-c"},
		{BedID: oosBed, BedName: "c3", RoomID: roomC, RoomName: "room-c"},
		{BedID: uuid.New(), BedName: "c4", RoomID: roomC, RoomName: "room-c", EndDate: &bedEnd},
	}

	windows := []OutOfServiceWindow{{
		BedID:     oosBed,
		StartDate: day("2020-05-07"),
		EndDate:   day("2020-05-08"),
		Reason:    "refurb",
	}}

	booking := func(label string, arrival, departure string, chars ...Characteristic) SpaceBooking {
		return SpaceBooking{
			ID:                      uuid.New(),
			Label:                   label,
			ArrivalDate:             day(arrival),
			DepartureDate:           day(departure),
			RequiredCharacteristics: chars,
		}
	}
	bookings := []SpaceBooking{
		booking("CRN1", "2020-05-04", "2020-05-11", arson),
		booking("CRN2", "2020-05-06", "2020-05-09"),
		booking("CRN3", "2020-05-07", "2020-05-20", single),
		booking("CRN4", "2020-05-01", "2020-05-29", single),
		booking("CRN5", "2020-05-01", "2020-05-09", enSuite, wheelchair),
	}

	return referenceFixture{beds: beds, windows: windows, bookings: bookings}
}

func dayPlanFor(t *testing.T, plan PremisePlan, date string) BedDayPlan {
	t.Helper()
	want := day(date)
	for _, d := range plan.Days {
		if d.Date.Equal(want) {
			return d
		}
	}
	t.Fatalf("no day plan for %s", date)
	return BedDayPlan{}
}

func roomLabelsFor(result DayPlannerResult, bookingLabel string) map[string]int {
	rooms := make(map[string]int)
	for _, p := range result.Planned {
		if p.Booking.Label == bookingLabel {
			rooms[p.Bed.Room.Label]++
		}
	}
	return rooms
}

func unplannedLabels(result DayPlannerResult) map[string]bool {
	labels := make(map[string]bool)
	for _, b := range result.Unplanned {
		labels[b.Label] = true
	}
	return labels
}

func TestPlan_ReferenceScenario(t *testing.T) {
	f := newReferenceFixture()

	plan := Plan(day("2020-05-06"), day("2020-05-10"), f.beds, f.windows, f.bookings)

	if len(plan.Days) != 5 {
		t.Fatalf("expected 5 day plans, got %d", len(plan.Days))
	}
	if len(plan.Beds) != 6 {
		t.Fatalf("expected 6 beds in the plan inventory, got %d", len(plan.Beds))
	}

	// CRN1 occupies room A on every planned day; CRN5's en-suite plus
	// wheelchair requirement matches no room while it is active.
	for _, d := range plan.Days {
		if rooms := roomLabelsFor(d.Result, "CRN1"); len(rooms) != 1 || rooms["room-a"] != 1 {
			t.Errorf("%s: expected CRN1 in room-a, got %v", d.Date.Format(DayFormat), rooms)
		}
		active := !d.Date.After(day("2020-05-08"))
		if unplannedLabels(d.Result)["CRN5"] != active {
			t.Errorf("%s: expected CRN5 unplanned=%v", d.Date.Format(DayFormat), active)
		}
	}

	// 05-06: CRN4 holds room B, CRN2 fits in room C, only CRN5 misses out.
	d6 := dayPlanFor(t, plan, "2020-05-06")
	if rooms := roomLabelsFor(d6.Result, "CRN4"); rooms["room-b"] != 1 {
		t.Errorf("05-06: expected CRN4 in room-b, got %v", rooms)
	}
	if rooms := roomLabelsFor(d6.Result, "CRN2"); rooms["room-c"] != 1 {
		t.Errorf("05-06: expected CRN2 in room-c, got %v", rooms)
	}
	if got := unplannedLabels(d6.Result); len(got) != 1 || !got["CRN5"] {
		t.Errorf("05-06: expected only CRN5 unplanned, got %v", got)
	}

	// 05-07: CRN3 wins the tie for room B, CRN4 falls back to holding all
	// of room C's three remaining active beds, and CRN2 loses its bed to
	// the refurb window.
	d7 := dayPlanFor(t, plan, "2020-05-07")
	if rooms := roomLabelsFor(d7.Result, "CRN3"); rooms["room-b"] != 1 {
		t.Errorf("05-07: expected CRN3 in room-b, got %v", rooms)
	}
	if rooms := roomLabelsFor(d7.Result, "CRN4"); rooms["room-c"] != 3 {
		t.Errorf("05-07: expected CRN4 across 3 room-c beds, got %v", rooms)
	}
	if got := unplannedLabels(d7.Result); !got["CRN2"] {
		t.Errorf("05-07: expected CRN2 unplanned, got %v", got)
	}

	// 05-08: the ending bed drops out too, leaving CRN4 with two beds.
	d8 := dayPlanFor(t, plan, "2020-05-08")
	if rooms := roomLabelsFor(d8.Result, "CRN4"); rooms["room-c"] != 2 {
		t.Errorf("05-08: expected CRN4 across 2 room-c beds, got %v", rooms)
	}
	if got := unplannedLabels(d8.Result); !got["CRN2"] {
		t.Errorf("05-08: expected CRN2 unplanned, got %v", got)
	}

	// 05-09 onward CRN2 and CRN5 have departed and everyone remaining fits.
	for _, date := range []string{"2020-05-09", "2020-05-10"} {
		d := dayPlanFor(t, plan, date)
		if got := unplannedLabels(d.Result); len(got) != 0 {
			t.Errorf("%s: expected no unplanned bookings, got %v", date, got)
		}
		if rooms := roomLabelsFor(d.Result, "CRN3"); rooms["room-b"] != 1 {
			t.Errorf("%s: expected CRN3 in room-b, got %v", date, rooms)
		}
	}
}

func TestPlan_BedStatesRecordInactiveReasons(t *testing.T) {
	f := newReferenceFixture()

	plan := Plan(day("2020-05-06"), day("2020-05-10"), f.beds, f.windows, f.bookings)

	d8 := dayPlanFor(t, plan, "2020-05-08")
	byLabel := make(map[string]BedDayState)
	for _, s := range d8.BedStates {
		byLabel[s.Bed.Label] = s
	}

	if _, ok := byLabel["c3"].InactiveReason.(BedOutOfService); !ok {
		t.Errorf("expected c3 out of service on 05-08, got %T", byLabel["c3"].InactiveReason)
	}
	if _, ok := byLabel["c4"].InactiveReason.(BedEnded); !ok {
		t.Errorf("expected c4 ended on 05-08, got %T", byLabel["c4"].InactiveReason)
	}
	if !byLabel["c1"].IsActive() {
		t.Errorf("expected c1 active on 05-08, got %v", byLabel["c1"].InactiveReason)
	}
}

func TestPlan_NegativeRangeYieldsNoDays(t *testing.T) {
	f := newReferenceFixture()
	plan := Plan(day("2020-05-10"), day("2020-05-06"), f.beds, f.windows, f.bookings)
	if len(plan.Days) != 0 {
		t.Errorf("expected no days for a negative range, got %d", len(plan.Days))
	}
}

func TestPlan_NormalisesTimestamps(t *testing.T) {
	f := newReferenceFixture()
	noisy := time.Date(2020, 5, 6, 13, 30, 0, 0, time.UTC)
	plan := Plan(noisy, noisy, f.beds, f.windows, f.bookings)
	if !plan.StartDate.Equal(day("2020-05-06")) {
		t.Errorf("expected normalised start date, got %v", plan.StartDate)
	}
	if len(plan.Days) != 1 {
		t.Fatalf("expected a single day, got %d", len(plan.Days))
	}
}
