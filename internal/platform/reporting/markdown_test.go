package reporting

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/placements/placements/internal/domain/planning"
)

func day(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(planning.DayFormat, value)
	if err != nil {
		t.Fatalf("parsing day %q: %v", value, err)
	}
	return parsed
}

func reportFixture(t *testing.T) ([]planning.BedSummary, []planning.OutOfServiceWindow, []planning.SpaceBooking) {
	t.Helper()

	enSuite := planning.Characteristic{
		ID: uuid.New(), Name: "En suite", PropertyName: "hasEnSuite", Weighting: 10,
	}
	wheelchair := planning.Characteristic{
		ID: uuid.New(), Name: "Wheelchair designated", PropertyName: "isWheelchairDesignated", Weighting: 100,
	}

	roomA, roomB := uuid.New(), uuid.New()
	beds := []planning.BedSummary{
		{BedID: uuid.New(), BedName: "bed-1", RoomID: roomA, RoomName: "room-a",
			Characteristics: []planning.Characteristic{enSuite}},
		{BedID: uuid.New(), BedName: "bed-2", RoomID: roomB, RoomName: "room-b"},
	}

	windows := []planning.OutOfServiceWindow{
		{BedID: beds[1].BedID, StartDate: day(t, "2020-05-07"), EndDate: day(t, "2020-05-07"), Reason: "Maintenance"},
	}

	bookings := []planning.SpaceBooking{
		{ID: uuid.New(), Label: "CRN1", ArrivalDate: day(t, "2020-05-06"), DepartureDate: day(t, "2020-05-08"),
			RequiredCharacteristics: []planning.Characteristic{enSuite}},
		{ID: uuid.New(), Label: "CRN2", ArrivalDate: day(t, "2020-05-06"), DepartureDate: day(t, "2020-05-08"),
			RequiredCharacteristics: []planning.Characteristic{wheelchair}},
	}

	return beds, windows, bookings
}

func TestPlanMarkdown(t *testing.T) {
	beds, windows, bookings := reportFixture(t)
	plan := planning.Plan(day(t, "2020-05-06"), day(t, "2020-05-07"), beds, windows, bookings)

	md := PlanMarkdown(&plan)

	if !strings.Contains(md, "## Bed plan 2020-05-06 to 2020-05-07") {
		t.Errorf("missing title, got:\n%s", md)
	}
	if !strings.Contains(md, "| Bed | Room | 2020-05-06 | 2020-05-07 |") {
		t.Errorf("missing header row, got:\n%s", md)
	}
	if !strings.Contains(md, "| bed-1 | room-a | CRN1 | CRN1 |") {
		t.Errorf("missing bed-1 row, got:\n%s", md)
	}
	if !strings.Contains(md, "out of service: Maintenance") {
		t.Errorf("missing out-of-service cell, got:\n%s", md)
	}
	if !strings.Contains(md, "### Unplanned") {
		t.Errorf("missing unplanned section, got:\n%s", md)
	}
	if !strings.Contains(md, "- 2020-05-06: CRN2") || !strings.Contains(md, "- 2020-05-07: CRN2") {
		t.Errorf("missing unplanned entries, got:\n%s", md)
	}
}

func TestPlanMarkdown_NoUnplannedSectionWhenAllPlaced(t *testing.T) {
	beds, windows, bookings := reportFixture(t)
	plan := planning.Plan(day(t, "2020-05-06"), day(t, "2020-05-07"), beds, windows, bookings[:1])

	md := PlanMarkdown(&plan)

	if strings.Contains(md, "### Unplanned") {
		t.Errorf("expected no unplanned section, got:\n%s", md)
	}
}

func TestCapacityMarkdown(t *testing.T) {
	beds, windows, bookings := reportFixture(t)
	premisesID := uuid.New()
	capacity := planning.CapacityForPremises(
		premisesID, day(t, "2020-05-06"), day(t, "2020-05-07"), beds, windows, bookings)

	md := CapacityMarkdown(capacity)

	if !strings.Contains(md, "## Capacity "+premisesID.String()+", 2020-05-06 to 2020-05-07") {
		t.Errorf("missing title, got:\n%s", md)
	}
	if !strings.Contains(md, "| Date | Beds | Available | Bookings | Overbooked |") {
		t.Errorf("missing header row, got:\n%s", md)
	}
	for _, property := range planning.TrackedCharacteristics {
		if !strings.Contains(md, " "+property+" |") {
			t.Errorf("missing characteristic column %s, got:\n%s", property, md)
		}
	}
	// Both days overbooked: one wheelchair booking against zero wheelchair beds.
	if !strings.Contains(md, "| 2020-05-06 | 2 | 2 | 2 | yes |") {
		t.Errorf("missing 2020-05-06 row, got:\n%s", md)
	}
	if !strings.Contains(md, "| 2020-05-07 | 2 | 1 | 2 | yes |") {
		t.Errorf("missing 2020-05-07 row, got:\n%s", md)
	}
}
