package planning

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/placements/placements/internal/platform/auth"
)

// DefaultMaxRangeDays bounds the date range a single request may plan or
// aggregate. The engine cost is linear in days x beds x bookings, so this is
// the only cost control a caller gets.
const DefaultMaxRangeDays = 366

type Handler struct {
	svc          *Service
	maxRangeDays int
}

func NewHandler(svc *Service, maxRangeDays int) *Handler {
	if maxRangeDays <= 0 {
		maxRangeDays = DefaultMaxRangeDays
	}
	return &Handler{svc: svc, maxRangeDays: maxRangeDays}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	read := api.Group("", auth.RequireRole("manager", "matcher", "reporter"))
	read.GET("/premises/:id/plan", h.GetPlan)
	read.GET("/premises/:id/overbooking-ranges", h.GetOverbookingRanges)
	read.GET("/capacity", h.GetCapacity)
}

// GetPlan returns the day-by-day bed plan for one premises.
func (h *Handler) GetPlan(c echo.Context) error {
	premisesID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid premises id")
	}
	start, end, err := h.dateRange(c)
	if err != nil {
		return err
	}

	plan, err := h.svc.PlanPremises(c.Request().Context(), premisesID, start, end)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, plan)
}

// GetCapacity returns the capacity breakdown for one or more premises. The
// premises_id query parameter repeats; exclude_booking_id removes one booking
// from every count for what-if checks.
func (h *Handler) GetCapacity(c echo.Context) error {
	ids := c.QueryParams()["premises_id"]
	if len(ids) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "at least one premises_id is required")
	}
	premisesIDs := make([]uuid.UUID, 0, len(ids))
	for _, raw := range ids {
		id, err := uuid.Parse(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid premises_id %q", raw))
		}
		premisesIDs = append(premisesIDs, id)
	}

	start, end, err := h.dateRange(c)
	if err != nil {
		return err
	}

	var excludeBookingID *uuid.UUID
	if raw := c.QueryParam("exclude_booking_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid exclude_booking_id")
		}
		excludeBookingID = &id
	}

	capacities, err := h.svc.Capacity(c.Request().Context(), premisesIDs, start, end, excludeBookingID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, capacities)
}

// GetOverbookingRanges returns the contiguous overbooked date ranges for one
// premises.
func (h *Handler) GetOverbookingRanges(c echo.Context) error {
	premisesID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid premises id")
	}
	start, end, err := h.dateRange(c)
	if err != nil {
		return err
	}

	ranges, err := h.svc.PremisesOverbookingRanges(c.Request().Context(), premisesID, start, end)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if ranges == nil {
		ranges = []OverbookingRange{}
	}
	return c.JSON(http.StatusOK, ranges)
}

// dateRange parses and validates start_date/end_date. The engine itself is
// non-defensive about degenerate ranges, so ordering is enforced here.
func (h *Handler) dateRange(c echo.Context) (time.Time, time.Time, error) {
	start, err := time.Parse(DayFormat, c.QueryParam("start_date"))
	if err != nil {
		return time.Time{}, time.Time{}, echo.NewHTTPError(http.StatusBadRequest, "start_date must be YYYY-MM-DD")
	}
	end, err := time.Parse(DayFormat, c.QueryParam("end_date"))
	if err != nil {
		return time.Time{}, time.Time{}, echo.NewHTTPError(http.StatusBadRequest, "end_date must be YYYY-MM-DD")
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, echo.NewHTTPError(http.StatusBadRequest, "end_date must not be before start_date")
	}
	if days := int(end.Sub(start).Hours()/24) + 1; days > h.maxRangeDays {
		return time.Time{}, time.Time{}, echo.NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("date range must not exceed %d days", h.maxRangeDays))
	}
	return start, end, nil
}
