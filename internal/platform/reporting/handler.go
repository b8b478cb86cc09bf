package reporting

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/placements/placements/internal/domain/planning"
	"github.com/placements/placements/internal/platform/auth"
)

const contentTypeMarkdown = "text/markdown; charset=utf-8"

// Handler serves plan and capacity reports rendered as markdown. It reuses
// the planning service unchanged; only the representation differs from the
// JSON endpoints.
type Handler struct {
	svc          *planning.Service
	maxRangeDays int
}

func NewHandler(svc *planning.Service, maxRangeDays int) *Handler {
	if maxRangeDays <= 0 {
		maxRangeDays = planning.DefaultMaxRangeDays
	}
	return &Handler{svc: svc, maxRangeDays: maxRangeDays}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	reports := api.Group("/reports", auth.RequireRole("manager", "matcher", "reporter"))
	reports.GET("/premises/:id/occupancy", h.GetOccupancyReport)
	reports.GET("/premises/:id/capacity", h.GetCapacityReport)
}

// GetOccupancyReport renders the day-by-day bed plan for one premises as a
// markdown table.
func (h *Handler) GetOccupancyReport(c echo.Context) error {
	premisesID, start, end, err := h.params(c)
	if err != nil {
		return err
	}

	plan, err := h.svc.PlanPremises(c.Request().Context(), premisesID, start, end)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.Blob(http.StatusOK, contentTypeMarkdown, []byte(PlanMarkdown(plan)))
}

// GetCapacityReport renders the capacity breakdown for one premises as a
// markdown table.
func (h *Handler) GetCapacityReport(c echo.Context) error {
	premisesID, start, end, err := h.params(c)
	if err != nil {
		return err
	}

	capacities, err := h.svc.Capacity(c.Request().Context(), []uuid.UUID{premisesID}, start, end, nil)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.Blob(http.StatusOK, contentTypeMarkdown, []byte(CapacityMarkdown(capacities[0])))
}

func (h *Handler) params(c echo.Context) (uuid.UUID, time.Time, time.Time, error) {
	premisesID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, time.Time{}, time.Time{}, echo.NewHTTPError(http.StatusBadRequest, "invalid premises id")
	}
	start, err := time.Parse(planning.DayFormat, c.QueryParam("start_date"))
	if err != nil {
		return uuid.Nil, time.Time{}, time.Time{}, echo.NewHTTPError(http.StatusBadRequest, "start_date must be YYYY-MM-DD")
	}
	end, err := time.Parse(planning.DayFormat, c.QueryParam("end_date"))
	if err != nil {
		return uuid.Nil, time.Time{}, time.Time{}, echo.NewHTTPError(http.StatusBadRequest, "end_date must be YYYY-MM-DD")
	}
	if end.Before(start) {
		return uuid.Nil, time.Time{}, time.Time{}, echo.NewHTTPError(http.StatusBadRequest, "end_date must not be before start_date")
	}
	if days := int(end.Sub(start).Hours()/24) + 1; days > h.maxRangeDays {
		return uuid.Nil, time.Time{}, time.Time{}, echo.NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("date range must not exceed %d days", h.maxRangeDays))
	}
	return premisesID, start, end, nil
}
