package booking

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/placements/placements/internal/domain/planning"
	"github.com/placements/placements/internal/platform/auth"
	"github.com/placements/placements/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	read := api.Group("", auth.RequireRole("manager", "matcher", "reporter"))
	read.GET("/space-bookings/:id", h.Get)
	read.GET("/premises/:id/space-bookings", h.ListByPremises)

	write := api.Group("", auth.RequireRole("manager", "matcher"))
	write.POST("/space-bookings", h.Create)
	write.POST("/space-bookings/:id/cancellations", h.Cancel)
}

type createRequest struct {
	PremisesID    uuid.UUID `json:"premises_id"`
	CRN           string    `json:"crn"`
	ArrivalDate   string    `json:"arrival_date"`
	DepartureDate string    `json:"departure_date"`
	Criteria      []string  `json:"criteria"`
}

func (h *Handler) Create(c echo.Context) error {
	var req createRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	arrival, err := time.Parse(planning.DayFormat, req.ArrivalDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "arrival_date must be YYYY-MM-DD")
	}
	departure, err := time.Parse(planning.DayFormat, req.DepartureDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "departure_date must be YYYY-MM-DD")
	}

	b := SpaceBooking{
		PremisesID:             req.PremisesID,
		CRN:                    req.CRN,
		CanonicalArrivalDate:   arrival,
		CanonicalDepartureDate: departure,
	}
	if err := h.svc.Create(c.Request().Context(), &b, req.Criteria); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, b)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	b, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "booking not found")
	}
	return c.JSON(http.StatusOK, b)
}

func (h *Handler) Cancel(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.Cancel(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ListByPremises(c echo.Context) error {
	premisesID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid premises id")
	}
	start, err := time.Parse(planning.DayFormat, c.QueryParam("start_date"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "start_date must be YYYY-MM-DD")
	}
	end, err := time.Parse(planning.DayFormat, c.QueryParam("end_date"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "end_date must be YYYY-MM-DD")
	}

	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListByPremises(c.Request().Context(), premisesID, start, end, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}
