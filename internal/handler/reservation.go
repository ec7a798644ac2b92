package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dharmasatrya/flightreservation/internal/models"
	"github.com/dharmasatrya/flightreservation/internal/service"
)

type ReservationHandler struct {
	svc *service.Reservations
}

func NewReservationHandler(svc *service.Reservations) *ReservationHandler {
	return &ReservationHandler{svc: svc}
}

// Register mounts every reservation route on g.
func (h *ReservationHandler) Register(g *echo.Group) {
	g.POST("/flights", h.AddFlight)
	g.GET("/flights", h.ListFlights)
	g.GET("/flights/:id", h.GetFlight)
	g.DELETE("/flights/:id", h.DeleteFlight)
	g.POST("/flights/:id/bookings", h.Book)
	g.POST("/flights/:id/cancellations", h.Cancel)
	g.GET("/flights/:id/waitlist", h.Waitlist)
	g.DELETE("/flights/:id/waitlist/:passenger_id", h.RemoveFromWaitlist)
	g.PATCH("/flights/:id/waitlist/:passenger_id", h.ModifyPriority)
	g.POST("/round-trips", h.BookRoundTrip)
	g.GET("/routes/cheapest", h.CheapestRoute)
	g.GET("/airports", h.Airports)
	g.GET("/health", h.Health)
}

func (h *ReservationHandler) AddFlight(c echo.Context) error {
	var req models.AddFlightRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Failed to parse request body: "+err.Error())
	}
	if err := req.Validate(); err != nil {
		return respondError(c, err)
	}

	flight, err := h.svc.AddFlight(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, flight)
}

func (h *ReservationHandler) ListFlights(c echo.Context) error {
	startTime := time.Now()

	req, err := parseListRequest(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	if err := req.Validate(); err != nil {
		return respondError(c, err)
	}

	flights := h.svc.ListFlights(c.Request().Context(), req)
	return c.JSON(http.StatusOK, models.ListResponse{
		Criteria: models.ListCriteria{
			Origin:      req.Origin,
			Destination: req.Destination,
			Filters:     req.Filters,
			SortBy:      req.SortBy,
			SortOrder:   req.SortOrder,
		},
		Metadata: models.ListMetadata{
			TotalResults: len(flights),
			SearchTimeMs: time.Since(startTime).Milliseconds(),
		},
		Flights: flights,
	})
}

func parseListRequest(c echo.Context) (models.ListRequest, error) {
	req := models.ListRequest{
		Origin:      c.QueryParam("origin"),
		Destination: c.QueryParam("destination"),
		SortBy:      c.QueryParam("sort_by"),
		SortOrder:   c.QueryParam("sort_order"),
	}

	var filters models.SearchFilters
	set := false
	if v := c.QueryParam("price_min"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return req, models.ValidationError("price_min must be a number")
		}
		filters.PriceMin, set = &f, true
	}
	if v := c.QueryParam("price_max"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return req, models.ValidationError("price_max must be a number")
		}
		filters.PriceMax, set = &f, true
	}
	if v := c.QueryParam("airlines"); v != "" {
		for _, a := range strings.Split(v, ",") {
			if a = strings.TrimSpace(a); a != "" {
				filters.Airlines = append(filters.Airlines, a)
			}
		}
		set = true
	}
	if v := c.QueryParam("departure_time_min"); v != "" {
		filters.DepartureTimeMin, set = &v, true
	}
	if v := c.QueryParam("departure_time_max"); v != "" {
		filters.DepartureTimeMax, set = &v, true
	}
	if v := c.QueryParam("max_duration"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return req, models.ValidationError("max_duration must be minutes")
		}
		filters.MaxDuration, set = &n, true
	}
	if v := c.QueryParam("available_only"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return req, models.ValidationError("available_only must be a boolean")
		}
		filters.AvailableOnly, set = b, true
	}
	if set {
		req.Filters = &filters
	}
	return req, nil
}

func (h *ReservationHandler) GetFlight(c echo.Context) error {
	flight, err := h.svc.GetFlight(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, flight)
}

func (h *ReservationHandler) DeleteFlight(c echo.Context) error {
	if err := h.svc.DeleteFlight(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ReservationHandler) Book(c echo.Context) error {
	var req models.BookingRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Failed to parse request body: "+err.Error())
	}
	if err := req.Validate(); err != nil {
		return respondError(c, err)
	}

	resp, err := h.svc.Book(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return respondError(c, err)
	}
	status := http.StatusCreated
	if resp.Status == "waitlisted" {
		status = http.StatusAccepted
	}
	return c.JSON(status, resp)
}

func (h *ReservationHandler) Cancel(c echo.Context) error {
	var req models.CancelRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Failed to parse request body: "+err.Error())
	}
	if err := req.Validate(); err != nil {
		return respondError(c, err)
	}

	resp, err := h.svc.Cancel(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *ReservationHandler) BookRoundTrip(c echo.Context) error {
	var req models.RoundTripRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Failed to parse request body: "+err.Error())
	}
	if err := req.Validate(); err != nil {
		return respondError(c, err)
	}

	resp, err := h.svc.BookRoundTrip(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *ReservationHandler) Waitlist(c echo.Context) error {
	resp, err := h.svc.Waitlist(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

func passengerParam(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("passenger_id"))
	if err != nil {
		return 0, models.ValidationError("passenger_id must be an integer")
	}
	return id, nil
}

func (h *ReservationHandler) RemoveFromWaitlist(c echo.Context) error {
	passengerID, err := passengerParam(c)
	if err != nil {
		return respondError(c, err)
	}

	entry, err := h.svc.RemoveFromWaitlist(c.Request().Context(), c.Param("id"), passengerID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, entry)
}

func (h *ReservationHandler) ModifyPriority(c echo.Context) error {
	passengerID, err := passengerParam(c)
	if err != nil {
		return respondError(c, err)
	}
	var req models.PriorityRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Failed to parse request body: "+err.Error())
	}
	if err := req.Validate(); err != nil {
		return respondError(c, err)
	}

	if err := h.svc.ModifyPriority(c.Request().Context(), c.Param("id"), passengerID, req.Priority); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ReservationHandler) CheapestRoute(c echo.Context) error {
	origin := strings.TrimSpace(c.QueryParam("origin"))
	destination := strings.TrimSpace(c.QueryParam("destination"))
	if origin == "" {
		return respondError(c, models.ErrMissingOrigin)
	}
	if destination == "" {
		return respondError(c, models.ErrMissingDestination)
	}

	route, err := h.svc.CheapestRoute(c.Request().Context(), origin, destination)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, route)
}

func (h *ReservationHandler) Airports(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string][]string{
		"airports": h.svc.Airports(c.Request().Context()),
	})
}

func (h *ReservationHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.Health(c.Request().Context()))
}
