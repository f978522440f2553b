package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/service/flights"
	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

type FlightHandler struct {
	service flights.FlightUseCase
	logger  *zap.Logger
}

type flightRequest struct {
	RouteID       *int64     `json:"route_id"`
	AirplaneID    *int64     `json:"airplane_id"`
	DepartureTime *time.Time `json:"departure_time"`
	ArrivalTime   *time.Time `json:"arrival_time"`
	Crew          *[]int64   `json:"crew"`
}

func (r flightRequest) apply(flight *domain.Flight) {
	if r.RouteID != nil {
		flight.RouteID = *r.RouteID
	}
	if r.AirplaneID != nil {
		flight.AirplaneID = *r.AirplaneID
	}
	if r.DepartureTime != nil {
		flight.DepartureTime = *r.DepartureTime
	}
	if r.ArrivalTime != nil {
		flight.ArrivalTime = *r.ArrivalTime
	}
	if r.Crew != nil {
		flight.CrewIDs = lo.Uniq(*r.Crew)
	}
}

type flightResponse struct {
	ID            int64   `json:"id"`
	RouteID       int64   `json:"route_id"`
	AirplaneID    int64   `json:"airplane_id"`
	DepartureTime string  `json:"departure_time"`
	ArrivalTime   string  `json:"arrival_time"`
	Crew          []int64 `json:"crew"`
}

func newFlightResponse(f domain.Flight) flightResponse {
	return flightResponse{
		ID:            f.ID,
		RouteID:       f.RouteID,
		AirplaneID:    f.AirplaneID,
		DepartureTime: f.DepartureTime.Format(timeLayout),
		ArrivalTime:   f.ArrivalTime.Format(timeLayout),
		Crew:          lo.Ternary(f.CrewIDs == nil, []int64{}, f.CrewIDs),
	}
}

type flightListResponse struct {
	ID               int64    `json:"id"`
	Route            string   `json:"route"`
	Airplane         string   `json:"airplane"`
	DepartureTime    string   `json:"departure_time"`
	ArrivalTime      string   `json:"arrival_time"`
	TicketsAvailable int      `json:"tickets_available"`
	Crew             []string `json:"crew"`
}

func toFlightListResponse(f domain.FlightSummary, _ int) flightListResponse {
	return flightListResponse{
		ID:               f.ID,
		Route:            f.Route,
		Airplane:         f.Airplane,
		DepartureTime:    f.DepartureTime.Format(timeLayout),
		ArrivalTime:      f.ArrivalTime.Format(timeLayout),
		TicketsAvailable: f.TicketsAvailable,
		Crew:             lo.Ternary(f.Crew == nil, []string{}, f.Crew),
	}
}

type flightDetailResponse struct {
	ID               int64            `json:"id"`
	Route            routeResponse    `json:"route"`
	Airplane         airplaneResponse `json:"airplane"`
	DepartureTime    string           `json:"departure_time"`
	ArrivalTime      string           `json:"arrival_time"`
	Crew             []int64          `json:"crew"`
	TakenSeats       []string         `json:"taken_seats"`
	TicketsAvailable int              `json:"tickets_available"`
}

func newFlightDetailResponse(d domain.FlightDetail) flightDetailResponse {
	return flightDetailResponse{
		ID:            d.ID,
		Route:         toRouteResponse(d.Route, 0),
		Airplane:      toAirplaneResponse(d.Airplane, 0),
		DepartureTime: d.DepartureTime.Format(timeLayout),
		ArrivalTime:   d.ArrivalTime.Format(timeLayout),
		Crew:          lo.Ternary(d.CrewIDs == nil, []int64{}, d.CrewIDs),
		TakenSeats: lo.Map(d.TakenSeats, func(s domain.Seat, _ int) string {
			return fmt.Sprintf("Row %d, Seat %d", s.Row, s.Seat)
		}),
		TicketsAvailable: d.TicketsAvailable,
	}
}

type availableSeatsResponse struct {
	FlightID       int64 `json:"flight_id"`
	AvailableSeats int   `json:"available_seats"`
}

func NewFlightHandler(service flights.FlightUseCase, logger *zap.Logger) *FlightHandler {
	return &FlightHandler{service: service, logger: logger}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.POST("", h.create)
	router.GET("/:id", h.get)
	router.GET("/:id/available_seats", h.availableSeats)
	router.PUT("/:id", h.replace)
	router.PATCH("/:id", h.patch)
	router.DELETE("/:id", h.delete)
}

func (h *FlightHandler) list(c *gin.Context) {
	page, ok := parsePage(c)
	if !ok {
		return
	}
	summaries, err := h.service.List(c.Request.Context(), page)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, lo.Map(summaries, toFlightListResponse))
}

func (h *FlightHandler) get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	detail, err := h.service.Detail(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, newFlightDetailResponse(*detail))
}

func (h *FlightHandler) availableSeats(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	available, err := h.service.AvailableSeats(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, availableSeatsResponse{FlightID: id, AvailableSeats: available})
}

func (h *FlightHandler) create(c *gin.Context) {
	var req flightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	var flight domain.Flight
	req.apply(&flight)

	if err := h.service.Create(c.Request.Context(), &flight); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, newFlightResponse(flight))
}

func (h *FlightHandler) replace(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req flightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	flight := domain.Flight{ID: id}
	req.apply(&flight)

	if err := h.service.Update(c.Request.Context(), &flight); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, newFlightResponse(flight))
}

func (h *FlightHandler) patch(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req flightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	flight, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	req.apply(flight)

	if err := h.service.Update(c.Request.Context(), flight); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, newFlightResponse(*flight))
}

func (h *FlightHandler) delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
