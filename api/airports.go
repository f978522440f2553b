package api

import (
	"net/http"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/service/catalog"
	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

type AirportHandler struct {
	service catalog.AirportUseCase
	logger  *zap.Logger
}

type airportRequest struct {
	Name           *string `json:"name"`
	ClosestBigCity *string `json:"closest_big_city"`
	Country        *string `json:"country"`
}

// apply copies the supplied fields onto airport and leaves the rest alone.
func (r airportRequest) apply(airport *domain.Airport) {
	if r.Name != nil {
		airport.Name = *r.Name
	}
	if r.ClosestBigCity != nil {
		airport.ClosestBigCity = *r.ClosestBigCity
	}
	if r.Country != nil {
		airport.Country = r.Country
	}
}

type airportResponse struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	ClosestBigCity string  `json:"closest_big_city"`
	Country        *string `json:"country"`
}

type airportDetailResponse struct {
	airportResponse
	DepartureRoutes []routeResponse `json:"departure_routes"`
	ArrivalRoutes   []routeResponse `json:"arrival_routes"`
}

func newAirportResponse(a domain.Airport) airportResponse {
	return airportResponse{ID: a.ID, Name: a.Name, ClosestBigCity: a.ClosestBigCity, Country: a.Country}
}

func NewAirportHandler(service catalog.AirportUseCase, logger *zap.Logger) *AirportHandler {
	return &AirportHandler{service: service, logger: logger}
}

func (h *AirportHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.POST("", h.create)
	router.GET("/:id", h.get)
	router.PUT("/:id", h.replace)
	router.PATCH("/:id", h.patch)
	router.DELETE("/:id", h.delete)
}

func (h *AirportHandler) list(c *gin.Context) {
	page, ok := parsePage(c)
	if !ok {
		return
	}
	filter := domain.AirportFilter{
		Name:           c.Query("name"),
		ClosestBigCity: c.Query("closest_big_city"),
	}

	airports, err := h.service.List(c.Request.Context(), filter, page)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, lo.Map(airports, func(a domain.Airport, _ int) airportResponse {
		return newAirportResponse(a)
	}))
}

func (h *AirportHandler) get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	detail, err := h.service.Detail(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, airportDetailResponse{
		airportResponse: newAirportResponse(detail.Airport),
		DepartureRoutes: lo.Map(detail.DepartureRoutes, toRouteResponse),
		ArrivalRoutes:   lo.Map(detail.ArrivalRoutes, toRouteResponse),
	})
}

func (h *AirportHandler) create(c *gin.Context) {
	var req airportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	var airport domain.Airport
	req.apply(&airport)

	if err := h.service.Create(c.Request.Context(), &airport); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, newAirportResponse(airport))
}

func (h *AirportHandler) replace(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req airportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	airport := domain.Airport{ID: id}
	req.apply(&airport)

	if err := h.service.Update(c.Request.Context(), &airport); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, newAirportResponse(airport))
}

func (h *AirportHandler) patch(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req airportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	airport, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	req.apply(airport)

	if err := h.service.Update(c.Request.Context(), airport); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, newAirportResponse(*airport))
}

func (h *AirportHandler) delete(c *gin.Context) {
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
