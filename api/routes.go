package api

import (
	"fmt"
	"net/http"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/service/catalog"
	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

type RouteHandler struct {
	service catalog.RouteUseCase
	logger  *zap.Logger
}

type routeRequest struct {
	SourceID      *int64 `json:"source_id"`
	DestinationID *int64 `json:"destination_id"`
	Distance      *int   `json:"distance"`
}

func (r routeRequest) apply(route *domain.Route) {
	if r.SourceID != nil {
		route.SourceID = *r.SourceID
	}
	if r.DestinationID != nil {
		route.DestinationID = *r.DestinationID
	}
	if r.Distance != nil {
		route.Distance = *r.Distance
	}
}

type routeResponse struct {
	ID            int64  `json:"id"`
	SourceID      int64  `json:"source_id"`
	Source        string `json:"source"`
	DestinationID int64  `json:"destination_id"`
	Destination   string `json:"destination"`
	Distance      string `json:"distance"`
}

func toRouteResponse(r domain.Route, _ int) routeResponse {
	return routeResponse{
		ID:            r.ID,
		SourceID:      r.SourceID,
		Source:        r.SourceName,
		DestinationID: r.DestinationID,
		Destination:   r.DestinationName,
		Distance:      fmt.Sprintf("%d km.", r.Distance),
	}
}

func NewRouteHandler(service catalog.RouteUseCase, logger *zap.Logger) *RouteHandler {
	return &RouteHandler{service: service, logger: logger}
}

func (h *RouteHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.POST("", h.create)
	router.GET("/:id", h.get)
	router.PUT("/:id", h.replace)
	router.PATCH("/:id", h.patch)
	router.DELETE("/:id", h.delete)
}

func (h *RouteHandler) list(c *gin.Context) {
	page, ok := parsePage(c)
	if !ok {
		return
	}
	routes, err := h.service.List(c.Request.Context(), page)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, lo.Map(routes, toRouteResponse))
}

func (h *RouteHandler) get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	route, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toRouteResponse(*route, 0))
}

func (h *RouteHandler) create(c *gin.Context) {
	var req routeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	var route domain.Route
	req.apply(&route)

	if err := h.service.Create(c.Request.Context(), &route); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, toRouteResponse(route, 0))
}

func (h *RouteHandler) replace(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req routeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	route := domain.Route{ID: id}
	req.apply(&route)

	if err := h.service.Update(c.Request.Context(), &route); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toRouteResponse(route, 0))
}

func (h *RouteHandler) patch(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req routeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	route, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	req.apply(route)

	if err := h.service.Update(c.Request.Context(), route); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toRouteResponse(*route, 0))
}

func (h *RouteHandler) delete(c *gin.Context) {
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
