package api

import (
	"net/http"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/service/catalog"
	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

type AirplaneTypeHandler struct {
	service catalog.AirplaneTypeUseCase
	logger  *zap.Logger
}

type airplaneTypeRequest struct {
	Name *string `json:"name"`
}

type airplaneTypeResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func toAirplaneTypeResponse(t domain.AirplaneType, _ int) airplaneTypeResponse {
	return airplaneTypeResponse{ID: t.ID, Name: t.Name}
}

func NewAirplaneTypeHandler(service catalog.AirplaneTypeUseCase, logger *zap.Logger) *AirplaneTypeHandler {
	return &AirplaneTypeHandler{service: service, logger: logger}
}

func (h *AirplaneTypeHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.POST("", h.create)
	router.GET("/:id", h.get)
	router.PUT("/:id", h.update)
	router.PATCH("/:id", h.update)
	router.DELETE("/:id", h.delete)
}

func (h *AirplaneTypeHandler) list(c *gin.Context) {
	page, ok := parsePage(c)
	if !ok {
		return
	}
	types, err := h.service.List(c.Request.Context(), page)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, lo.Map(types, toAirplaneTypeResponse))
}

func (h *AirplaneTypeHandler) get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	airplaneType, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toAirplaneTypeResponse(*airplaneType, 0))
}

func (h *AirplaneTypeHandler) create(c *gin.Context) {
	var req airplaneTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	airplaneType := domain.AirplaneType{Name: lo.FromPtr(req.Name)}

	if err := h.service.Create(c.Request.Context(), &airplaneType); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, toAirplaneTypeResponse(airplaneType, 0))
}

// update serves PUT and PATCH alike: name is the only writable field.
func (h *AirplaneTypeHandler) update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req airplaneTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	airplaneType := domain.AirplaneType{ID: id, Name: lo.FromPtr(req.Name)}

	if err := h.service.Update(c.Request.Context(), &airplaneType); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toAirplaneTypeResponse(airplaneType, 0))
}

func (h *AirplaneTypeHandler) delete(c *gin.Context) {
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

type AirplaneHandler struct {
	service catalog.AirplaneUseCase
	logger  *zap.Logger
}

type airplaneRequest struct {
	Name           *string `json:"name"`
	Rows           *int    `json:"rows"`
	SeatsInRow     *int    `json:"seats_in_row"`
	AirplaneTypeID *int64  `json:"airplane_type_id"`
}

func (r airplaneRequest) apply(airplane *domain.Airplane) {
	if r.Name != nil {
		airplane.Name = *r.Name
	}
	if r.Rows != nil {
		airplane.Rows = *r.Rows
	}
	if r.SeatsInRow != nil {
		airplane.SeatsInRow = *r.SeatsInRow
	}
	if r.AirplaneTypeID != nil {
		airplane.AirplaneTypeID = *r.AirplaneTypeID
	}
}

type airplaneResponse struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Rows           int    `json:"rows"`
	SeatsInRow     int    `json:"seats_in_row"`
	AirplaneTypeID int64  `json:"airplane_type_id"`
	AirplaneType   string `json:"airplane_type"`
	Capacity       int    `json:"capacity"`
}

func toAirplaneResponse(a domain.Airplane, _ int) airplaneResponse {
	return airplaneResponse{
		ID:             a.ID,
		Name:           a.Name,
		Rows:           a.Rows,
		SeatsInRow:     a.SeatsInRow,
		AirplaneTypeID: a.AirplaneTypeID,
		AirplaneType:   a.AirplaneTypeName,
		Capacity:       a.Capacity(),
	}
}

func NewAirplaneHandler(service catalog.AirplaneUseCase, logger *zap.Logger) *AirplaneHandler {
	return &AirplaneHandler{service: service, logger: logger}
}

func (h *AirplaneHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.POST("", h.create)
	router.GET("/:id", h.get)
	router.PUT("/:id", h.replace)
	router.PATCH("/:id", h.patch)
	router.DELETE("/:id", h.delete)
}

func (h *AirplaneHandler) list(c *gin.Context) {
	page, ok := parsePage(c)
	if !ok {
		return
	}
	airplanes, err := h.service.List(c.Request.Context(), page)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, lo.Map(airplanes, toAirplaneResponse))
}

func (h *AirplaneHandler) get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	airplane, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toAirplaneResponse(*airplane, 0))
}

func (h *AirplaneHandler) create(c *gin.Context) {
	var req airplaneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	var airplane domain.Airplane
	req.apply(&airplane)

	if err := h.service.Create(c.Request.Context(), &airplane); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, toAirplaneResponse(airplane, 0))
}

func (h *AirplaneHandler) replace(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req airplaneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	airplane := domain.Airplane{ID: id}
	req.apply(&airplane)

	if err := h.service.Update(c.Request.Context(), &airplane); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toAirplaneResponse(airplane, 0))
}

func (h *AirplaneHandler) patch(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req airplaneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	airplane, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	req.apply(airplane)

	if err := h.service.Update(c.Request.Context(), airplane); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toAirplaneResponse(*airplane, 0))
}

func (h *AirplaneHandler) delete(c *gin.Context) {
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
