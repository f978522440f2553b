package api

import (
	"net/http"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/service/catalog"
	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

type CrewHandler struct {
	service catalog.CrewUseCase
	logger  *zap.Logger
}

type crewRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

func (r crewRequest) apply(crew *domain.Crew) {
	if r.FirstName != nil {
		crew.FirstName = *r.FirstName
	}
	if r.LastName != nil {
		crew.LastName = *r.LastName
	}
}

type crewResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name"`
}

func toCrewResponse(c domain.Crew, _ int) crewResponse {
	return crewResponse{ID: c.ID, FirstName: c.FirstName, LastName: c.LastName, FullName: c.FullName()}
}

func NewCrewHandler(service catalog.CrewUseCase, logger *zap.Logger) *CrewHandler {
	return &CrewHandler{service: service, logger: logger}
}

func (h *CrewHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.POST("", h.create)
	router.GET("/:id", h.get)
	router.PUT("/:id", h.replace)
	router.PATCH("/:id", h.patch)
	router.DELETE("/:id", h.delete)
}

func (h *CrewHandler) list(c *gin.Context) {
	page, ok := parsePage(c)
	if !ok {
		return
	}
	crews, err := h.service.List(c.Request.Context(), page)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, lo.Map(crews, toCrewResponse))
}

func (h *CrewHandler) get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	crew, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toCrewResponse(*crew, 0))
}

func (h *CrewHandler) create(c *gin.Context) {
	var req crewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	var crew domain.Crew
	req.apply(&crew)

	if err := h.service.Create(c.Request.Context(), &crew); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, toCrewResponse(crew, 0))
}

func (h *CrewHandler) replace(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req crewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	crew := domain.Crew{ID: id}
	req.apply(&crew)

	if err := h.service.Update(c.Request.Context(), &crew); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toCrewResponse(crew, 0))
}

func (h *CrewHandler) patch(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req crewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	crew, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	req.apply(crew)

	if err := h.service.Update(c.Request.Context(), crew); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toCrewResponse(*crew, 0))
}

func (h *CrewHandler) delete(c *gin.Context) {
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
