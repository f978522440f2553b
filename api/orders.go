package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/service/orders"
	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

type OrderHandler struct {
	service orders.OrderUseCase
	logger  *zap.Logger
}

type ticketRequest struct {
	FlightID int64 `json:"flight_id"`
	Row      int   `json:"row"`
	Seat     int   `json:"seat"`
}

type createOrderRequest struct {
	Tickets []ticketRequest `json:"tickets"`
}

type ticketResponse struct {
	ID       int64  `json:"id"`
	Row      int    `json:"row"`
	Seat     int    `json:"seat"`
	FlightID int64  `json:"flight_id"`
	Route    string `json:"route"`
}

type orderResponse struct {
	ID        int64            `json:"id"`
	CreatedAt string           `json:"created_at"`
	Tickets   []ticketResponse `json:"tickets"`
}

func toOrderResponse(o domain.Order, _ int) orderResponse {
	return orderResponse{
		ID:        o.ID,
		CreatedAt: o.CreatedAt.Format(time.RFC3339),
		Tickets: lo.Map(o.Tickets, func(t domain.Ticket, _ int) ticketResponse {
			return ticketResponse{ID: t.ID, Row: t.Row, Seat: t.Seat, FlightID: t.FlightID, Route: t.Route}
		}),
	}
}

func NewOrderHandler(service orders.OrderUseCase, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{service: service, logger: logger}
}

func (h *OrderHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.POST("", h.create)
	router.GET("/:id", h.get)
	router.DELETE("/:id", h.cancel)
}

func (h *OrderHandler) create(c *gin.Context) {
	user, err := userID(c)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	candidates := lo.Map(req.Tickets, func(t ticketRequest, _ int) domain.TicketCandidate {
		return domain.TicketCandidate{FlightID: t.FlightID, Row: t.Row, Seat: t.Seat}
	})
	order, err := h.service.SubmitOrder(c.Request.Context(), user, candidates)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, toOrderResponse(*order, 0))
}

func (h *OrderHandler) list(c *gin.Context) {
	user, err := userID(c)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	page, ok := parsePage(c)
	if !ok {
		return
	}
	list, err := h.service.ListOrders(c.Request.Context(), user, page)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, lo.Map(list, toOrderResponse))
}

func (h *OrderHandler) get(c *gin.Context) {
	user, err := userID(c)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	order, err := h.service.GetOrder(c.Request.Context(), user, id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order, 0))
}

func (h *OrderHandler) cancel(c *gin.Context) {
	user, err := userID(c)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	if _, err := h.service.CancelOrder(c.Request.Context(), user, id); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
