package orders

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/kafka"
	"github.com/Domenick1991/airport/internal/metrics"
	"github.com/Domenick1991/airport/internal/repository"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

type OrderUseCase interface {
	SubmitOrder(ctx context.Context, userID int64, candidates []domain.TicketCandidate) (*domain.Order, error)
	ListOrders(ctx context.Context, userID int64, page domain.Page) ([]domain.Order, error)
	GetOrder(ctx context.Context, userID, id int64) (*domain.Order, error)
	CancelOrder(ctx context.Context, userID, id int64) (*domain.Order, error)
}

type FlightCache interface {
	InvalidateFlights(ctx context.Context) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type OrderService struct {
	orders             repository.OrderRepository
	flights            repository.FlightRepository
	cache              FlightCache
	producer           Producer
	eventsTopic        string
	notificationsTopic string
	logger             *zap.Logger
	now                func() time.Time
}

type OrderServiceOption func(*OrderService)

func WithNotificationsTopic(topic string) OrderServiceOption {
	return func(s *OrderService) {
		s.notificationsTopic = topic
	}
}

func WithClock(now func() time.Time) OrderServiceOption {
	return func(s *OrderService) {
		s.now = now
	}
}

func NewOrderService(
	orders repository.OrderRepository,
	flights repository.FlightRepository,
	cache FlightCache,
	producer Producer,
	eventsTopic string,
	logger *zap.Logger,
	opts ...OrderServiceOption,
) *OrderService {
	service := &OrderService{
		orders:      orders,
		flights:     flights,
		cache:       cache,
		producer:    producer,
		eventsTopic: eventsTopic,
		logger:      logger,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// SubmitOrder books every candidate seat for userID or none of them.
// Bounds are checked for the whole batch before any seat is checked for
// availability; the first failing candidate aborts the submission.
func (s *OrderService) SubmitOrder(ctx context.Context, userID int64, candidates []domain.TicketCandidate) (*domain.Order, error) {
	order, err := s.commit(ctx, userID, candidates)
	if err != nil {
		metrics.OrdersRejected.WithLabelValues(rejectionReason(err)).Inc()
		return nil, err
	}

	metrics.OrdersSubmitted.Inc()
	metrics.TicketsIssued.Add(float64(len(order.Tickets)))

	if stored, err := s.orders.GetByID(ctx, userID, order.ID); err == nil {
		order = stored
	} else {
		s.logger.Warn("reload created order", zap.Int64("order_id", order.ID), zap.Error(err))
	}

	s.invalidateFlights(ctx)
	if err := s.publish(ctx, kafka.EventOrderCreated, order); err != nil {
		s.logger.Warn("failed to publish order event", zap.String("type", kafka.EventOrderCreated), zap.Int64("order_id", order.ID), zap.Error(err))
	}
	return order, nil
}

func (s *OrderService) commit(ctx context.Context, userID int64, candidates []domain.TicketCandidate) (*domain.Order, error) {
	if len(candidates) == 0 {
		return nil, domain.ErrEmptyBatch
	}

	if err := s.validateBounds(ctx, candidates); err != nil {
		return nil, err
	}
	if err := s.checkAvailability(ctx, candidates); err != nil {
		return nil, err
	}

	order := &domain.Order{
		UserID:    userID,
		CreatedAt: s.now().UTC(),
		Tickets: lo.Map(candidates, func(c domain.TicketCandidate, _ int) domain.Ticket {
			return domain.Ticket{FlightID: c.FlightID, Row: c.Row, Seat: c.Seat}
		}),
	}

	// The store constraint on (flight, row, seat) catches submissions that
	// raced past checkAvailability.
	if err := s.orders.Create(ctx, order); err != nil {
		var uniq *domain.UniquenessError
		if errors.As(err, &uniq) || errors.Is(err, domain.ErrInvalidReference) {
			return nil, err
		}
		return nil, fmt.Errorf("create order: %w", err)
	}
	return order, nil
}

// rejectionReason labels a failed submission for orders_rejected_total.
func rejectionReason(err error) string {
	var (
		bounds *domain.BoundsError
		uniq   *domain.UniquenessError
	)
	switch {
	case errors.Is(err, domain.ErrEmptyBatch):
		return metrics.ReasonEmpty
	case errors.As(err, &bounds):
		return metrics.ReasonBounds
	case errors.As(err, &uniq):
		return metrics.ReasonTaken
	case errors.Is(err, domain.ErrInvalidReference):
		return metrics.ReasonInvalidReference
	default:
		return metrics.ReasonInternal
	}
}

func (s *OrderService) validateBounds(ctx context.Context, candidates []domain.TicketCandidate) error {
	airplanes := make(map[int64]*domain.Airplane)
	for i, c := range candidates {
		airplane, ok := airplanes[c.FlightID]
		if !ok {
			var err error
			airplane, err = s.flights.GetAirplane(ctx, c.FlightID)
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("ticket %d: flight %d: %w", i, c.FlightID, domain.ErrInvalidReference)
			}
			if err != nil {
				return fmt.Errorf("resolve airplane of flight %d: %w", c.FlightID, err)
			}
			airplanes[c.FlightID] = airplane
		}

		if err := domain.ValidateSeat(c.Row, c.Seat, *airplane); err != nil {
			var bounds *domain.BoundsError
			if errors.As(err, &bounds) {
				bounds.Index = i
			}
			return err
		}
	}
	return nil
}

func (s *OrderService) checkAvailability(ctx context.Context, candidates []domain.TicketCandidate) error {
	held := make(map[int64]map[domain.Seat]struct{})
	for i, c := range candidates {
		seats, ok := held[c.FlightID]
		if !ok {
			taken, err := s.flights.TakenSeats(ctx, c.FlightID)
			if err != nil {
				return fmt.Errorf("load taken seats of flight %d: %w", c.FlightID, err)
			}
			seats = make(map[domain.Seat]struct{}, len(taken)+len(candidates))
			for _, seat := range taken {
				seats[seat] = struct{}{}
			}
			held[c.FlightID] = seats
		}

		seat := domain.Seat{Row: c.Row, Seat: c.Seat}
		if _, dup := seats[seat]; dup {
			return &domain.UniquenessError{Index: i, FlightID: c.FlightID, Row: c.Row, Seat: c.Seat}
		}
		seats[seat] = struct{}{}
	}
	return nil
}

func (s *OrderService) ListOrders(ctx context.Context, userID int64, page domain.Page) ([]domain.Order, error) {
	return s.orders.ListByUser(ctx, userID, page)
}

func (s *OrderService) GetOrder(ctx context.Context, userID, id int64) (*domain.Order, error) {
	return s.orders.GetByID(ctx, userID, id)
}

// CancelOrder deletes the order together with its tickets.
func (s *OrderService) CancelOrder(ctx context.Context, userID, id int64) (*domain.Order, error) {
	order, err := s.orders.Delete(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	s.invalidateFlights(ctx)
	if err := s.publish(ctx, kafka.EventOrderCancelled, order); err != nil {
		s.logger.Warn("failed to publish order event", zap.String("type", kafka.EventOrderCancelled), zap.Int64("order_id", order.ID), zap.Error(err))
	}
	return order, nil
}

func (s *OrderService) invalidateFlights(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateFlights(ctx); err != nil {
		s.logger.Warn("invalidate flights cache", zap.Error(err))
	}
}

func (s *OrderService) publish(ctx context.Context, eventType string, order *domain.Order) error {
	if s.producer == nil || s.eventsTopic == "" {
		return nil
	}
	event := kafka.OrderEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		OrderID:   order.ID,
		UserID:    order.UserID,
		CreatedAt: order.CreatedAt,
		Tickets: lo.Map(order.Tickets, func(t domain.Ticket, _ int) kafka.TicketEvent {
			return kafka.TicketEvent{FlightID: t.FlightID, Row: t.Row, Seat: t.Seat, Route: t.Route}
		}),
	}
	key := strconv.FormatInt(order.ID, 10)
	if err := s.producer.Publish(ctx, s.eventsTopic, key, event); err != nil {
		return err
	}
	if s.notificationsTopic != "" {
		return s.producer.Publish(ctx, s.notificationsTopic, key, event)
	}
	return nil
}

var _ OrderUseCase = (*OrderService)(nil)
