package orders

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/kafka"
	"github.com/Domenick1991/airport/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var (
	fixedNow = time.Date(2026, 10, 16, 8, 30, 0, 0, time.UTC)
	airplane = &domain.Airplane{ID: 1, Name: "A320", Rows: 10, SeatsInRow: 6}
)

type fixture struct {
	orders   *MockOrderRepository
	flights  *MockFlightRepository
	cache    *MockCache
	producer *MockProducer
	service  *OrderService
}

func newFixture() *fixture {
	f := &fixture{
		orders:   &MockOrderRepository{},
		flights:  &MockFlightRepository{},
		cache:    &MockCache{},
		producer: &MockProducer{},
	}
	f.service = NewOrderService(f.orders, f.flights, f.cache, f.producer, "order-events", zap.NewNop(),
		WithNotificationsTopic("notifications"),
		WithClock(func() time.Time { return fixedNow }),
	)
	return f
}

func (f *fixture) assertExpectations(t *testing.T) {
	f.orders.AssertExpectations(t)
	f.flights.AssertExpectations(t)
	f.cache.AssertExpectations(t)
	f.producer.AssertExpectations(t)
}

func TestOrderService_SubmitOrder_Success(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	candidates := []domain.TicketCandidate{
		{FlightID: 4, Row: 1, Seat: 1},
		{FlightID: 4, Row: 1, Seat: 2},
	}
	stored := &domain.Order{
		ID: 11, UserID: 7, CreatedAt: fixedNow,
		Tickets: []domain.Ticket{
			{ID: 1, FlightID: 4, OrderID: 11, Row: 1, Seat: 1, Route: "Boryspil - Heathrow"},
			{ID: 2, FlightID: 4, OrderID: 11, Row: 1, Seat: 2, Route: "Boryspil - Heathrow"},
		},
	}

	f.flights.On("GetAirplane", ctx, int64(4)).Return(airplane, nil).Once()
	f.flights.On("TakenSeats", ctx, int64(4)).Return([]domain.Seat{{Row: 2, Seat: 2}}, nil).Once()
	f.orders.On("Create", ctx, mock.AnythingOfType("*domain.Order")).Run(func(args mock.Arguments) {
		o := args.Get(1).(*domain.Order)
		o.ID = 11
	}).Return(nil).Once()
	f.orders.On("GetByID", ctx, int64(7), int64(11)).Return(stored, nil).Once()
	f.cache.On("InvalidateFlights", ctx).Return(nil).Once()
	f.producer.On("Publish", ctx, "order-events", "11", mock.AnythingOfType("kafka.OrderEvent")).Return(nil).Once()
	f.producer.On("Publish", ctx, "notifications", "11", mock.AnythingOfType("kafka.OrderEvent")).Return(nil).Once()

	submittedBefore := testutil.ToFloat64(metrics.OrdersSubmitted)
	issuedBefore := testutil.ToFloat64(metrics.TicketsIssued)

	order, err := f.service.SubmitOrder(ctx, 7, candidates)

	require.NoError(t, err)
	assert.Equal(t, stored, order)
	assert.Equal(t, submittedBefore+1, testutil.ToFloat64(metrics.OrdersSubmitted))
	assert.Equal(t, issuedBefore+2, testutil.ToFloat64(metrics.TicketsIssued))

	created := f.orders.Calls[0].Arguments.Get(1).(*domain.Order)
	assert.Equal(t, int64(7), created.UserID)
	assert.Equal(t, fixedNow, created.CreatedAt)
	assert.Len(t, created.Tickets, 2)

	event := f.producer.Calls[0].Arguments.Get(3).(kafka.OrderEvent)
	assert.Equal(t, kafka.EventOrderCreated, event.Type)
	assert.NotEmpty(t, event.ID)
	assert.Equal(t, "Boryspil - Heathrow", event.Tickets[0].Route)

	f.assertExpectations(t)
}

func TestOrderService_SubmitOrder_Empty(t *testing.T) {
	f := newFixture()
	before := testutil.ToFloat64(metrics.OrdersRejected.WithLabelValues(metrics.ReasonEmpty))

	order, err := f.service.SubmitOrder(context.Background(), 7, nil)

	assert.Nil(t, order)
	assert.ErrorIs(t, err, domain.ErrEmptyBatch)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.OrdersRejected.WithLabelValues(metrics.ReasonEmpty)))
	f.assertExpectations(t)
}

func TestOrderService_SubmitOrder_Bounds(t *testing.T) {
	testCases := []struct {
		name       string
		candidates []domain.TicketCandidate
		index      int
		field      string
	}{
		{
			name: "third candidate seat out of range",
			candidates: []domain.TicketCandidate{
				{FlightID: 4, Row: 1, Seat: 1},
				{FlightID: 4, Row: 1, Seat: 2},
				{FlightID: 4, Row: 1, Seat: 7},
			},
			index: 2,
			field: "seat",
		},
		{
			name:       "row zero",
			candidates: []domain.TicketCandidate{{FlightID: 4, Row: 0, Seat: 1}},
			index:      0,
			field:      "row",
		},
		{
			name:       "row past last",
			candidates: []domain.TicketCandidate{{FlightID: 4, Row: 11, Seat: 1}},
			index:      0,
			field:      "row",
		},
		{
			name:       "row and seat both bad reports row",
			candidates: []domain.TicketCandidate{{FlightID: 4, Row: 11, Seat: 0}},
			index:      0,
			field:      "row",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			ctx := context.Background()
			f.flights.On("GetAirplane", ctx, int64(4)).Return(airplane, nil).Once()

			order, err := f.service.SubmitOrder(ctx, 7, tc.candidates)

			assert.Nil(t, order)
			var bounds *domain.BoundsError
			require.True(t, errors.As(err, &bounds))
			assert.Equal(t, tc.index, bounds.Index)
			assert.Equal(t, tc.field, bounds.Field)

			f.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			f.flights.AssertNotCalled(t, "TakenSeats", mock.Anything, mock.Anything)
			f.assertExpectations(t)
		})
	}
}

func TestOrderService_SubmitOrder_SeatAlreadyTaken(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.flights.On("GetAirplane", ctx, int64(4)).Return(airplane, nil).Once()
	f.flights.On("TakenSeats", ctx, int64(4)).Return([]domain.Seat{{Row: 2, Seat: 3}}, nil).Once()

	_, err := f.service.SubmitOrder(ctx, 8, []domain.TicketCandidate{{FlightID: 4, Row: 2, Seat: 3}})

	var uniq *domain.UniquenessError
	require.True(t, errors.As(err, &uniq))
	assert.Equal(t, domain.UniquenessError{Index: 0, FlightID: 4, Row: 2, Seat: 3}, *uniq)
	f.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestOrderService_SubmitOrder_DuplicateInsideBatch(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.flights.On("GetAirplane", ctx, int64(4)).Return(airplane, nil).Once()
	f.flights.On("TakenSeats", ctx, int64(4)).Return([]domain.Seat{}, nil).Once()

	_, err := f.service.SubmitOrder(ctx, 8, []domain.TicketCandidate{
		{FlightID: 4, Row: 1, Seat: 1},
		{FlightID: 4, Row: 1, Seat: 1},
	})

	var uniq *domain.UniquenessError
	require.True(t, errors.As(err, &uniq))
	assert.Equal(t, 1, uniq.Index)
	f.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestOrderService_SubmitOrder_SameSeatOnDifferentFlights(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.flights.On("GetAirplane", ctx, int64(4)).Return(airplane, nil).Once()
	f.flights.On("GetAirplane", ctx, int64(5)).Return(airplane, nil).Once()
	f.flights.On("TakenSeats", ctx, int64(4)).Return([]domain.Seat{}, nil).Once()
	f.flights.On("TakenSeats", ctx, int64(5)).Return([]domain.Seat{}, nil).Once()
	f.orders.On("Create", ctx, mock.AnythingOfType("*domain.Order")).Return(nil).Once()
	f.orders.On("GetByID", ctx, int64(8), int64(0)).Return(nil, errors.New("replica lag")).Once()
	f.cache.On("InvalidateFlights", ctx).Return(errors.New("redis down")).Once()
	f.producer.On("Publish", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil).Twice()

	order, err := f.service.SubmitOrder(ctx, 8, []domain.TicketCandidate{
		{FlightID: 4, Row: 1, Seat: 1},
		{FlightID: 5, Row: 1, Seat: 1},
	})

	require.NoError(t, err)
	assert.Len(t, order.Tickets, 2)
	f.assertExpectations(t)
}

func TestOrderService_SubmitOrder_StoreConstraintWinsRace(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.flights.On("GetAirplane", ctx, int64(4)).Return(airplane, nil).Once()
	f.flights.On("TakenSeats", ctx, int64(4)).Return([]domain.Seat{}, nil).Once()
	f.orders.On("Create", ctx, mock.AnythingOfType("*domain.Order")).
		Return(&domain.UniquenessError{Index: 0, FlightID: 4, Row: 3, Seat: 3}).Once()

	before := testutil.ToFloat64(metrics.OrdersRejected.WithLabelValues(metrics.ReasonTaken))
	_, err := f.service.SubmitOrder(ctx, 9, []domain.TicketCandidate{{FlightID: 4, Row: 3, Seat: 3}})

	var uniq *domain.UniquenessError
	require.True(t, errors.As(err, &uniq))
	assert.Equal(t, int64(4), uniq.FlightID)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.OrdersRejected.WithLabelValues(metrics.ReasonTaken)))
	f.cache.AssertNotCalled(t, "InvalidateFlights", mock.Anything)
	f.producer.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestOrderService_SubmitOrder_UnknownFlight(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.flights.On("GetAirplane", ctx, int64(99)).Return(nil, domain.ErrNotFound).Once()

	_, err := f.service.SubmitOrder(ctx, 9, []domain.TicketCandidate{{FlightID: 99, Row: 1, Seat: 1}})

	assert.ErrorIs(t, err, domain.ErrInvalidReference)
	f.assertExpectations(t)
}

func TestOrderService_SubmitOrder_EveryRejectionIsCounted(t *testing.T) {
	storeErr := errors.New("connection reset")
	reasons := []string{
		metrics.ReasonEmpty,
		metrics.ReasonBounds,
		metrics.ReasonTaken,
		metrics.ReasonInvalidReference,
		metrics.ReasonInternal,
	}

	tests := []struct {
		name       string
		candidates []domain.TicketCandidate
		setup      func(ctx context.Context, f *fixture)
		reason     string
	}{
		{
			name:   "empty batch",
			reason: metrics.ReasonEmpty,
		},
		{
			name:       "seat outside grid",
			candidates: []domain.TicketCandidate{{FlightID: 4, Row: 11, Seat: 1}},
			setup: func(ctx context.Context, f *fixture) {
				f.flights.On("GetAirplane", ctx, int64(4)).Return(airplane, nil).Once()
			},
			reason: metrics.ReasonBounds,
		},
		{
			name:       "seat taken",
			candidates: []domain.TicketCandidate{{FlightID: 4, Row: 1, Seat: 1}},
			setup: func(ctx context.Context, f *fixture) {
				f.flights.On("GetAirplane", ctx, int64(4)).Return(airplane, nil).Once()
				f.flights.On("TakenSeats", ctx, int64(4)).Return([]domain.Seat{{Row: 1, Seat: 1}}, nil).Once()
			},
			reason: metrics.ReasonTaken,
		},
		{
			name:       "unknown flight",
			candidates: []domain.TicketCandidate{{FlightID: 99, Row: 1, Seat: 1}},
			setup: func(ctx context.Context, f *fixture) {
				f.flights.On("GetAirplane", ctx, int64(99)).Return(nil, domain.ErrNotFound).Once()
			},
			reason: metrics.ReasonInvalidReference,
		},
		{
			name:       "flight deleted before insert",
			candidates: []domain.TicketCandidate{{FlightID: 4, Row: 1, Seat: 1}},
			setup: func(ctx context.Context, f *fixture) {
				f.flights.On("GetAirplane", ctx, int64(4)).Return(airplane, nil).Once()
				f.flights.On("TakenSeats", ctx, int64(4)).Return([]domain.Seat{}, nil).Once()
				f.orders.On("Create", ctx, mock.AnythingOfType("*domain.Order")).Return(domain.ErrInvalidReference).Once()
			},
			reason: metrics.ReasonInvalidReference,
		},
		{
			name:       "airplane lookup fails",
			candidates: []domain.TicketCandidate{{FlightID: 4, Row: 1, Seat: 1}},
			setup: func(ctx context.Context, f *fixture) {
				f.flights.On("GetAirplane", ctx, int64(4)).Return(nil, storeErr).Once()
			},
			reason: metrics.ReasonInternal,
		},
		{
			name:       "taken seats lookup fails",
			candidates: []domain.TicketCandidate{{FlightID: 4, Row: 1, Seat: 1}},
			setup: func(ctx context.Context, f *fixture) {
				f.flights.On("GetAirplane", ctx, int64(4)).Return(airplane, nil).Once()
				f.flights.On("TakenSeats", ctx, int64(4)).Return([]domain.Seat(nil), storeErr).Once()
			},
			reason: metrics.ReasonInternal,
		},
		{
			name:       "insert fails",
			candidates: []domain.TicketCandidate{{FlightID: 4, Row: 1, Seat: 1}},
			setup: func(ctx context.Context, f *fixture) {
				f.flights.On("GetAirplane", ctx, int64(4)).Return(airplane, nil).Once()
				f.flights.On("TakenSeats", ctx, int64(4)).Return([]domain.Seat{}, nil).Once()
				f.orders.On("Create", ctx, mock.AnythingOfType("*domain.Order")).Return(storeErr).Once()
			},
			reason: metrics.ReasonInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			ctx := context.Background()
			if tt.setup != nil {
				tt.setup(ctx, f)
			}
			before := make(map[string]float64, len(reasons))
			for _, r := range reasons {
				before[r] = testutil.ToFloat64(metrics.OrdersRejected.WithLabelValues(r))
			}

			_, err := f.service.SubmitOrder(ctx, 9, tt.candidates)

			require.Error(t, err)
			for _, r := range reasons {
				want := before[r]
				if r == tt.reason {
					want++
				}
				assert.Equal(t, want, testutil.ToFloat64(metrics.OrdersRejected.WithLabelValues(r)), r)
			}
			f.assertExpectations(t)
		})
	}
}

func TestOrderService_SubmitOrder_StoreFailure(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.flights.On("GetAirplane", ctx, int64(4)).Return(airplane, nil).Once()
	f.flights.On("TakenSeats", ctx, int64(4)).Return([]domain.Seat{}, nil).Once()
	f.orders.On("Create", ctx, mock.AnythingOfType("*domain.Order")).Return(errors.New("connection reset")).Once()

	_, err := f.service.SubmitOrder(ctx, 9, []domain.TicketCandidate{{FlightID: 4, Row: 1, Seat: 1}})

	require.Error(t, err)
	assert.EqualError(t, err, "create order: connection reset")
	var uniq *domain.UniquenessError
	assert.False(t, errors.As(err, &uniq))
	f.assertExpectations(t)
}

func TestOrderService_SubmitOrder_PublishFailureIsNotFatal(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.flights.On("GetAirplane", ctx, int64(4)).Return(airplane, nil).Once()
	f.flights.On("TakenSeats", ctx, int64(4)).Return([]domain.Seat{}, nil).Once()
	f.orders.On("Create", ctx, mock.AnythingOfType("*domain.Order")).Return(nil).Once()
	f.orders.On("GetByID", ctx, int64(9), int64(0)).Return(&domain.Order{UserID: 9}, nil).Once()
	f.cache.On("InvalidateFlights", ctx).Return(nil).Once()
	f.producer.On("Publish", ctx, "order-events", mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()

	order, err := f.service.SubmitOrder(ctx, 9, []domain.TicketCandidate{{FlightID: 4, Row: 1, Seat: 1}})

	require.NoError(t, err)
	assert.NotNil(t, order)
	f.assertExpectations(t)
}

func TestOrderService_CancelOrder(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	deleted := &domain.Order{ID: 3, UserID: 7, Tickets: []domain.Ticket{{FlightID: 4, Row: 1, Seat: 1}}}
	f.orders.On("Delete", ctx, int64(7), int64(3)).Return(deleted, nil).Once()
	f.cache.On("InvalidateFlights", ctx).Return(nil).Once()
	f.producer.On("Publish", ctx, "order-events", "3", mock.MatchedBy(func(e kafka.OrderEvent) bool {
		return e.Type == kafka.EventOrderCancelled && e.OrderID == 3
	})).Return(nil).Once()
	f.producer.On("Publish", ctx, "notifications", "3", mock.Anything).Return(nil).Once()

	order, err := f.service.CancelOrder(ctx, 7, 3)

	require.NoError(t, err)
	assert.Equal(t, deleted, order)
	f.assertExpectations(t)
}

func TestOrderService_CancelOrder_NotFound(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.orders.On("Delete", ctx, int64(7), int64(3)).Return(nil, domain.ErrNotFound).Once()

	_, err := f.service.CancelOrder(ctx, 7, 3)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	f.cache.AssertNotCalled(t, "InvalidateFlights", mock.Anything)
	f.assertExpectations(t)
}

func TestOrderService_ListAndGet(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	page := domain.NewPage(10, 0)
	list := []domain.Order{{ID: 2, UserID: 7}, {ID: 1, UserID: 7}}
	f.orders.On("ListByUser", ctx, int64(7), page).Return(list, nil).Once()
	f.orders.On("GetByID", ctx, int64(7), int64(2)).Return(&list[0], nil).Once()

	got, err := f.service.ListOrders(ctx, 7, page)
	require.NoError(t, err)
	assert.Equal(t, list, got)

	one, err := f.service.GetOrder(ctx, 7, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), one.ID)
	f.assertExpectations(t)
}
