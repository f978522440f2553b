package flights

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/repository"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

type FlightUseCase interface {
	List(ctx context.Context, page domain.Page) ([]domain.FlightSummary, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	Detail(ctx context.Context, id int64) (*domain.FlightDetail, error)
	AvailableSeats(ctx context.Context, id int64) (int, error)
	Create(ctx context.Context, flight *domain.Flight) error
	Update(ctx context.Context, flight *domain.Flight) error
	Delete(ctx context.Context, id int64) error
}

// FlightCache stores list pages keyed by an invalidation generation. A nil
// slice from GetFlights is a miss; the returned generation is the one a fill
// must be written under.
type FlightCache interface {
	GetFlights(ctx context.Context, page domain.Page) ([]domain.FlightSummary, int64, error)
	SetFlights(ctx context.Context, generation int64, page domain.Page, flights []domain.FlightSummary) error
	InvalidateFlights(ctx context.Context) error
}

type FlightService struct {
	flights   repository.FlightRepository
	routes    repository.RouteRepository
	airplanes repository.AirplaneRepository
	cache     FlightCache
	logger    *zap.Logger
}

func NewFlightService(
	flights repository.FlightRepository,
	routes repository.RouteRepository,
	airplanes repository.AirplaneRepository,
	cache FlightCache,
	logger *zap.Logger,
) *FlightService {
	return &FlightService{
		flights:   flights,
		routes:    routes,
		airplanes: airplanes,
		cache:     cache,
		logger:    logger,
	}
}

func (s *FlightService) List(ctx context.Context, page domain.Page) ([]domain.FlightSummary, error) {
	var (
		fill       bool
		generation int64
	)
	if s.cache != nil {
		cached, gen, err := s.cache.GetFlights(ctx, page)
		switch {
		case err != nil:
			s.logger.Warn("flight cache read failed", zap.Error(err))
		case cached != nil:
			return cached, nil
		default:
			fill, generation = true, gen
		}
	}

	flights, err := s.flights.List(ctx, page)
	if err != nil {
		return nil, err
	}
	// The generation was read before the store, so an invalidation that
	// raced with this read makes the fill unreachable.
	if fill {
		if err := s.cache.SetFlights(ctx, generation, page, flights); err != nil {
			s.logger.Warn("flight cache write failed", zap.Error(err))
		}
	}
	return flights, nil
}

func (s *FlightService) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	return s.flights.GetByID(ctx, id)
}

// Detail assembles the flight with its route, airplane and the seats already
// sold.
func (s *FlightService) Detail(ctx context.Context, id int64) (*domain.FlightDetail, error) {
	flight, err := s.flights.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	route, err := s.routes.GetByID(ctx, flight.RouteID)
	if err != nil {
		return nil, fmt.Errorf("flight %d route: %w", id, err)
	}
	airplane, err := s.airplanes.GetByID(ctx, flight.AirplaneID)
	if err != nil {
		return nil, fmt.Errorf("flight %d airplane: %w", id, err)
	}
	taken, err := s.flights.TakenSeats(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("flight %d taken seats: %w", id, err)
	}

	return &domain.FlightDetail{
		Flight:           *flight,
		Route:            *route,
		Airplane:         *airplane,
		TakenSeats:       taken,
		TicketsAvailable: domain.AvailableSeats(*airplane, len(taken)),
	}, nil
}

func (s *FlightService) AvailableSeats(ctx context.Context, id int64) (int, error) {
	airplane, err := s.flights.GetAirplane(ctx, id)
	if err != nil {
		return 0, err
	}
	taken, err := s.flights.CountTickets(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("flight %d tickets: %w", id, err)
	}
	return domain.AvailableSeats(*airplane, taken), nil
}

func (s *FlightService) Create(ctx context.Context, flight *domain.Flight) error {
	if err := flight.ValidateSchedule(); err != nil {
		return err
	}
	if err := s.flights.Create(ctx, flight); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// Update rejects moving the flight to an airplane whose grid lacks a seat
// that already has a ticket.
func (s *FlightService) Update(ctx context.Context, flight *domain.Flight) error {
	if err := flight.ValidateSchedule(); err != nil {
		return err
	}
	if err := s.checkTicketsFit(ctx, flight); err != nil {
		return err
	}
	if err := s.flights.Update(ctx, flight); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *FlightService) checkTicketsFit(ctx context.Context, flight *domain.Flight) error {
	taken, err := s.flights.TakenSeats(ctx, flight.ID)
	if err != nil {
		return fmt.Errorf("flight %d taken seats: %w", flight.ID, err)
	}
	if len(taken) == 0 {
		return nil
	}
	airplane, err := s.airplanes.GetByID(ctx, flight.AirplaneID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.ErrInvalidReference
	}
	if err != nil {
		return fmt.Errorf("flight %d airplane: %w", flight.ID, err)
	}
	outside, found := lo.Find(taken, func(seat domain.Seat) bool {
		return domain.ValidateSeat(seat.Row, seat.Seat, *airplane) != nil
	})
	if found {
		return &domain.FieldError{
			Field:   "airplane_id",
			Message: fmt.Sprintf("airplane %d has no seat %d in row %d, which is ticketed", airplane.ID, outside.Seat, outside.Row),
		}
	}
	return nil
}

func (s *FlightService) Delete(ctx context.Context, id int64) error {
	if err := s.flights.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *FlightService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateFlights(ctx); err != nil {
		s.logger.Warn("flight cache invalidation failed", zap.Error(err))
	}
}

var _ FlightUseCase = (*FlightService)(nil)
