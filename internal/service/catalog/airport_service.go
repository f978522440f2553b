package catalog

import (
	"context"
	"fmt"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/repository"
	"go.uber.org/zap"
)

type AirportUseCase interface {
	List(ctx context.Context, filter domain.AirportFilter, page domain.Page) ([]domain.Airport, error)
	GetByID(ctx context.Context, id int64) (*domain.Airport, error)
	Detail(ctx context.Context, id int64) (*domain.AirportDetail, error)
	Create(ctx context.Context, airport *domain.Airport) error
	Update(ctx context.Context, airport *domain.Airport) error
	Delete(ctx context.Context, id int64) error
}

type AirportService struct {
	airports repository.AirportRepository
	routes   repository.RouteRepository
	invalidator
}

func NewAirportService(airports repository.AirportRepository, routes repository.RouteRepository, cache FlightCache, logger *zap.Logger) *AirportService {
	return &AirportService{
		airports:    airports,
		routes:      routes,
		invalidator: invalidator{cache: cache, logger: logger},
	}
}

func (s *AirportService) List(ctx context.Context, filter domain.AirportFilter, page domain.Page) ([]domain.Airport, error) {
	return s.airports.List(ctx, filter, page)
}

func (s *AirportService) GetByID(ctx context.Context, id int64) (*domain.Airport, error) {
	return s.airports.GetByID(ctx, id)
}

// Detail returns the airport with the routes leaving from and arriving at it.
func (s *AirportService) Detail(ctx context.Context, id int64) (*domain.AirportDetail, error) {
	airport, err := s.airports.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	departures, arrivals, err := s.routes.ListByAirport(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("airport %d routes: %w", id, err)
	}
	return &domain.AirportDetail{
		Airport:         *airport,
		DepartureRoutes: departures,
		ArrivalRoutes:   arrivals,
	}, nil
}

func (s *AirportService) Create(ctx context.Context, airport *domain.Airport) error {
	if err := airport.Validate(); err != nil {
		return err
	}
	return s.airports.Create(ctx, airport)
}

func (s *AirportService) Update(ctx context.Context, airport *domain.Airport) error {
	if err := airport.Validate(); err != nil {
		return err
	}
	if err := s.airports.Update(ctx, airport); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *AirportService) Delete(ctx context.Context, id int64) error {
	if err := s.airports.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

var _ AirportUseCase = (*AirportService)(nil)
