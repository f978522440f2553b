package catalog

import (
	"context"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/repository"
	"go.uber.org/zap"
)

type RouteUseCase interface {
	List(ctx context.Context, page domain.Page) ([]domain.Route, error)
	GetByID(ctx context.Context, id int64) (*domain.Route, error)
	Create(ctx context.Context, route *domain.Route) error
	Update(ctx context.Context, route *domain.Route) error
	Delete(ctx context.Context, id int64) error
}

type RouteService struct {
	routes repository.RouteRepository
	invalidator
}

func NewRouteService(routes repository.RouteRepository, cache FlightCache, logger *zap.Logger) *RouteService {
	return &RouteService{routes: routes, invalidator: invalidator{cache: cache, logger: logger}}
}

func (s *RouteService) List(ctx context.Context, page domain.Page) ([]domain.Route, error) {
	return s.routes.List(ctx, page)
}

func (s *RouteService) GetByID(ctx context.Context, id int64) (*domain.Route, error) {
	return s.routes.GetByID(ctx, id)
}

// Create stores the route and reloads it so the airport names are filled in.
func (s *RouteService) Create(ctx context.Context, route *domain.Route) error {
	if err := route.Validate(); err != nil {
		return err
	}
	if err := s.routes.Create(ctx, route); err != nil {
		return err
	}
	return s.reload(ctx, route)
}

func (s *RouteService) Update(ctx context.Context, route *domain.Route) error {
	if err := route.Validate(); err != nil {
		return err
	}
	if err := s.routes.Update(ctx, route); err != nil {
		return err
	}
	s.invalidate(ctx)
	return s.reload(ctx, route)
}

func (s *RouteService) Delete(ctx context.Context, id int64) error {
	if err := s.routes.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *RouteService) reload(ctx context.Context, route *domain.Route) error {
	stored, err := s.routes.GetByID(ctx, route.ID)
	if err != nil {
		return err
	}
	*route = *stored
	return nil
}

var _ RouteUseCase = (*RouteService)(nil)
