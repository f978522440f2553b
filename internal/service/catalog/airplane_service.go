package catalog

import (
	"context"
	"fmt"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/repository"
	"go.uber.org/zap"
)

type AirplaneTypeUseCase interface {
	List(ctx context.Context, page domain.Page) ([]domain.AirplaneType, error)
	GetByID(ctx context.Context, id int64) (*domain.AirplaneType, error)
	Create(ctx context.Context, airplaneType *domain.AirplaneType) error
	Update(ctx context.Context, airplaneType *domain.AirplaneType) error
	Delete(ctx context.Context, id int64) error
}

type AirplaneUseCase interface {
	List(ctx context.Context, page domain.Page) ([]domain.Airplane, error)
	GetByID(ctx context.Context, id int64) (*domain.Airplane, error)
	Create(ctx context.Context, airplane *domain.Airplane) error
	Update(ctx context.Context, airplane *domain.Airplane) error
	Delete(ctx context.Context, id int64) error
}

type AirplaneTypeService struct {
	types repository.AirplaneTypeRepository
	invalidator
}

func NewAirplaneTypeService(types repository.AirplaneTypeRepository, cache FlightCache, logger *zap.Logger) *AirplaneTypeService {
	return &AirplaneTypeService{types: types, invalidator: invalidator{cache: cache, logger: logger}}
}

func (s *AirplaneTypeService) List(ctx context.Context, page domain.Page) ([]domain.AirplaneType, error) {
	return s.types.List(ctx, page)
}

func (s *AirplaneTypeService) GetByID(ctx context.Context, id int64) (*domain.AirplaneType, error) {
	return s.types.GetByID(ctx, id)
}

func (s *AirplaneTypeService) Create(ctx context.Context, airplaneType *domain.AirplaneType) error {
	if err := airplaneType.Validate(); err != nil {
		return err
	}
	return s.types.Create(ctx, airplaneType)
}

func (s *AirplaneTypeService) Update(ctx context.Context, airplaneType *domain.AirplaneType) error {
	if err := airplaneType.Validate(); err != nil {
		return err
	}
	return s.types.Update(ctx, airplaneType)
}

// Delete cascades to airplanes of the type and their flights.
func (s *AirplaneTypeService) Delete(ctx context.Context, id int64) error {
	if err := s.types.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

type AirplaneService struct {
	airplanes repository.AirplaneRepository
	invalidator
}

func NewAirplaneService(airplanes repository.AirplaneRepository, cache FlightCache, logger *zap.Logger) *AirplaneService {
	return &AirplaneService{airplanes: airplanes, invalidator: invalidator{cache: cache, logger: logger}}
}

func (s *AirplaneService) List(ctx context.Context, page domain.Page) ([]domain.Airplane, error) {
	return s.airplanes.List(ctx, page)
}

func (s *AirplaneService) GetByID(ctx context.Context, id int64) (*domain.Airplane, error) {
	return s.airplanes.GetByID(ctx, id)
}

func (s *AirplaneService) Create(ctx context.Context, airplane *domain.Airplane) error {
	if err := airplane.Validate(); err != nil {
		return err
	}
	if err := s.airplanes.Create(ctx, airplane); err != nil {
		return err
	}
	return s.reload(ctx, airplane)
}

// Update may resize the grid, which changes tickets_available in the flight
// list. A grid that no longer holds an issued ticket is rejected.
func (s *AirplaneService) Update(ctx context.Context, airplane *domain.Airplane) error {
	if err := airplane.Validate(); err != nil {
		return err
	}
	outermost, err := s.airplanes.OutermostTicket(ctx, airplane.ID)
	if err != nil {
		return fmt.Errorf("airplane %d tickets: %w", airplane.ID, err)
	}
	if err := airplane.CheckRegrid(outermost); err != nil {
		return err
	}
	if err := s.airplanes.Update(ctx, airplane); err != nil {
		return err
	}
	s.invalidate(ctx)
	return s.reload(ctx, airplane)
}

func (s *AirplaneService) Delete(ctx context.Context, id int64) error {
	if err := s.airplanes.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *AirplaneService) reload(ctx context.Context, airplane *domain.Airplane) error {
	stored, err := s.airplanes.GetByID(ctx, airplane.ID)
	if err != nil {
		return err
	}
	*airplane = *stored
	return nil
}

var (
	_ AirplaneTypeUseCase = (*AirplaneTypeService)(nil)
	_ AirplaneUseCase     = (*AirplaneService)(nil)
)
