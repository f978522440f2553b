package catalog

import (
	"context"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/repository"
	"go.uber.org/zap"
)

type CrewUseCase interface {
	List(ctx context.Context, page domain.Page) ([]domain.Crew, error)
	GetByID(ctx context.Context, id int64) (*domain.Crew, error)
	Create(ctx context.Context, crew *domain.Crew) error
	Update(ctx context.Context, crew *domain.Crew) error
	Delete(ctx context.Context, id int64) error
}

type CrewService struct {
	crews repository.CrewRepository
	invalidator
}

func NewCrewService(crews repository.CrewRepository, cache FlightCache, logger *zap.Logger) *CrewService {
	return &CrewService{crews: crews, invalidator: invalidator{cache: cache, logger: logger}}
}

func (s *CrewService) List(ctx context.Context, page domain.Page) ([]domain.Crew, error) {
	return s.crews.List(ctx, page)
}

func (s *CrewService) GetByID(ctx context.Context, id int64) (*domain.Crew, error) {
	return s.crews.GetByID(ctx, id)
}

func (s *CrewService) Create(ctx context.Context, crew *domain.Crew) error {
	if err := crew.Validate(); err != nil {
		return err
	}
	return s.crews.Create(ctx, crew)
}

func (s *CrewService) Update(ctx context.Context, crew *domain.Crew) error {
	if err := crew.Validate(); err != nil {
		return err
	}
	if err := s.crews.Update(ctx, crew); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *CrewService) Delete(ctx context.Context, id int64) error {
	if err := s.crews.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

var _ CrewUseCase = (*CrewService)(nil)
