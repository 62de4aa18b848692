package destinations

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/skylinetravels/flightbooking/internal/domain"
	"github.com/skylinetravels/flightbooking/internal/repository"
)

type DestinationUseCase interface {
	List(ctx context.Context, filter domain.DestinationFilter) ([]domain.Destination, error)
	GetByID(ctx context.Context, id string) (*domain.Destination, error)
	Create(ctx context.Context, destination domain.Destination) (*domain.Destination, error)
	Update(ctx context.Context, id string, patch domain.DestinationPatch) (*domain.Destination, error)
	Delete(ctx context.Context, id string) error
}

// DestinationCache is the listing cache, generation-scoped like FlightCache.
// GetDestinations returns nil on a miss.
type DestinationCache interface {
	DestinationsGeneration(ctx context.Context) (int64, error)
	GetDestinations(ctx context.Context, gen int64, filter domain.DestinationFilter) ([]domain.Destination, error)
	SetDestinations(ctx context.Context, gen int64, filter domain.DestinationFilter, destinations []domain.Destination) error
	InvalidateDestinations(ctx context.Context) error
}

type DestinationService struct {
	repo   repository.DestinationRepository
	cache  DestinationCache
	logger *slog.Logger
}

func NewDestinationService(repo repository.DestinationRepository, cache DestinationCache, logger *slog.Logger) *DestinationService {
	return &DestinationService{repo: repo, cache: cache, logger: logger}
}

func (s *DestinationService) List(ctx context.Context, filter domain.DestinationFilter) ([]domain.Destination, error) {
	var (
		gen      int64
		useCache = s.cache != nil
	)
	if useCache {
		var err error
		if gen, err = s.cache.DestinationsGeneration(ctx); err != nil {
			s.logger.Warn("destinations cache read failed", "error", err)
			useCache = false
		} else if cached, err := s.cache.GetDestinations(ctx, gen, filter); err != nil {
			s.logger.Warn("destinations cache read failed", "error", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	destinations, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if useCache {
		if err := s.cache.SetDestinations(ctx, gen, filter, destinations); err != nil {
			s.logger.Warn("destinations cache write failed", "error", err)
		}
	}
	return destinations, nil
}

func (s *DestinationService) GetByID(ctx context.Context, id string) (*domain.Destination, error) {
	return s.repo.GetByID(ctx, id)
}

// Create applies the default rating when none was given.
func (s *DestinationService) Create(ctx context.Context, destination domain.Destination) (*domain.Destination, error) {
	if destination.Rating == 0 {
		destination.Rating = domain.DefaultDestinationRating
	}
	if err := destination.Validate(); err != nil {
		return nil, err
	}
	destination.ID = uuid.NewString()

	if err := s.repo.Create(ctx, &destination); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return &destination, nil
}

func (s *DestinationService) Update(ctx context.Context, id string, patch domain.DestinationPatch) (*domain.Destination, error) {
	destination, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	destination.Apply(patch)
	if err := destination.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, destination); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return destination, nil
}

func (s *DestinationService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *DestinationService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateDestinations(ctx); err != nil {
		s.logger.Warn("destinations cache invalidation failed", "error", err)
	}
}

var _ DestinationUseCase = (*DestinationService)(nil)
