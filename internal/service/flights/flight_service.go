package flights

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/skylinetravels/flightbooking/internal/domain"
	"github.com/skylinetravels/flightbooking/internal/repository"
)

type FlightUseCase interface {
	List(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error)
	GetByID(ctx context.Context, id string) (*domain.Flight, error)
	Create(ctx context.Context, flight domain.Flight) (*domain.Flight, error)
	Update(ctx context.Context, id string, patch domain.FlightPatch) (*domain.Flight, error)
	Delete(ctx context.Context, id string) error
}

// FlightCache is the listing cache. Entries live under a generation that
// InvalidateFlights advances; GetFlights returns nil on a miss.
type FlightCache interface {
	FlightsGeneration(ctx context.Context) (int64, error)
	GetFlights(ctx context.Context, gen int64, filter domain.FlightFilter) ([]domain.Flight, error)
	SetFlights(ctx context.Context, gen int64, filter domain.FlightFilter, flights []domain.Flight) error
	InvalidateFlights(ctx context.Context) error
}

type FlightService struct {
	repo   repository.FlightRepository
	cache  FlightCache
	logger *slog.Logger
}

// NewFlightService builds the service. cache may be nil.
func NewFlightService(repo repository.FlightRepository, cache FlightCache, logger *slog.Logger) *FlightService {
	return &FlightService{repo: repo, cache: cache, logger: logger}
}

// List serves from the cache when it can. The generation is read before the
// store, so a listing that races an invalidation is written where nobody reads.
func (s *FlightService) List(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error) {
	var (
		gen      int64
		useCache = s.cache != nil
	)
	if useCache {
		var err error
		if gen, err = s.cache.FlightsGeneration(ctx); err != nil {
			s.logger.Warn("flights cache read failed", "error", err)
			useCache = false
		} else if cached, err := s.cache.GetFlights(ctx, gen, filter); err != nil {
			s.logger.Warn("flights cache read failed", "error", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	flights, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if useCache {
		if err := s.cache.SetFlights(ctx, gen, filter, flights); err != nil {
			s.logger.Warn("flights cache write failed", "error", err)
		}
	}
	return flights, nil
}

func (s *FlightService) GetByID(ctx context.Context, id string) (*domain.Flight, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *FlightService) Create(ctx context.Context, flight domain.Flight) (*domain.Flight, error) {
	flight.Normalize()
	if err := flight.Validate(); err != nil {
		return nil, err
	}
	flight.ID = uuid.NewString()

	if err := s.repo.Create(ctx, &flight); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return &flight, nil
}

func (s *FlightService) Update(ctx context.Context, id string, patch domain.FlightPatch) (*domain.Flight, error) {
	flight, err := s.repo.Update(ctx, id, func(f *domain.Flight) error {
		f.Apply(patch)
		f.Normalize()
		return f.Validate()
	})
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return flight, nil
}

// Delete leaves bookings of the flight untouched.
func (s *FlightService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
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
		s.logger.Warn("flights cache invalidation failed", "error", err)
	}
}

var _ FlightUseCase = (*FlightService)(nil)
