package booking

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/skylinetravels/flightbooking/internal/authz"
	"github.com/skylinetravels/flightbooking/internal/domain"
	"github.com/skylinetravels/flightbooking/internal/repository"
	"github.com/skylinetravels/flightbooking/internal/validation"
)

type BookingUseCase interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	GetBooking(ctx context.Context, actor authz.Principal, id string) (*domain.Booking, error)
	ListMine(ctx context.Context, userID string) ([]domain.Booking, error)
	ListAll(ctx context.Context) ([]domain.Booking, error)
}

// Cache is the part of the listing cache a booking touches: seat counts change.
type Cache interface {
	InvalidateFlights(ctx context.Context) error
}

type Producer interface {
	PublishBooking(ctx context.Context, event domain.BookingEvent) error
}

type BookingService struct {
	bookings repository.BookingRepository
	cache    Cache
	producer Producer
	logger   *slog.Logger
	now      func() time.Time
}

type CreateBookingInput struct {
	UserID     string             `json:"-"`
	FlightID   string             `json:"flightId" validate:"required"`
	Passengers []domain.Passenger `json:"passengers" validate:"min=1,dive"`
}

// NewBookingService builds the service. cache and producer may be nil.
func NewBookingService(
	bookings repository.BookingRepository,
	cache Cache,
	producer Producer,
	logger *slog.Logger,
) *BookingService {
	return &BookingService{
		bookings: bookings,
		cache:    cache,
		producer: producer,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error) {
	input.FlightID = strings.TrimSpace(input.FlightID)
	for i := range input.Passengers {
		input.Passengers[i].Name = strings.TrimSpace(input.Passengers[i].Name)
		input.Passengers[i].Gender = strings.TrimSpace(input.Passengers[i].Gender)
	}
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		ID:            uuid.NewString(),
		UserID:        input.UserID,
		FlightID:      input.FlightID,
		Passengers:    input.Passengers,
		Status:        domain.BookingStatusConfirmed,
		PaymentStatus: domain.PaymentStatusCompleted,
		BookingDate:   s.now().UTC().Truncate(time.Millisecond),
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}

	s.logger.Info("booking created",
		"booking_id", booking.ID,
		"user_id", booking.UserID,
		"flight_id", booking.FlightID,
		"passengers", len(booking.Passengers),
		"total_price", booking.TotalPrice,
	)

	if s.cache != nil {
		if err := s.cache.InvalidateFlights(ctx); err != nil {
			s.logger.Warn("flights cache invalidation failed", "error", err)
		}
	}
	s.publish(ctx, booking)
	return booking, nil
}

// GetBooking returns the booking to its owner or to an admin.
func (s *BookingService) GetBooking(ctx context.Context, actor authz.Principal, id string) (*domain.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking.UserID != actor.ID && !actor.Admin {
		return nil, domain.Forbidden("Unauthorized")
	}
	return booking, nil
}

func (s *BookingService) ListMine(ctx context.Context, userID string) ([]domain.Booking, error) {
	return s.bookings.ListByUser(ctx, userID)
}

func (s *BookingService) ListAll(ctx context.Context) ([]domain.Booking, error) {
	return s.bookings.ListAll(ctx)
}

// publish never fails the booking; the event is best effort.
func (s *BookingService) publish(ctx context.Context, booking *domain.Booking) {
	if s.producer == nil {
		return
	}
	event := domain.BookingEvent{
		Type:           domain.EventBookingCreated,
		BookingID:      booking.ID,
		UserID:         booking.UserID,
		FlightID:       booking.FlightID,
		PassengerCount: len(booking.Passengers),
		TotalPrice:     booking.TotalPrice,
		Status:         booking.Status,
		OccurredAt:     booking.BookingDate,
	}
	if booking.Flight != nil {
		event.FlightNumber = booking.Flight.FlightNumber
	}
	if err := s.producer.PublishBooking(ctx, event); err != nil {
		s.logger.Warn("publish booking event failed", "booking_id", booking.ID, "error", err)
	}
}

var _ BookingUseCase = (*BookingService)(nil)
