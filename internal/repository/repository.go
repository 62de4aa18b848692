package repository

import (
	"context"

	"github.com/skylinetravels/flightbooking/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Count(ctx context.Context) (int64, error)
	// Update replaces name, email, phone and the admin flag.
	Update(ctx context.Context, user *domain.User) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

type FlightRepository interface {
	List(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error)
	GetByID(ctx context.Context, id string) (*domain.Flight, error)
	Create(ctx context.Context, flight *domain.Flight) error
	// Update loads the flight, applies mutate and stores the result without
	// losing a concurrent seat decrement.
	Update(ctx context.Context, id string, mutate func(*domain.Flight) error) (*domain.Flight, error)
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
}

type DestinationRepository interface {
	List(ctx context.Context, filter domain.DestinationFilter) ([]domain.Destination, error)
	GetByID(ctx context.Context, id string) (*domain.Destination, error)
	Create(ctx context.Context, destination *domain.Destination) error
	Update(ctx context.Context, destination *domain.Destination) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
}

type BookingRepository interface {
	// Create reserves len(booking.Passengers) seats on the flight and inserts the
	// booking as one atomic operation. TotalPrice is set from the flight price and
	// Flight to the flight as left by the reservation.
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Booking, error)
	ListAll(ctx context.Context) ([]domain.Booking, error)
}

type AuditRepository interface {
	Record(ctx context.Context, event domain.BookingEvent) error
}

// Store bundles the repositories of one backend.
type Store struct {
	Users        UserRepository
	Flights      FlightRepository
	Destinations DestinationRepository
	Bookings     BookingRepository
	Audit        AuditRepository

	ping  func(ctx context.Context) error
	close func()
}

func (s *Store) Ping(ctx context.Context) error {
	if s.ping == nil {
		return nil
	}
	return s.ping(ctx)
}

func (s *Store) Close() {
	if s.close != nil {
		s.close()
	}
}
