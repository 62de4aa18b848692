package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	perrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/skylinetravels/flightbooking/internal/domain"
)

func TestNewPostgresRepositories(t *testing.T) {
	pool := &pgxpool.Pool{}
	assert.NotNil(t, NewUserRepository(pool))
	assert.NotNil(t, NewFlightRepository(pool))
	assert.NotNil(t, NewDestinationRepository(pool))
	assert.NotNil(t, NewBookingRepository(pool))
	assert.NotNil(t, NewAuditRepository(pool))
}

func TestNewMongoRepositories(t *testing.T) {
	coll := &mongo.Collection{}
	assert.NotNil(t, NewMongoUserRepository(coll))
	assert.NotNil(t, NewMongoFlightRepository(coll))
	assert.NotNil(t, NewMongoDestinationRepository(coll))
	assert.NotNil(t, NewMongoAuditRepository(coll))
}

func TestIsUniqueViolation(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505"}
	assert.True(t, isUniqueViolation(dup))
	assert.True(t, isUniqueViolation(perrors.Wrap(dup, "insert flight")))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23514"}))
	assert.False(t, isUniqueViolation(errors.New("boom")))
	assert.False(t, isUniqueViolation(nil))
}

func TestJoinedFlight_DeletedFlightIsNil(t *testing.T) {
	assert.Nil(t, joinedFlight{}.toDomain())
}

func TestJoinedFlight_ToDomain(t *testing.T) {
	id, number := "f-1", "EK123"
	price := 850.0
	seats := 178
	dep := time.Date(2024, 12, 15, 14, 30, 0, 0, time.UTC)
	class := domain.FlightClassEconomy

	f := joinedFlight{ID: &id, FlightNumber: &number, Price: &price, AvailableSeats: &seats, DepartureTime: &dep, Class: &class}.toDomain()

	assert.Equal(t, "f-1", f.ID)
	assert.Equal(t, "EK123", f.FlightNumber)
	assert.Equal(t, 850.0, f.Price)
	assert.Equal(t, 178, f.AvailableSeats)
	assert.Equal(t, dep, f.DepartureTime)
	assert.Equal(t, domain.FlightClassEconomy, f.Class)
	assert.Empty(t, f.Airline)
}

func TestDistinct(t *testing.T) {
	bookings := []domain.Booking{
		{FlightID: "a", UserID: "u1"},
		{FlightID: "b", UserID: "u1"},
		{FlightID: "a", UserID: "u2"},
	}
	assert.Equal(t, []string{"a", "b"}, distinct(bookings, func(b domain.Booking) string { return b.FlightID }))
	assert.Equal(t, []string{"u1", "u2"}, distinct(bookings, func(b domain.Booking) string { return b.UserID }))
	assert.Empty(t, distinct(nil, func(b domain.Booking) string { return b.ID }))
}

func TestStore_NilHooks(t *testing.T) {
	s := &Store{}
	assert.NoError(t, s.Ping(context.Background()))
	assert.NotPanics(t, s.Close)
}
