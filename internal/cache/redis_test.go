package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skylinetravels/flightbooking/config"
	"github.com/skylinetravels/flightbooking/internal/domain"
)

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := NewRedisCache(config.RedisConfig{Addr: mr.Addr()}, time.Minute)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestNewRedisCache(t *testing.T) {
	c := NewRedisCache(config.RedisConfig{Addr: "localhost:6379"}, time.Minute)
	defer c.Close()

	assert.NotNil(t, c.client)
	assert.Equal(t, time.Minute, c.ttl)
}

func TestRedisCache_Flights_MissThenHit(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	filter := domain.FlightFilter{Origin: "Dubai"}

	gen, err := c.FlightsGeneration(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), gen)

	got, err := c.GetFlights(ctx, gen, filter)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, c.SetFlights(ctx, gen, filter, []domain.Flight{{ID: "f-1", AvailableSeats: 180}}))

	got, err = c.GetFlights(ctx, gen, filter)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 180, got[0].AvailableSeats)

	other, err := c.GetFlights(ctx, gen, domain.FlightFilter{Origin: "Doha"})
	require.NoError(t, err)
	assert.Nil(t, other)
}

func TestRedisCache_Flights_EmptyListIsAHit(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetFlights(ctx, 0, domain.FlightFilter{}, []domain.Flight{}))

	got, err := c.GetFlights(ctx, 0, domain.FlightFilter{})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRedisCache_Flights_Invalidate(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	filter := domain.FlightFilter{}

	require.NoError(t, c.SetFlights(ctx, 0, filter, []domain.Flight{{ID: "f-1"}}))
	require.NoError(t, c.InvalidateFlights(ctx))

	gen, err := c.FlightsGeneration(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), gen)

	got, err := c.GetFlights(ctx, gen, filter)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisCache_Flights_WriteForOlderGenerationIsNotServed(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	filter := domain.FlightFilter{}

	seen, err := c.FlightsGeneration(ctx)
	require.NoError(t, err)

	require.NoError(t, c.InvalidateFlights(ctx))
	require.NoError(t, c.SetFlights(ctx, seen, filter, []domain.Flight{{ID: "f-1", AvailableSeats: 180}}))

	current, err := c.FlightsGeneration(ctx)
	require.NoError(t, err)
	got, err := c.GetFlights(ctx, current, filter)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisCache_EntriesExpireIndependently(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()
	dubai := domain.FlightFilter{Origin: "Dubai"}
	doha := domain.FlightFilter{Origin: "Doha"}

	require.NoError(t, c.SetFlights(ctx, 0, dubai, []domain.Flight{{ID: "f-1"}}))
	mr.FastForward(40 * time.Second)
	require.NoError(t, c.SetFlights(ctx, 0, doha, []domain.Flight{{ID: "f-2"}}))
	mr.FastForward(30 * time.Second)

	got, err := c.GetFlights(ctx, 0, dubai)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = c.GetFlights(ctx, 0, doha)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestRedisCache_Destinations(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	filter := domain.DestinationFilter{Country: "France"}

	require.NoError(t, c.SetDestinations(ctx, 0, filter, []domain.Destination{{ID: "d-1", Name: "Paris"}}))
	got, err := c.GetDestinations(ctx, 0, filter)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Paris", got[0].Name)

	require.NoError(t, c.InvalidateDestinations(ctx))
	gen, err := c.DestinationsGeneration(ctx)
	require.NoError(t, err)
	got, err = c.GetDestinations(ctx, gen, filter)
	require.NoError(t, err)
	assert.Nil(t, got)

	flightsGen, err := c.FlightsGeneration(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), flightsGen)
}

func TestRedisCache_Unreachable(t *testing.T) {
	c, mr := newTestCache(t)
	mr.Close()

	_, err := c.FlightsGeneration(context.Background())
	assert.Error(t, err)
}
