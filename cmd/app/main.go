package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/skylinetravels/flightbooking/api"
	"github.com/skylinetravels/flightbooking/config"
	"github.com/skylinetravels/flightbooking/internal/auth"
	"github.com/skylinetravels/flightbooking/internal/authz"
	"github.com/skylinetravels/flightbooking/internal/bootstrap"
	"github.com/skylinetravels/flightbooking/internal/cache"
	"github.com/skylinetravels/flightbooking/internal/kafka"
	"github.com/skylinetravels/flightbooking/internal/service/booking"
	"github.com/skylinetravels/flightbooking/internal/service/destinations"
	"github.com/skylinetravels/flightbooking/internal/service/flights"
	"github.com/skylinetravels/flightbooking/internal/service/users"
)

func main() {
	_ = godotenv.Load()
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

// run returns instead of exiting so that deferred closes run.
func run() error {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := bootstrap.NewLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := bootstrap.OpenStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.Database.Driver, err)
	}
	defer store.Close()
	logger.Info("store connected", "driver", cfg.Database.Driver)

	var (
		flightCache      flights.FlightCache
		destinationCache destinations.DestinationCache
		bookingCache     booking.Cache
	)
	if cfg.Redis.Addr != "" {
		redisCache := cache.NewRedisCache(cfg.Redis, cfg.Cache.FlightsTTL())
		defer redisCache.Close()
		if err := redisCache.Ping(ctx); err != nil {
			logger.Warn("redis unavailable, listing cache disabled", "addr", cfg.Redis.Addr, "error", err)
		} else {
			flightCache, destinationCache, bookingCache = redisCache, redisCache, redisCache
		}
	}

	var producer booking.Producer
	if len(cfg.Kafka.Brokers) > 0 {
		p := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.BookingEventsTopic, logger)
		defer p.Close()
		producer = p
	}

	policy, err := authz.NewPolicy(ctx)
	if err != nil {
		return err
	}

	tokens := auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL())
	router := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		Policy:         policy,
		RequestTimeout: cfg.Database.QueryTimeout(),
		SwaggerDir:     cfg.HTTP.SwaggerDir,
	}, api.Services{
		Users:        users.NewUserService(store.Users, tokens, cfg.Auth.BcryptCost, logger),
		Flights:      flights.NewFlightService(store.Flights, flightCache, logger),
		Destinations: destinations.NewDestinationService(store.Destinations, destinationCache, logger),
		Bookings:     booking.NewBookingService(store.Bookings, bookingCache, producer, logger),
	})

	if err := bootstrap.Run(ctx, cfg, router, store, logger); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
