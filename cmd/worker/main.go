package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/skylinetravels/flightbooking/config"
	"github.com/skylinetravels/flightbooking/internal/audit"
	"github.com/skylinetravels/flightbooking/internal/bootstrap"
	"github.com/skylinetravels/flightbooking/internal/kafka"
)

// The worker consumes booking events and writes them to the audit trail.
func main() {
	_ = godotenv.Load()
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

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

	if len(cfg.Kafka.Brokers) == 0 {
		return errors.New("kafka.brokers is empty, nothing to consume")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := bootstrap.OpenStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.Database.Driver, err)
	}
	defer store.Close()

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.BookingEventsTopic, logger)
	defer consumer.Close()

	recorder := audit.NewRecorder(store.Audit, logger)

	logger.Info("worker started", "topic", cfg.Kafka.BookingEventsTopic, "group", cfg.Kafka.GroupID)
	if err := consumer.ConsumeBookings(ctx, recorder.Handle); err != nil {
		return fmt.Errorf("consumer stopped: %w", err)
	}
	logger.Info("worker stopped")
	return nil
}
