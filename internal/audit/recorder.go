// Package audit persists booking events consumed by the worker.
package audit

import (
	"context"
	"log/slog"

	"github.com/skylinetravels/flightbooking/internal/domain"
)

type Store interface {
	Record(ctx context.Context, event domain.BookingEvent) error
}

type Recorder struct {
	store  Store
	logger *slog.Logger
}

func NewRecorder(store Store, logger *slog.Logger) *Recorder {
	return &Recorder{store: store, logger: logger}
}

// Handle stores one event. It matches the handler signature of the kafka consumer.
func (r *Recorder) Handle(ctx context.Context, event domain.BookingEvent) error {
	if err := r.store.Record(ctx, event); err != nil {
		r.logger.Error("record booking event", "booking_id", event.BookingID, "error", err)
		return err
	}

	r.logger.Info("booking recorded",
		"booking_id", event.BookingID,
		"user_id", event.UserID,
		"flight", event.FlightNumber,
		"passengers", event.PassengerCount,
		"total_price", event.TotalPrice,
	)
	return nil
}
