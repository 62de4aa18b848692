package audit

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/skylinetravels/flightbooking/internal/domain"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Record(ctx context.Context, event domain.BookingEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func TestRecorder_Handle(t *testing.T) {
	store := new(MockStore)
	recorder := NewRecorder(store, slog.New(slog.NewTextHandler(io.Discard, nil)))

	event := domain.BookingEvent{Type: domain.EventBookingCreated, BookingID: "b-1", PassengerCount: 2}
	store.On("Record", mock.Anything, event).Return(nil)

	assert.NoError(t, recorder.Handle(context.Background(), event))
	store.AssertExpectations(t)
}

func TestRecorder_HandleStoreError(t *testing.T) {
	store := new(MockStore)
	recorder := NewRecorder(store, slog.New(slog.NewTextHandler(io.Discard, nil)))

	store.On("Record", mock.Anything, mock.Anything).Return(errors.New("db down"))

	err := recorder.Handle(context.Background(), domain.BookingEvent{BookingID: "b-1"})
	assert.EqualError(t, err, "db down")
}
