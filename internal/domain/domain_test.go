package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validFlight() Flight {
	return Flight{
		FlightNumber:   "EK123",
		Airline:        "Emirates",
		Origin:         "Dubai",
		Destination:    "New York",
		DepartureTime:  time.Date(2024, 12, 15, 14, 30, 0, 0, time.UTC),
		ArrivalTime:    time.Date(2024, 12, 15, 20, 45, 0, 0, time.UTC),
		Price:          850,
		AvailableSeats: 180,
		TotalSeats:     200,
		Class:          FlightClassEconomy,
		Status:         FlightStatusScheduled,
	}
}

func TestTotalPrice(t *testing.T) {
	assert.Equal(t, 1700.0, TotalPrice(850, 2))
	assert.Equal(t, 59.97, TotalPrice(19.99, 3))
	assert.Equal(t, 0.0, TotalPrice(850, 0))
}

func TestFlight_Validate(t *testing.T) {
	f := validFlight()
	assert.NoError(t, f.Validate())

	testCases := []struct {
		name    string
		mutate  func(*Flight)
		message string
	}{
		{"missing flight number", func(f *Flight) { f.FlightNumber = "" }, "flightNumber is required"},
		{"zero price", func(f *Flight) { f.Price = 0 }, "price must be positive"},
		{"negative seats", func(f *Flight) { f.AvailableSeats = -1 }, "availableSeats must be between 0 and totalSeats"},
		{"oversold", func(f *Flight) { f.AvailableSeats = 201 }, "availableSeats must be between 0 and totalSeats"},
		{"unknown class", func(f *Flight) { f.Class = "premium" }, "class must be one of economy, business, first"},
		{"unknown status", func(f *Flight) { f.Status = "boarding" }, "status must be one of scheduled, delayed, cancelled"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := validFlight()
			tc.mutate(&f)
			err := f.Validate()
			assert.True(t, errors.Is(err, ErrValidation))
			assert.EqualError(t, err, tc.message)
		})
	}
}

func TestFlight_NormalizeDefaults(t *testing.T) {
	f := Flight{FlightNumber: " EK123 "}
	f.Normalize()
	assert.Equal(t, "EK123", f.FlightNumber)
	assert.Equal(t, FlightClassEconomy, f.Class)
	assert.Equal(t, FlightStatusScheduled, f.Status)
}

func TestFlight_ApplyPartial(t *testing.T) {
	f := validFlight()
	price := 999.0
	status := FlightStatusDelayed
	f.Apply(FlightPatch{Price: &price, Status: &status})

	assert.Equal(t, 999.0, f.Price)
	assert.Equal(t, FlightStatusDelayed, f.Status)
	assert.Equal(t, "EK123", f.FlightNumber)
	assert.Equal(t, 180, f.AvailableSeats)
}

func TestFlightFilter_Window(t *testing.T) {
	_, _, ok := FlightFilter{}.Window()
	assert.False(t, ok)

	day := time.Date(2024, 12, 15, 0, 0, 0, 0, time.UTC)
	from, to, ok := FlightFilter{Date: &day}.Window()
	assert.True(t, ok)
	assert.Equal(t, day, from)
	assert.Equal(t, day.Add(24*time.Hour), to)
}

func TestDestination_Validate(t *testing.T) {
	d := Destination{Name: "Paris", Country: "France", Description: "City of Light", Image: "paris.jpg", Rating: 4.8}
	assert.NoError(t, d.Validate())

	d.Rating = 6
	assert.EqualError(t, d.Validate(), "rating must be between 0 and 5")
}

func TestError_Kinds(t *testing.T) {
	assert.True(t, errors.Is(NotFound("flight"), ErrNotFound))
	assert.EqualError(t, NotFound("flight"), "flight not found")
	assert.True(t, errors.Is(ErrInsufficientSeats, ErrValidation))
	assert.True(t, errors.Is(Forbidden("Unauthorized"), ErrForbidden))
}
