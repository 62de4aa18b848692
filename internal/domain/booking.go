package domain

import (
	"math"
	"time"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

type Passenger struct {
	Name   string `json:"name" bson:"name" validate:"required"`
	Age    int    `json:"age" bson:"age" validate:"gt=0"`
	Gender string `json:"gender" bson:"gender" validate:"required"`
}

type Booking struct {
	ID            string        `json:"id" bson:"_id"`
	UserID        string        `json:"userId" bson:"userId"`
	FlightID      string        `json:"flightId" bson:"flightId"`
	Passengers    []Passenger   `json:"passengers" bson:"passengers"`
	TotalPrice    float64       `json:"totalPrice" bson:"totalPrice"`
	Status        BookingStatus `json:"status" bson:"status"`
	PaymentStatus PaymentStatus `json:"paymentStatus" bson:"paymentStatus"`
	BookingDate   time.Time     `json:"bookingDate" bson:"bookingDate"`

	// Joined on read.
	Flight *Flight      `json:"flight" bson:"-"`
	User   *UserSummary `json:"user,omitempty" bson:"-"`
}

// TotalPrice is the price snapshot stored on a booking. It is rounded to cents.
func TotalPrice(price float64, passengers int) float64 {
	return math.Round(price*float64(passengers)*100) / 100
}
