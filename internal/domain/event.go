package domain

import "time"

const EventBookingCreated = "booking_created"

// BookingEvent is published after a booking is persisted and recorded by the audit worker.
type BookingEvent struct {
	Type           string        `json:"type" bson:"type"`
	BookingID      string        `json:"booking_id" bson:"bookingId"`
	UserID         string        `json:"user_id" bson:"userId"`
	FlightID       string        `json:"flight_id" bson:"flightId"`
	FlightNumber   string        `json:"flight_number,omitempty" bson:"flightNumber,omitempty"`
	PassengerCount int           `json:"passenger_count" bson:"passengerCount"`
	TotalPrice     float64       `json:"total_price" bson:"totalPrice"`
	Status         BookingStatus `json:"status" bson:"status"`
	OccurredAt     time.Time     `json:"occurred_at" bson:"occurredAt"`
}
