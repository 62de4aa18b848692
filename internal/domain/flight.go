package domain

import (
	"strings"
	"time"
)

type FlightClass string

const (
	FlightClassEconomy  FlightClass = "economy"
	FlightClassBusiness FlightClass = "business"
	FlightClassFirst    FlightClass = "first"
)

type FlightStatus string

const (
	FlightStatusScheduled FlightStatus = "scheduled"
	FlightStatusDelayed   FlightStatus = "delayed"
	FlightStatusCancelled FlightStatus = "cancelled"
)

type Flight struct {
	ID             string       `json:"id" bson:"_id"`
	FlightNumber   string       `json:"flightNumber" bson:"flightNumber"`
	Airline        string       `json:"airline" bson:"airline"`
	Origin         string       `json:"origin" bson:"origin"`
	Destination    string       `json:"destination" bson:"destination"`
	DepartureTime  time.Time    `json:"departureTime" bson:"departureTime"`
	ArrivalTime    time.Time    `json:"arrivalTime" bson:"arrivalTime"`
	Price          float64      `json:"price" bson:"price"`
	AvailableSeats int          `json:"availableSeats" bson:"availableSeats"`
	TotalSeats     int          `json:"totalSeats" bson:"totalSeats"`
	Class          FlightClass  `json:"class" bson:"class"`
	Status         FlightStatus `json:"status" bson:"status"`
	CreatedAt      time.Time    `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt" bson:"updatedAt"`
}

// FlightFilter selects flights by equality on origin/destination and, when
// Date is set, by departure within [Date, Date+24h).
type FlightFilter struct {
	Origin      string
	Destination string
	Date        *time.Time
}

// Window returns the departure range selected by the filter date.
func (f FlightFilter) Window() (time.Time, time.Time, bool) {
	if f.Date == nil {
		return time.Time{}, time.Time{}, false
	}
	return *f.Date, f.Date.Add(24 * time.Hour), true
}

// Key identifies the filter in the listing cache.
func (f FlightFilter) Key() string {
	date := ""
	if f.Date != nil {
		date = f.Date.UTC().Format(time.RFC3339)
	}
	return strings.Join([]string{f.Origin, f.Destination, date}, "|")
}

// FlightPatch holds the fields of a partial flight update. Nil fields are left untouched.
type FlightPatch struct {
	FlightNumber   *string       `json:"flightNumber"`
	Airline        *string       `json:"airline"`
	Origin         *string       `json:"origin"`
	Destination    *string       `json:"destination"`
	DepartureTime  *time.Time    `json:"departureTime"`
	ArrivalTime    *time.Time    `json:"arrivalTime"`
	Price          *float64      `json:"price"`
	AvailableSeats *int          `json:"availableSeats"`
	TotalSeats     *int          `json:"totalSeats"`
	Class          *FlightClass  `json:"class"`
	Status         *FlightStatus `json:"status"`
}

func (f *Flight) Apply(p FlightPatch) {
	if p.FlightNumber != nil {
		f.FlightNumber = *p.FlightNumber
	}
	if p.Airline != nil {
		f.Airline = *p.Airline
	}
	if p.Origin != nil {
		f.Origin = *p.Origin
	}
	if p.Destination != nil {
		f.Destination = *p.Destination
	}
	if p.DepartureTime != nil {
		f.DepartureTime = *p.DepartureTime
	}
	if p.ArrivalTime != nil {
		f.ArrivalTime = *p.ArrivalTime
	}
	if p.Price != nil {
		f.Price = *p.Price
	}
	if p.AvailableSeats != nil {
		f.AvailableSeats = *p.AvailableSeats
	}
	if p.TotalSeats != nil {
		f.TotalSeats = *p.TotalSeats
	}
	if p.Class != nil {
		f.Class = *p.Class
	}
	if p.Status != nil {
		f.Status = *p.Status
	}
}

// Normalize fills enum defaults for fields the caller left empty.
func (f *Flight) Normalize() {
	f.FlightNumber = strings.TrimSpace(f.FlightNumber)
	if f.Class == "" {
		f.Class = FlightClassEconomy
	}
	if f.Status == "" {
		f.Status = FlightStatusScheduled
	}
}

// Validate checks required fields, enumerations and the seat inventory invariant.
func (f *Flight) Validate() error {
	switch {
	case f.FlightNumber == "":
		return Invalid("flightNumber is required")
	case strings.TrimSpace(f.Airline) == "":
		return Invalid("airline is required")
	case strings.TrimSpace(f.Origin) == "":
		return Invalid("origin is required")
	case strings.TrimSpace(f.Destination) == "":
		return Invalid("destination is required")
	case f.DepartureTime.IsZero():
		return Invalid("departureTime is required")
	case f.ArrivalTime.IsZero():
		return Invalid("arrivalTime is required")
	case f.Price <= 0:
		return Invalid("price must be positive")
	case f.TotalSeats <= 0:
		return Invalid("totalSeats must be positive")
	case f.AvailableSeats < 0 || f.AvailableSeats > f.TotalSeats:
		return Invalid("availableSeats must be between 0 and totalSeats")
	}
	switch f.Class {
	case FlightClassEconomy, FlightClassBusiness, FlightClassFirst:
	default:
		return Invalid("class must be one of economy, business, first")
	}
	switch f.Status {
	case FlightStatusScheduled, FlightStatusDelayed, FlightStatusCancelled:
	default:
		return Invalid("status must be one of scheduled, delayed, cancelled")
	}
	return nil
}
