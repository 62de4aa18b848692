package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/skylinetravels/flightbooking/internal/domain"
	"github.com/skylinetravels/flightbooking/internal/repository"
	"github.com/skylinetravels/flightbooking/internal/service/destinations"
	"github.com/skylinetravels/flightbooking/internal/service/flights"
)

func at(value string) time.Time {
	t, err := time.Parse("2006-01-02T15:04", value)
	if err != nil {
		panic(err)
	}
	return t
}

func sampleFlight(airline, number, origin, destination, departure, arrival string, price float64, available, total int, class domain.FlightClass) domain.Flight {
	return domain.Flight{
		Airline:        airline,
		FlightNumber:   number,
		Origin:         origin,
		Destination:    destination,
		DepartureTime:  at(departure),
		ArrivalTime:    at(arrival),
		Price:          price,
		AvailableSeats: available,
		TotalSeats:     total,
		Class:          class,
		Status:         domain.FlightStatusScheduled,
	}
}

var sampleFlights = []domain.Flight{
	sampleFlight("Emirates", "EK123", "Dubai", "New York", "2024-12-15T14:30", "2024-12-15T20:45", 850, 180, 200, domain.FlightClassEconomy),
	sampleFlight("Qatar Airways", "QR456", "Doha", "London", "2024-12-16T08:00", "2024-12-16T13:30", 720, 150, 180, domain.FlightClassEconomy),
	sampleFlight("Singapore Airlines", "SQ789", "Singapore", "Tokyo", "2024-12-17T10:15", "2024-12-17T17:45", 650, 200, 220, domain.FlightClassEconomy),
	sampleFlight("Lufthansa", "LH234", "Frankfurt", "Paris", "2024-12-18T06:30", "2024-12-18T08:00", 180, 120, 150, domain.FlightClassEconomy),
	sampleFlight("British Airways", "BA567", "London", "Dubai", "2024-12-19T22:00", "2024-12-20T08:30", 780, 160, 190, domain.FlightClassEconomy),
	sampleFlight("Air France", "AF890", "Paris", "New York", "2024-12-20T11:00", "2024-12-20T14:30", 920, 140, 170, domain.FlightClassBusiness),
	sampleFlight("Turkish Airlines", "TK345", "Istanbul", "Singapore", "2024-12-21T15:45", "2024-12-22T06:15", 890, 170, 200, domain.FlightClassEconomy),
	sampleFlight("Etihad Airways", "EY678", "Abu Dhabi", "Sydney", "2024-12-22T23:30", "2024-12-23T19:00", 1150, 190, 220, domain.FlightClassEconomy),
	// Local times: arrival is earlier on the clock than departure.
	sampleFlight("Cathay Pacific", "CX901", "Hong Kong", "Los Angeles", "2024-12-23T16:20", "2024-12-23T13:45", 980, 165, 195, domain.FlightClassBusiness),
	sampleFlight("KLM", "KL234", "Amsterdam", "Tokyo", "2024-12-24T12:00", "2024-12-25T08:30", 1050, 155, 180, domain.FlightClassEconomy),
}

var sampleDestinations = []domain.Destination{
	{Name: "Paris", Country: "France", Rating: 4.8,
		Description: "The City of Light, famous for the Eiffel Tower, art museums, and romantic atmosphere",
		Image:       "https://images.unsplash.com/photo-1502602898657-3e91760cbb34?w=800"},
	{Name: "Tokyo", Country: "Japan", Rating: 4.9,
		Description: "A vibrant metropolis blending ancient traditions with cutting-edge technology",
		Image:       "https://images.unsplash.com/photo-1540959733332-eab4deabeeaf?w=800"},
	{Name: "Dubai", Country: "UAE", Rating: 4.7,
		Description: "A modern oasis with stunning skyscrapers, luxury shopping, and desert adventures",
		Image:       "https://images.unsplash.com/photo-1512453979798-5ea266f8880c?w=800"},
	{Name: "New York", Country: "USA", Rating: 4.6,
		Description: "The city that never sleeps, home to iconic landmarks and diverse culture",
		Image:       "https://images.unsplash.com/photo-1496442226666-8d4d0e62e6e9?w=800"},
	{Name: "London", Country: "United Kingdom", Rating: 4.7,
		Description: "Historic capital with royal palaces, world-class museums, and vibrant culture",
		Image:       "https://images.unsplash.com/photo-1513635269975-59663e0ac1ad?w=800"},
	{Name: "Singapore", Country: "Singapore", Rating: 4.8,
		Description: "A futuristic city-state known for its cleanliness, gardens, and diverse cuisine",
		Image:       "https://images.unsplash.com/photo-1525625293386-3f8f99389edd?w=800"},
	{Name: "Sydney", Country: "Australia", Rating: 4.7,
		Description: "Harbor city famous for the Opera House, beaches, and outdoor lifestyle",
		Image:       "https://images.unsplash.com/photo-1506973035872-a4ec16b8e8d9?w=800"},
	{Name: "Barcelona", Country: "Spain", Rating: 4.6,
		Description: "Mediterranean gem with Gaudí architecture, beaches, and vibrant nightlife",
		Image:       "https://images.unsplash.com/photo-1583422409516-2895a77efded?w=800"},
	{Name: "Istanbul", Country: "Turkey", Rating: 4.5,
		Description: "Where East meets West, rich in history, culture, and stunning architecture",
		Image:       "https://images.unsplash.com/photo-1524231757912-21f4fe3a7200?w=800"},
	{Name: "Bali", Country: "Indonesia", Rating: 4.9,
		Description: "Tropical paradise with beautiful beaches, temples, and lush rice terraces",
		Image:       "https://images.unsplash.com/photo-1537996194471-e657df975ab4?w=800"},
}

// seed clears the catalogue and inserts the samples through the services, so
// they pass the same validation as API writes and drop cached listings.
// Users and bookings are kept.
func seed(ctx context.Context, store *repository.Store, flightCache flights.FlightCache, destinationCache destinations.DestinationCache, logger *slog.Logger) error {
	if err := store.Flights.DeleteAll(ctx); err != nil {
		return fmt.Errorf("clear flights: %w", err)
	}
	if err := store.Destinations.DeleteAll(ctx); err != nil {
		return fmt.Errorf("clear destinations: %w", err)
	}

	flightService := flights.NewFlightService(store.Flights, flightCache, logger)
	for _, f := range sampleFlights {
		if _, err := flightService.Create(ctx, f); err != nil {
			return fmt.Errorf("insert flight %s: %w", f.FlightNumber, err)
		}
	}

	destinationService := destinations.NewDestinationService(store.Destinations, destinationCache, logger)
	for _, d := range sampleDestinations {
		if _, err := destinationService.Create(ctx, d); err != nil {
			return fmt.Errorf("insert destination %s: %w", d.Name, err)
		}
	}

	logger.Info("catalogue seeded", "flights", len(sampleFlights), "destinations", len(sampleDestinations))
	return nil
}
