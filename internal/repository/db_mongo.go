package repository

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	usersCollection        = "users"
	flightsCollection      = "flights"
	destinationsCollection = "destinations"
	bookingsCollection     = "bookings"
	auditCollection        = "booking_audit"
)

// NewMongoStore connects to MongoDB, ensures the unique indexes and wires the mongo repositories.
func NewMongoStore(ctx context.Context, uri, database string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(err, "connect mongo")
	}
	disconnect := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(ctx)
	}

	if err := client.Ping(ctx, nil); err != nil {
		disconnect()
		return nil, errors.Wrap(err, "ping mongo")
	}

	db := client.Database(database)
	if err := ensureIndexes(ctx, db); err != nil {
		disconnect()
		return nil, err
	}

	return &Store{
		Users:        NewMongoUserRepository(db.Collection(usersCollection)),
		Flights:      NewMongoFlightRepository(db.Collection(flightsCollection)),
		Destinations: NewMongoDestinationRepository(db.Collection(destinationsCollection)),
		Bookings:     NewMongoBookingRepository(db),
		Audit:        NewMongoAuditRepository(db.Collection(auditCollection)),
		ping: func(ctx context.Context) error {
			return client.Ping(ctx, nil)
		},
		close: disconnect,
	}, nil
}

// now matches the millisecond precision mongo stores timestamps with.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		usersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		flightsCollection: {
			{Keys: bson.D{{Key: "flightNumber", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "origin", Value: 1}, {Key: "destination", Value: 1}, {Key: "departureTime", Value: 1}}},
		},
		bookingsCollection: {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "bookingDate", Value: -1}}},
		},
	}
	for name, models := range indexes {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return errors.Wrapf(err, "create %s indexes", name)
		}
	}
	return nil
}
