package repository

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/skylinetravels/flightbooking/internal/domain"
)

// maxUpdateAttempts bounds the compare-and-swap loop of a flight update.
const maxUpdateAttempts = 5

type MongoFlightRepository struct {
	coll *mongo.Collection
}

func NewMongoFlightRepository(coll *mongo.Collection) FlightRepository {
	return &MongoFlightRepository{coll: coll}
}

func (r *MongoFlightRepository) List(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error) {
	query := bson.M{}
	if filter.Origin != "" {
		query["origin"] = filter.Origin
	}
	if filter.Destination != "" {
		query["destination"] = filter.Destination
	}
	if from, to, ok := filter.Window(); ok {
		query["departureTime"] = bson.M{"$gte": from, "$lt": to}
	}

	cur, err := r.coll.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "departureTime", Value: 1}}))
	if err != nil {
		return nil, errors.Wrap(err, "list flights")
	}
	flights := make([]domain.Flight, 0)
	if err := cur.All(ctx, &flights); err != nil {
		return nil, errors.Wrap(err, "decode flights")
	}
	return flights, nil
}

func (r *MongoFlightRepository) GetByID(ctx context.Context, id string) (*domain.Flight, error) {
	var f domain.Flight
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&f)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.NotFound("flight")
	}
	if err != nil {
		return nil, errors.Wrap(err, "find flight")
	}
	return &f, nil
}

func (r *MongoFlightRepository) Create(ctx context.Context, f *domain.Flight) error {
	f.CreatedAt = now()
	f.UpdatedAt = f.CreatedAt
	_, err := r.coll.InsertOne(ctx, f)
	if mongo.IsDuplicateKeyError(err) {
		return domain.Invalid("flight number %s already exists", f.FlightNumber)
	}
	return errors.Wrap(err, "insert flight")
}

// Update replaces the document only if availableSeats still holds the value
// mutate saw, and retries on a concurrent booking.
func (r *MongoFlightRepository) Update(ctx context.Context, id string, mutate func(*domain.Flight) error) (*domain.Flight, error) {
	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		f, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		seen := f.AvailableSeats

		if err := mutate(f); err != nil {
			return nil, err
		}
		f.ID = id
		f.UpdatedAt = now()

		res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": id, "availableSeats": seen}, f)
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.Invalid("flight number %s already exists", f.FlightNumber)
		}
		if err != nil {
			return nil, errors.Wrap(err, "replace flight")
		}
		if res.MatchedCount == 1 {
			return f, nil
		}
	}
	return nil, errors.Errorf("update flight %s: seats kept changing", id)
}

func (r *MongoFlightRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(err, "delete flight")
	}
	if res.DeletedCount == 0 {
		return domain.NotFound("flight")
	}
	return nil
}

func (r *MongoFlightRepository) DeleteAll(ctx context.Context) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{})
	return errors.Wrap(err, "delete flights")
}

var _ FlightRepository = (*MongoFlightRepository)(nil)
