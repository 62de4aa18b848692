package repository

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/skylinetravels/flightbooking/internal/domain"
)

type MongoDestinationRepository struct {
	coll *mongo.Collection
}

func NewMongoDestinationRepository(coll *mongo.Collection) DestinationRepository {
	return &MongoDestinationRepository{coll: coll}
}

func (r *MongoDestinationRepository) List(ctx context.Context, filter domain.DestinationFilter) ([]domain.Destination, error) {
	query := bson.M{}
	if filter.Country != "" {
		query["country"] = filter.Country
	}
	sort := bson.D{{Key: "popularityScore", Value: -1}, {Key: "name", Value: 1}}

	cur, err := r.coll.Find(ctx, query, options.Find().SetSort(sort))
	if err != nil {
		return nil, errors.Wrap(err, "list destinations")
	}
	destinations := make([]domain.Destination, 0)
	if err := cur.All(ctx, &destinations); err != nil {
		return nil, errors.Wrap(err, "decode destinations")
	}
	return destinations, nil
}

func (r *MongoDestinationRepository) GetByID(ctx context.Context, id string) (*domain.Destination, error) {
	var d domain.Destination
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.NotFound("destination")
	}
	if err != nil {
		return nil, errors.Wrap(err, "find destination")
	}
	return &d, nil
}

func (r *MongoDestinationRepository) Create(ctx context.Context, d *domain.Destination) error {
	d.CreatedAt = now()
	_, err := r.coll.InsertOne(ctx, d)
	return errors.Wrap(err, "insert destination")
}

func (r *MongoDestinationRepository) Update(ctx context.Context, d *domain.Destination) error {
	res, err := r.coll.UpdateByID(ctx, d.ID, bson.M{"$set": bson.M{
		"name":            d.Name,
		"country":         d.Country,
		"description":     d.Description,
		"image":           d.Image,
		"rating":          d.Rating,
		"popularityScore": d.PopularityScore,
	}})
	if err != nil {
		return errors.Wrap(err, "update destination")
	}
	if res.MatchedCount == 0 {
		return domain.NotFound("destination")
	}
	return nil
}

func (r *MongoDestinationRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(err, "delete destination")
	}
	if res.DeletedCount == 0 {
		return domain.NotFound("destination")
	}
	return nil
}

func (r *MongoDestinationRepository) DeleteAll(ctx context.Context) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{})
	return errors.Wrap(err, "delete destinations")
}

var _ DestinationRepository = (*MongoDestinationRepository)(nil)
