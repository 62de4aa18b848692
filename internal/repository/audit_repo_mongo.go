package repository

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/skylinetravels/flightbooking/internal/domain"
)

type MongoAuditRepository struct {
	coll *mongo.Collection
}

func NewMongoAuditRepository(coll *mongo.Collection) AuditRepository {
	return &MongoAuditRepository{coll: coll}
}

func (r *MongoAuditRepository) Record(ctx context.Context, e domain.BookingEvent) error {
	_, err := r.coll.InsertOne(ctx, e)
	return errors.Wrap(err, "insert booking audit")
}

var _ AuditRepository = (*MongoAuditRepository)(nil)
