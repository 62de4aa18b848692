package repository

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/skylinetravels/flightbooking/internal/domain"
)

type MongoBookingRepository struct {
	bookings *mongo.Collection
	flights  *mongo.Collection
	users    *mongo.Collection
}

func NewMongoBookingRepository(db *mongo.Database) BookingRepository {
	return &MongoBookingRepository{
		bookings: db.Collection(bookingsCollection),
		flights:  db.Collection(flightsCollection),
		users:    db.Collection(usersCollection),
	}
}

// Create takes the seats with a conditional decrement and then inserts the
// booking. A failed insert gives the seats back.
func (r *MongoBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	seats := len(booking.Passengers)

	var flight domain.Flight
	err := r.flights.FindOneAndUpdate(ctx,
		bson.M{"_id": booking.FlightID, "availableSeats": bson.M{"$gte": seats}},
		bson.M{"$inc": bson.M{"availableSeats": -seats}, "$set": bson.M{"updatedAt": now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&flight)
	if errors.Is(err, mongo.ErrNoDocuments) {
		n, err := r.flights.CountDocuments(ctx, bson.M{"_id": booking.FlightID})
		if err != nil {
			return errors.Wrap(err, "check flight")
		}
		if n == 0 {
			return domain.NotFound("flight")
		}
		return domain.ErrInsufficientSeats
	}
	if err != nil {
		return errors.Wrap(err, "reserve seats")
	}

	booking.TotalPrice = domain.TotalPrice(flight.Price, seats)
	booking.Flight = &flight
	if _, err := r.bookings.InsertOne(ctx, booking); err != nil {
		if _, rerr := r.flights.UpdateByID(context.WithoutCancel(ctx), booking.FlightID,
			bson.M{"$inc": bson.M{"availableSeats": seats}}); rerr != nil {
			return errors.Wrapf(err, "insert booking (seat release failed: %v)", rerr)
		}
		return errors.Wrap(err, "insert booking")
	}
	return nil
}

func (r *MongoBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	var b domain.Booking
	err := r.bookings.FindOne(ctx, bson.M{"_id": id}).Decode(&b)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.NotFound("booking")
	}
	if err != nil {
		return nil, errors.Wrap(err, "find booking")
	}

	bookings := []domain.Booking{b}
	if err := r.joinFlights(ctx, bookings); err != nil {
		return nil, err
	}
	return &bookings[0], nil
}

func (r *MongoBookingRepository) ListByUser(ctx context.Context, userID string) ([]domain.Booking, error) {
	bookings, err := r.find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, err
	}
	return bookings, r.joinFlights(ctx, bookings)
}

func (r *MongoBookingRepository) ListAll(ctx context.Context) ([]domain.Booking, error) {
	bookings, err := r.find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	if err := r.joinFlights(ctx, bookings); err != nil {
		return nil, err
	}
	return bookings, r.joinUsers(ctx, bookings)
}

func (r *MongoBookingRepository) find(ctx context.Context, filter bson.M) ([]domain.Booking, error) {
	cur, err := r.bookings.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "bookingDate", Value: -1}}))
	if err != nil {
		return nil, errors.Wrap(err, "list bookings")
	}
	bookings := make([]domain.Booking, 0)
	if err := cur.All(ctx, &bookings); err != nil {
		return nil, errors.Wrap(err, "decode bookings")
	}
	return bookings, nil
}

// joinFlights attaches the referenced flights. Bookings of deleted flights keep a nil Flight.
func (r *MongoBookingRepository) joinFlights(ctx context.Context, bookings []domain.Booking) error {
	ids := distinct(bookings, func(b domain.Booking) string { return b.FlightID })
	if len(ids) == 0 {
		return nil
	}

	cur, err := r.flights.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return errors.Wrap(err, "join flights")
	}
	var flights []domain.Flight
	if err := cur.All(ctx, &flights); err != nil {
		return errors.Wrap(err, "decode flights")
	}

	byID := make(map[string]*domain.Flight, len(flights))
	for i := range flights {
		byID[flights[i].ID] = &flights[i]
	}
	for i := range bookings {
		bookings[i].Flight = byID[bookings[i].FlightID]
	}
	return nil
}

func (r *MongoBookingRepository) joinUsers(ctx context.Context, bookings []domain.Booking) error {
	ids := distinct(bookings, func(b domain.Booking) string { return b.UserID })
	if len(ids) == 0 {
		return nil
	}

	projection := options.Find().SetProjection(bson.M{"name": 1, "email": 1})
	cur, err := r.users.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, projection)
	if err != nil {
		return errors.Wrap(err, "join users")
	}
	var users []domain.User
	if err := cur.All(ctx, &users); err != nil {
		return errors.Wrap(err, "decode users")
	}

	byID := make(map[string]*domain.UserSummary, len(users))
	for _, u := range users {
		byID[u.ID] = &domain.UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
	}
	for i := range bookings {
		bookings[i].User = byID[bookings[i].UserID]
	}
	return nil
}

func distinct(bookings []domain.Booking, key func(domain.Booking) string) []string {
	seen := make(map[string]struct{}, len(bookings))
	ids := make([]string, 0, len(bookings))
	for _, b := range bookings {
		k := key(b)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		ids = append(ids, k)
	}
	return ids
}

var _ BookingRepository = (*MongoBookingRepository)(nil)
