package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/skylinetravels/flightbooking/internal/domain"
)

const bookingWithFlight = `SELECT b.id, b.user_id, b.flight_id, b.passengers, b.total_price, b.status, b.payment_status, b.booking_date,
	f.id, f.flight_number, f.airline, f.origin, f.destination, f.departure_time, f.arrival_time, f.price,
	f.available_seats, f.total_seats, f.class, f.status, f.created_at, f.updated_at`

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return errors.Wrap(err, "begin booking")
	}
	defer tx.Rollback(ctx)

	seats := len(booking.Passengers)
	flight, err := scanFlight(tx.QueryRow(ctx, `UPDATE flights SET available_seats = available_seats - $2, updated_at = now()
		WHERE id=$1 AND available_seats >= $2 RETURNING `+flightColumns, booking.FlightID, seats))
	if errors.Is(err, pgx.ErrNoRows) {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM flights WHERE id=$1)`, booking.FlightID).Scan(&exists); err != nil {
			return errors.Wrap(err, "check flight")
		}
		if !exists {
			return domain.NotFound("flight")
		}
		return domain.ErrInsufficientSeats
	}
	if err != nil {
		return errors.Wrap(err, "reserve seats")
	}

	booking.TotalPrice = domain.TotalPrice(flight.Price, seats)
	booking.Flight = flight
	if _, err := tx.Exec(ctx, `INSERT INTO bookings (id, user_id, flight_id, passengers, total_price, status, payment_status, booking_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		booking.ID, booking.UserID, booking.FlightID, booking.Passengers, booking.TotalPrice,
		booking.Status, booking.PaymentStatus, booking.BookingDate); err != nil {
		return errors.Wrap(err, "insert booking")
	}

	return errors.Wrap(tx.Commit(ctx), "commit booking")
}

func (r *PGBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, bookingWithFlight+` FROM bookings b LEFT JOIN flights f ON f.id = b.flight_id WHERE b.id=$1`, id)
	b, err := scanBooking(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.NotFound("booking")
	}
	if err != nil {
		return nil, errors.Wrap(err, "select booking")
	}
	return b, nil
}

func (r *PGBookingRepository) ListByUser(ctx context.Context, userID string) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, bookingWithFlight+` FROM bookings b LEFT JOIN flights f ON f.id = b.flight_id
		WHERE b.user_id=$1 ORDER BY b.booking_date DESC`, userID)
	if err != nil {
		return nil, errors.Wrap(err, "list bookings")
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan booking")
		}
		bookings = append(bookings, *b)
	}
	return bookings, errors.Wrap(rows.Err(), "list bookings")
}

func (r *PGBookingRepository) ListAll(ctx context.Context) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, bookingWithFlight+`, u.id, u.name, u.email
		FROM bookings b
		LEFT JOIN flights f ON f.id = b.flight_id
		LEFT JOIN users u ON u.id = b.user_id
		ORDER BY b.booking_date DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "list all bookings")
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		var u struct{ id, name, email *string }
		b, err := scanBooking(rows, &u.id, &u.name, &u.email)
		if err != nil {
			return nil, errors.Wrap(err, "scan booking")
		}
		if u.id != nil {
			b.User = &domain.UserSummary{ID: *u.id, Name: deref(u.name), Email: deref(u.email)}
		}
		bookings = append(bookings, *b)
	}
	return bookings, errors.Wrap(rows.Err(), "list all bookings")
}

// joinedFlight receives the LEFT JOINed flight columns, all NULL when the flight was deleted.
type joinedFlight struct {
	ID, FlightNumber, Airline, Origin, Destination *string
	DepartureTime, ArrivalTime                     *time.Time
	Price                                          *float64
	AvailableSeats, TotalSeats                     *int
	Class                                          *domain.FlightClass
	Status                                         *domain.FlightStatus
	CreatedAt, UpdatedAt                           *time.Time
}

func (j joinedFlight) toDomain() *domain.Flight {
	if j.ID == nil {
		return nil
	}
	f := &domain.Flight{
		ID:           *j.ID,
		FlightNumber: deref(j.FlightNumber),
		Airline:      deref(j.Airline),
		Origin:       deref(j.Origin),
		Destination:  deref(j.Destination),
	}
	if j.DepartureTime != nil {
		f.DepartureTime = *j.DepartureTime
	}
	if j.ArrivalTime != nil {
		f.ArrivalTime = *j.ArrivalTime
	}
	if j.Price != nil {
		f.Price = *j.Price
	}
	if j.AvailableSeats != nil {
		f.AvailableSeats = *j.AvailableSeats
	}
	if j.TotalSeats != nil {
		f.TotalSeats = *j.TotalSeats
	}
	if j.Class != nil {
		f.Class = *j.Class
	}
	if j.Status != nil {
		f.Status = *j.Status
	}
	if j.CreatedAt != nil {
		f.CreatedAt = *j.CreatedAt
	}
	if j.UpdatedAt != nil {
		f.UpdatedAt = *j.UpdatedAt
	}
	return f
}

func scanBooking(row pgx.Row, extra ...any) (*domain.Booking, error) {
	var (
		b domain.Booking
		j joinedFlight
	)
	dest := []any{
		&b.ID, &b.UserID, &b.FlightID, &b.Passengers, &b.TotalPrice, &b.Status, &b.PaymentStatus, &b.BookingDate,
		&j.ID, &j.FlightNumber, &j.Airline, &j.Origin, &j.Destination, &j.DepartureTime, &j.ArrivalTime, &j.Price,
		&j.AvailableSeats, &j.TotalSeats, &j.Class, &j.Status, &j.CreatedAt, &j.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	b.Flight = j.toDomain()
	return &b, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

var _ BookingRepository = (*PGBookingRepository)(nil)
