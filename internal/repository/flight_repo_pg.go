package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/skylinetravels/flightbooking/internal/domain"
)

const flightColumns = `id, flight_number, airline, origin, destination, departure_time, arrival_time, price, available_seats, total_seats, class, status, created_at, updated_at`

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

func (r *PGFlightRepository) List(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error) {
	var (
		where []string
		args  []any
	)
	if filter.Origin != "" {
		args = append(args, filter.Origin)
		where = append(where, fmt.Sprintf("origin = $%d", len(args)))
	}
	if filter.Destination != "" {
		args = append(args, filter.Destination)
		where = append(where, fmt.Sprintf("destination = $%d", len(args)))
	}
	if from, to, ok := filter.Window(); ok {
		args = append(args, from, to)
		where = append(where, fmt.Sprintf("departure_time >= $%d AND departure_time < $%d", len(args)-1, len(args)))
	}

	query := `SELECT ` + flightColumns + ` FROM flights`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY departure_time`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "list flights")
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan flight")
		}
		flights = append(flights, *f)
	}
	return flights, errors.Wrap(rows.Err(), "list flights")
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id string) (*domain.Flight, error) {
	f, err := scanFlight(r.db.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.NotFound("flight")
	}
	if err != nil {
		return nil, errors.Wrap(err, "select flight")
	}
	return f, nil
}

func (r *PGFlightRepository) Create(ctx context.Context, f *domain.Flight) error {
	err := r.db.QueryRow(ctx, `INSERT INTO flights (id, flight_number, airline, origin, destination, departure_time, arrival_time, price, available_seats, total_seats, class, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at`,
		f.ID, f.FlightNumber, f.Airline, f.Origin, f.Destination, f.DepartureTime, f.ArrivalTime,
		f.Price, f.AvailableSeats, f.TotalSeats, f.Class, f.Status).
		Scan(&f.CreatedAt, &f.UpdatedAt)
	if isUniqueViolation(err) {
		return domain.Invalid("flight number %s already exists", f.FlightNumber)
	}
	return errors.Wrap(err, "insert flight")
}

func (r *PGFlightRepository) Update(ctx context.Context, id string, mutate func(*domain.Flight) error) (*domain.Flight, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, errors.Wrap(err, "begin flight update")
	}
	defer tx.Rollback(ctx)

	f, err := scanFlight(tx.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE id=$1 FOR UPDATE`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.NotFound("flight")
	}
	if err != nil {
		return nil, errors.Wrap(err, "lock flight")
	}

	if err := mutate(f); err != nil {
		return nil, err
	}

	err = tx.QueryRow(ctx, `UPDATE flights SET flight_number=$2, airline=$3, origin=$4, destination=$5,
		departure_time=$6, arrival_time=$7, price=$8, available_seats=$9, total_seats=$10, class=$11, status=$12, updated_at=now()
		WHERE id=$1 RETURNING updated_at`,
		id, f.FlightNumber, f.Airline, f.Origin, f.Destination, f.DepartureTime, f.ArrivalTime,
		f.Price, f.AvailableSeats, f.TotalSeats, f.Class, f.Status).Scan(&f.UpdatedAt)
	if isUniqueViolation(err) {
		return nil, domain.Invalid("flight number %s already exists", f.FlightNumber)
	}
	if err != nil {
		return nil, errors.Wrap(err, "update flight")
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, errors.Wrap(err, "commit flight update")
	}
	return f, nil
}

func (r *PGFlightRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM flights WHERE id=$1`, id)
	if err != nil {
		return errors.Wrap(err, "delete flight")
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("flight")
	}
	return nil
}

func (r *PGFlightRepository) DeleteAll(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `DELETE FROM flights`)
	return errors.Wrap(err, "delete flights")
}

func scanFlight(row pgx.Row) (*domain.Flight, error) {
	var f domain.Flight
	if err := row.Scan(&f.ID, &f.FlightNumber, &f.Airline, &f.Origin, &f.Destination, &f.DepartureTime, &f.ArrivalTime,
		&f.Price, &f.AvailableSeats, &f.TotalSeats, &f.Class, &f.Status, &f.CreatedAt, &f.UpdatedAt); err != nil {
		return nil, err
	}
	return &f, nil
}

var _ FlightRepository = (*PGFlightRepository)(nil)
