package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/skylinetravels/flightbooking/internal/domain"
)

type PGAuditRepository struct {
	db *pgxpool.Pool
}

func NewAuditRepository(db *pgxpool.Pool) AuditRepository {
	return &PGAuditRepository{db: db}
}

func (r *PGAuditRepository) Record(ctx context.Context, e domain.BookingEvent) error {
	_, err := r.db.Exec(ctx, `INSERT INTO booking_audit (event_type, booking_id, user_id, flight_id, flight_number, passenger_count, total_price, status, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		e.Type, e.BookingID, e.UserID, e.FlightID, e.FlightNumber, e.PassengerCount, e.TotalPrice, e.Status, e.OccurredAt)
	return errors.Wrap(err, "insert booking audit")
}

var _ AuditRepository = (*PGAuditRepository)(nil)
