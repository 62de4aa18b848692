package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/skylinetravels/flightbooking/internal/domain"
)

const destinationColumns = `id, name, country, description, image, rating, popularity_score, created_at`

type PGDestinationRepository struct {
	db *pgxpool.Pool
}

func NewDestinationRepository(db *pgxpool.Pool) DestinationRepository {
	return &PGDestinationRepository{db: db}
}

func (r *PGDestinationRepository) List(ctx context.Context, filter domain.DestinationFilter) ([]domain.Destination, error) {
	query := `SELECT ` + destinationColumns + ` FROM destinations`
	var args []any
	if filter.Country != "" {
		query += ` WHERE country = $1`
		args = append(args, filter.Country)
	}
	query += ` ORDER BY popularity_score DESC, name`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "list destinations")
	}
	defer rows.Close()

	destinations := make([]domain.Destination, 0)
	for rows.Next() {
		d, err := scanDestination(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan destination")
		}
		destinations = append(destinations, *d)
	}
	return destinations, errors.Wrap(rows.Err(), "list destinations")
}

func (r *PGDestinationRepository) GetByID(ctx context.Context, id string) (*domain.Destination, error) {
	d, err := scanDestination(r.db.QueryRow(ctx, `SELECT `+destinationColumns+` FROM destinations WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.NotFound("destination")
	}
	if err != nil {
		return nil, errors.Wrap(err, "select destination")
	}
	return d, nil
}

func (r *PGDestinationRepository) Create(ctx context.Context, d *domain.Destination) error {
	err := r.db.QueryRow(ctx, `INSERT INTO destinations (id, name, country, description, image, rating, popularity_score)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`,
		d.ID, d.Name, d.Country, d.Description, d.Image, d.Rating, d.PopularityScore).Scan(&d.CreatedAt)
	return errors.Wrap(err, "insert destination")
}

func (r *PGDestinationRepository) Update(ctx context.Context, d *domain.Destination) error {
	tag, err := r.db.Exec(ctx, `UPDATE destinations SET name=$2, country=$3, description=$4, image=$5, rating=$6, popularity_score=$7 WHERE id=$1`,
		d.ID, d.Name, d.Country, d.Description, d.Image, d.Rating, d.PopularityScore)
	if err != nil {
		return errors.Wrap(err, "update destination")
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("destination")
	}
	return nil
}

func (r *PGDestinationRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM destinations WHERE id=$1`, id)
	if err != nil {
		return errors.Wrap(err, "delete destination")
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("destination")
	}
	return nil
}

func (r *PGDestinationRepository) DeleteAll(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `DELETE FROM destinations`)
	return errors.Wrap(err, "delete destinations")
}

func scanDestination(row pgx.Row) (*domain.Destination, error) {
	var d domain.Destination
	if err := row.Scan(&d.ID, &d.Name, &d.Country, &d.Description, &d.Image, &d.Rating, &d.PopularityScore, &d.CreatedAt); err != nil {
		return nil, err
	}
	return &d, nil
}

var _ DestinationRepository = (*PGDestinationRepository)(nil)
