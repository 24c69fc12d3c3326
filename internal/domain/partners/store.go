package partners

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("partner not found")

type Store interface {
	GetByID(ctx context.Context, partnerID int64) (*Partner, error)
	List(ctx context.Context, filter Filter, limit, offset int) ([]Partner, int, error)
	GetStats(ctx context.Context, partnerID int64) (*Stats, error)
	UpdateStatus(ctx context.Context, partnerID int64, status string) error
	SetPhotoURL(ctx context.Context, partnerID int64, photoURL string) error
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Store {
	return &Repository{db: db}
}

func (r *Repository) GetByID(ctx context.Context, partnerID int64) (*Partner, error) {
	query := `
        SELECT id, name, email, phone, service, status, photo_url, average_rating, created_at, updated_at
        FROM partners
        WHERE id = $1
    `
	var p Partner
	err := r.db.QueryRow(ctx, query, partnerID).Scan(
		&p.ID, &p.Name, &p.Email, &p.Phone, &p.Service, &p.Status,
		&p.PhotoURL, &p.AverageRating, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *Repository) List(ctx context.Context, filter Filter, limit, offset int) ([]Partner, int, error) {
	query := `
        SELECT id, name, email, phone, service, status, photo_url, average_rating,
               created_at, updated_at, COUNT(*) OVER() AS total
        FROM partners
        WHERE ($1::text IS NULL OR status = $1)
          AND ($2::text IS NULL OR service = $2)
        ORDER BY created_at DESC
        LIMIT $3 OFFSET $4
    `
	rows, err := r.db.Query(ctx, query, filter.Status, filter.Service, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list partners: %w", err)
	}
	defer rows.Close()

	var out []Partner
	var total int
	for rows.Next() {
		var p Partner
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Email, &p.Phone, &p.Service, &p.Status,
			&p.PhotoURL, &p.AverageRating, &p.CreatedAt, &p.UpdatedAt, &total,
		); err != nil {
			return nil, 0, err
		}
		out = append(out, p)
	}
	return out, total, rows.Err()
}

func (r *Repository) GetStats(ctx context.Context, partnerID int64) (*Stats, error) {
	var s Stats
	err := r.db.QueryRow(ctx, `
        SELECT
            COUNT(*),
            COUNT(*) FILTER (WHERE status = 'completed'),
            COUNT(*) FILTER (WHERE status = 'cancelled'),
            COALESCE(SUM(amount) FILTER (WHERE status = 'completed'), 0),
            MAX(created_at)
        FROM bookings
        WHERE partner_id = $1
    `, partnerID).Scan(
		&s.TotalBookings,
		&s.CompletedBookings,
		&s.CancelledBookings,
		&s.LifetimeEarnings,
		&s.LastBookingAt,
	)
	if err != nil {
		return nil, fmt.Errorf("partner stats: %w", err)
	}
	return &s, nil
}

func (r *Repository) UpdateStatus(ctx context.Context, partnerID int64, status string) error {
	result, err := r.db.Exec(ctx, `
        UPDATE partners SET status = $1, updated_at = now() WHERE id = $2
    `, status, partnerID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) SetPhotoURL(ctx context.Context, partnerID int64, photoURL string) error {
	result, err := r.db.Exec(ctx, `
        UPDATE partners SET photo_url = $1, updated_at = now() WHERE id = $2
    `, photoURL, partnerID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
