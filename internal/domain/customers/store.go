package customers

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("customer not found")

type Store interface {
	GetByID(ctx context.Context, customerID int64) (*Row, error)
	List(ctx context.Context, search string, limit, offset int) ([]Row, int, error)
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Store {
	return &Repository{db: db}
}

const customerSelect = `
    SELECT c.id, c.name, c.email, c.phone, c.city, c.created_at,
           COUNT(b.id) AS booking_count,
           COALESCE(SUM(b.amount) FILTER (WHERE b.status = 'completed'), 0) AS lifetime_spend,
           MAX(b.created_at) AS last_booking_at
`

func (r *Repository) GetByID(ctx context.Context, customerID int64) (*Row, error) {
	query := customerSelect + `
        FROM customers c
        LEFT JOIN bookings b ON b.customer_id = c.id
        WHERE c.id = $1
        GROUP BY c.id
    `
	var row Row
	err := r.db.QueryRow(ctx, query, customerID).Scan(
		&row.ID, &row.Name, &row.Email, &row.Phone, &row.City, &row.CreatedAt,
		&row.BookingCount, &row.LifetimeSpend, &row.LastBookingAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (r *Repository) List(ctx context.Context, search string, limit, offset int) ([]Row, int, error) {
	query := customerSelect + `,
           COUNT(*) OVER() AS total
        FROM customers c
        LEFT JOIN bookings b ON b.customer_id = c.id
        WHERE ($1 = '' OR c.name ILIKE '%' || $1 || '%' OR c.email ILIKE '%' || $1 || '%' OR c.phone LIKE '%' || $1 || '%')
        GROUP BY c.id
        ORDER BY c.created_at DESC
        LIMIT $2 OFFSET $3
    `
	rows, err := r.db.Query(ctx, query, search, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	var out []Row
	var total int
	for rows.Next() {
		var row Row
		if err := rows.Scan(
			&row.ID, &row.Name, &row.Email, &row.Phone, &row.City, &row.CreatedAt,
			&row.BookingCount, &row.LifetimeSpend, &row.LastBookingAt, &total,
		); err != nil {
			return nil, 0, err
		}
		out = append(out, row)
	}
	return out, total, rows.Err()
}
