package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("booking not found")

type Store interface {
	GetByID(ctx context.Context, bookingID int64) (*Booking, error)
	List(ctx context.Context, filter Filter, limit, offset int) ([]Booking, int, error)
	GetStatusCounts(ctx context.Context) (*StatusCounts, error)
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Store {
	return &Repository{db: db}
}

// Reference is intentionally absent: public codes are derived from the id
// by ReferenceCodec, never stored.
const bookingColumns = `
    b.id, b.customer_id, c.name, b.partner_id, p.name,
    b.service, b.status, b.amount, b.address, b.scheduled_at, b.created_at, b.updated_at
`

func (r *Repository) GetByID(ctx context.Context, bookingID int64) (*Booking, error) {
	query := fmt.Sprintf(`
        SELECT %s
        FROM bookings b
        JOIN customers c ON c.id = b.customer_id
        LEFT JOIN partners p ON p.id = b.partner_id
        WHERE b.id = $1
    `, bookingColumns)

	b, err := scanBooking(r.db.QueryRow(ctx, query, bookingID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (r *Repository) List(ctx context.Context, filter Filter, limit, offset int) ([]Booking, int, error) {
	query := fmt.Sprintf(`
        SELECT %s, COUNT(*) OVER() AS total
        FROM bookings b
        JOIN customers c ON c.id = b.customer_id
        LEFT JOIN partners p ON p.id = b.partner_id
        WHERE ($1::text IS NULL OR b.status = $1)
          AND ($2::timestamptz IS NULL OR b.created_at >= $2)
          AND ($3::timestamptz IS NULL OR b.created_at <= $3)
        ORDER BY b.created_at DESC
        LIMIT $4 OFFSET $5
    `, bookingColumns)

	rows, err := r.db.Query(ctx, query, filter.Status, filter.From, filter.To, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var out []Booking
	var total int
	for rows.Next() {
		var b Booking
		if err := rows.Scan(
			&b.ID, &b.CustomerID, &b.CustomerName, &b.PartnerID, &b.PartnerName,
			&b.Service, &b.Status, &b.Amount, &b.Address, &b.ScheduledAt, &b.CreatedAt, &b.UpdatedAt,
			&total,
		); err != nil {
			return nil, 0, err
		}
		out = append(out, b)
	}
	return out, total, rows.Err()
}

func (r *Repository) GetStatusCounts(ctx context.Context) (*StatusCounts, error) {
	const q = `
        SELECT
            COUNT(*),
            COUNT(*) FILTER (WHERE status = 'pending'),
            COUNT(*) FILTER (WHERE status = 'confirmed'),
            COUNT(*) FILTER (WHERE status = 'completed'),
            COUNT(*) FILTER (WHERE status = 'cancelled'),
            COUNT(*) FILTER (WHERE status = 'rejected')
        FROM bookings
    `

	var s StatusCounts
	err := r.db.QueryRow(ctx, q).Scan(
		&s.Total,
		&s.Pending,
		&s.Confirmed,
		&s.Completed,
		&s.Cancelled,
		&s.Rejected,
	)
	if err != nil {
		return nil, fmt.Errorf("booking status counts: %w", err)
	}
	return &s, nil
}

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	err := row.Scan(
		&b.ID, &b.CustomerID, &b.CustomerName, &b.PartnerID, &b.PartnerName,
		&b.Service, &b.Status, &b.Amount, &b.Address, &b.ScheduledAt, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}
