package admindashboard

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Store {
	return &Repository{db: db}
}

func (r *Repository) GetOverview(ctx context.Context) (*Overview, error) {
	const q = `
		SELECT
			(SELECT COUNT(*) FROM customers),
			(SELECT COUNT(*) FROM customers WHERE created_at >= now() - interval '30 days'),

			(SELECT COUNT(*) FROM partners),
			(SELECT COUNT(*) FROM partners WHERE status = 'active'),
			(SELECT COUNT(*) FROM partners WHERE status = 'pending'),
			(SELECT COUNT(*) FROM partners WHERE status = 'suspended'),

			(SELECT COUNT(*) FROM bookings),
			(SELECT COUNT(*) FROM bookings WHERE status = 'pending'),
			(SELECT COUNT(*) FROM bookings WHERE status = 'confirmed'),
			(SELECT COUNT(*) FROM bookings WHERE status = 'completed'),
			(SELECT COUNT(*) FROM bookings WHERE status = 'cancelled'),
			(SELECT COUNT(*) FROM bookings WHERE created_at >= date_trunc('day', now())),

			(SELECT COALESCE(SUM(amount), 0) FROM bookings WHERE status = 'completed')
	`

	var o Overview
	err := r.db.QueryRow(ctx, q).Scan(
		&o.TotalCustomers,
		&o.NewCustomers30d,

		&o.TotalPartners,
		&o.ActivePartners,
		&o.PendingPartners,
		&o.SuspendedPartners,

		&o.TotalBookings,
		&o.PendingBookings,
		&o.ConfirmedBookings,
		&o.CompletedBookings,
		&o.CancelledBookings,
		&o.BookingsToday,

		&o.CompletedRevenue,
	)
	if err != nil {
		return nil, fmt.Errorf("get admin overview: %w", err)
	}

	return &o, nil
}
