package admindashboard

import "context"

type Overview struct {
	// Customers
	TotalCustomers    int64 `json:"total_customers"`
	NewCustomers30d   int64 `json:"new_customers_30d"`

	// Partners
	TotalPartners     int64 `json:"total_partners"`
	ActivePartners    int64 `json:"active_partners"`
	PendingPartners   int64 `json:"pending_partners"`
	SuspendedPartners int64 `json:"suspended_partners"`

	// Bookings
	TotalBookings     int64 `json:"total_bookings"`
	PendingBookings   int64 `json:"pending_bookings"`
	ConfirmedBookings int64 `json:"confirmed_bookings"`
	CompletedBookings int64 `json:"completed_bookings"`
	CancelledBookings int64 `json:"cancelled_bookings"`
	BookingsToday     int64 `json:"bookings_today"`

	// Revenue from completed bookings, in rupees.
	CompletedRevenue float64 `json:"completed_revenue"`
}

type Store interface {
	GetOverview(ctx context.Context) (*Overview, error)
}
