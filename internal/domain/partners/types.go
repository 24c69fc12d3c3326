package partners

import "time"

const (
	StatusPending   = "pending"
	StatusActive    = "active"
	StatusSuspended = "suspended"
)

// Partner is a service provider on the platform.
type Partner struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Service       string    `json:"service"`
	Status        string    `json:"status"`
	PhotoURL      *string   `json:"photo_url,omitempty" swaggertype:"string"`
	AverageRating float64   `json:"average_rating"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Stats summarize a partner's booking history for the detail page.
type Stats struct {
	TotalBookings     int64      `json:"total_bookings"`
	CompletedBookings int64      `json:"completed_bookings"`
	CancelledBookings int64      `json:"cancelled_bookings"`
	LifetimeEarnings  float64    `json:"lifetime_earnings"`
	LastBookingAt     *time.Time `json:"last_booking_at,omitempty" swaggertype:"string"`
}

type Filter struct {
	Status  *string
	Service *string
}

func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusActive, StatusSuspended:
		return true
	}
	return false
}
