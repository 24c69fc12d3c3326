package bookings

import "time"

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
	StatusRejected  = "rejected"
)

// Booking is a home-service job booked by a customer with a partner.
// Amounts are in rupees.
type Booking struct {
	ID           int64     `json:"id"`
	Reference    string    `json:"reference"`
	CustomerID   int64     `json:"customer_id"`
	CustomerName string    `json:"customer_name"`
	PartnerID    *int64    `json:"partner_id,omitempty" swaggertype:"integer"`
	PartnerName  *string   `json:"partner_name,omitempty" swaggertype:"string"`
	Service      string    `json:"service"`
	Status       string    `json:"status"`
	Amount       float64   `json:"amount"`
	Address      string    `json:"address"`
	ScheduledAt  time.Time `json:"scheduled_at"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Filter narrows an admin booking listing.
type Filter struct {
	Status *string
	From   *time.Time
	To     *time.Time
}

// StatusCounts is the per-status tally shown at the top of the bookings page.
type StatusCounts struct {
	Total     int64 `json:"total"`
	Pending   int64 `json:"pending"`
	Confirmed int64 `json:"confirmed"`
	Completed int64 `json:"completed"`
	Cancelled int64 `json:"cancelled"`
	Rejected  int64 `json:"rejected"`
}

func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled, StatusRejected:
		return true
	}
	return false
}
