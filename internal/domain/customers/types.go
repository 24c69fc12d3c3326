package customers

import "time"

// Customer is an end user who books home services. This dashboard only
// reads customer records, it never creates them.
type Customer struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	City      string    `json:"city"`
	CreatedAt time.Time `json:"created_at"`
}

// Row is the listing view: a customer with booking activity attached.
type Row struct {
	Customer
	BookingCount  int64      `json:"booking_count"`
	LifetimeSpend float64    `json:"lifetime_spend"`
	LastBookingAt *time.Time `json:"last_booking_at,omitempty" swaggertype:"string"`
}
