package storage

import (
	"opsdash/internal/domain/accesscontrol"
	"opsdash/internal/domain/admindashboard"
	"opsdash/internal/domain/bookings"
	"opsdash/internal/domain/customers"
	"opsdash/internal/domain/partners"
	"opsdash/internal/domain/users"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Container struct {
	Users          users.Store
	Bookings       bookings.Store
	Partners       partners.Store
	Customers      customers.Store
	AccessControl  accesscontrol.Store
	AdminDashboard admindashboard.Store
}

func NewContainer(db *pgxpool.Pool) *Container {
	return &Container{
		Users:          users.NewRepository(db),
		Bookings:       bookings.NewRepository(db),
		Partners:       partners.NewRepository(db),
		Customers:      customers.NewRepository(db),
		AccessControl:  accesscontrol.NewRepository(db),
		AdminDashboard: admindashboard.NewRepository(db),
	}
}
