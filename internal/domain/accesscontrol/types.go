package accesscontrol

import "time"

type RoleName string

const (
	RoleAdmin      RoleName = "admin"
	RoleFinance    RoleName = "finance"
	RoleOperations RoleName = "operations"
	RoleViewer     RoleName = "viewer"
)

type Role struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type UserRole struct {
	UserID     int64     `json:"user_id"`
	RoleID     int64     `json:"role_id"`
	AssignedAt time.Time `json:"assigned_at"`
}
