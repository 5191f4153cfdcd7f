package domain

import "time"

// UserRole distinguishes drivers from dispatchers.
type UserRole string

const (
	UserRoleDriver     UserRole = "driver"
	UserRoleDispatcher UserRole = "dispatcher"
)

// User represents a driver or dispatcher referenced by loads.
type User struct {
	ID        string
	Name      string
	Phone     string
	Role      UserRole
	CreatedAt time.Time
}
