package domain

import "time"

// Role enumerates the access levels a registered account can hold.
type Role string

const (
	RoleUser       Role = "User"
	RoleAccountant Role = "Accountant"
	RoleAdmin      Role = "Admin"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAccountant, RoleAdmin:
		return true
	}
	return false
}

// User is the domain model for registered bank customers and back-office staff.
// Role changes only through promotion (User -> Accountant) or the startup
// admin seed.
type User struct {
	ID           int64
	FirstName    string
	LastName     string
	Username     string
	Age          int
	Salary       float64
	Blocked      bool
	Role         Role
	AccountantID *int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
