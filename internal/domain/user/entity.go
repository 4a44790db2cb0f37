package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"    // Confirms payouts and manages inquiries
	RoleEmployee Role = "employee" // Clocks in and out
)

type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

type User struct {
	ID           string
	EmployeeID   string
	Username     string
	PasswordHash string
	Role         Role
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin checks if user can confirm payouts and manage inquiries
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) IsActive() bool {
	return u.Status == StatusActive
}
