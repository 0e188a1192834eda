package models

import "time"

// User is a staff account for the admin area. Passwords are stored as bcrypt
// hashes only.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)
