package domain

import "time"

// Role determines which route groups a user may call.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// User models an account in the system. Users are never physically removed:
// delete flips Active to false and the record stays queryable.
type User struct {
	ID           int64     `json:"id"`
	Role         Role      `json:"role"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	Active       bool      `json:"active"`
	Country      *Country  `json:"country,omitempty"`
}
