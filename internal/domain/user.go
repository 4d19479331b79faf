package domain

import "time"

// User represents a registered account in the catalog.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash,omitempty"` // Stored hashed, filter from API responses
	RoleID       int64     `json:"role_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// Role represents a permission level referenced by users.
type Role struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Well-known role names seeded at install time.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)
