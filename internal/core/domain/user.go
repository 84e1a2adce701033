package domain

import (
	"errors"
	"time"
)

const (
	RoleEmployee = "Employee"
	RoleManager  = "Manager"
	RoleAdmin    = "Admin"
)

var ErrNoUsers = errors.New("no users found")
var ErrUserNotFound = errors.New("user not found")
var ErrDuplicateUsername = errors.New("duplicate username")
var ErrUserHasNotes = errors.New("user has assigned notes")
var ErrInvalidUserData = errors.New("invalid user data received")
var ErrAllFieldsRequired = errors.New("all fields are required")

// User models an account in the directory. Username uniqueness is
// case- and accent-insensitive (strength-2 collation, see CollateEqual).
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Roles        []string  `json:"roles"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ValidRole reports whether r is one of the fixed role tags.
func ValidRole(r string) bool {
	return r == RoleEmployee || r == RoleManager || r == RoleAdmin
}
