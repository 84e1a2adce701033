package ports

import (
	"context"

	"github.com/repairshop/technotes/internal/core/domain"
)

// CreateUserInput carries the data for a directory-add operation.
type CreateUserInput struct {
	Username string
	Password string
	// Roles is optional; when empty the service assigns the base role.
	Roles []string
}

// UpdateUserInput carries a full user update. Password is optional: when
// empty the stored hash is left untouched.
type UpdateUserInput struct {
	ID       string
	Username string
	Password string
	Roles    []string
	Active   bool
}

// UserService defines use-case operations for the user directory.
type UserService interface {
	List(ctx context.Context) ([]*domain.User, error)
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	Update(ctx context.Context, input UpdateUserInput) (*domain.User, error)
	// Delete removes the user and returns the deleted record. It fails when
	// any note still references the user.
	Delete(ctx context.Context, id string) (*domain.User, error)
}
