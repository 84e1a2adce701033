package ports

import (
	"context"

	"github.com/repairshop/technotes/internal/core/domain"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	FindAll(ctx context.Context) ([]*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByUsername retrieves a user whose username matches under
	// strength-2 collation (case- and accent-insensitive).
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// Save replaces the full stored document with the given record.
	Save(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
}
