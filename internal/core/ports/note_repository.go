package ports

import (
	"context"

	"github.com/repairshop/technotes/internal/core/domain"
)

// NoteRepository defines persistence operations for notes.
type NoteRepository interface {
	FindAll(ctx context.Context) ([]*domain.Note, error)
	FindByID(ctx context.Context, id string) (*domain.Note, error)
	// FindByTitle retrieves a note whose title matches under strength-2
	// collation. The lookup is global, not scoped per user.
	FindByTitle(ctx context.Context, title string) (*domain.Note, error)
	// FindAnyByUser retrieves one note referencing the given user, if any.
	// Used by the user-deletion dependency check.
	FindAnyByUser(ctx context.Context, userID string) (*domain.Note, error)
	// FindByIDAndUser retrieves the note matching both id and owning user.
	FindByIDAndUser(ctx context.Context, id, userID string) (*domain.Note, error)
	Create(ctx context.Context, note *domain.Note) (*domain.Note, error)
	Save(ctx context.Context, note *domain.Note) error
	Delete(ctx context.Context, id string) error
}
