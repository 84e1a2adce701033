package ports

import (
	"context"

	"github.com/repairshop/technotes/internal/core/domain"
)

// NoteWithOwner is a note joined with its owner's username for display.
type NoteWithOwner struct {
	domain.Note
	Username string `json:"username"`
}

// CreateNoteInput carries the data for a note create.
type CreateNoteInput struct {
	UserID string
	Title  string
	Text   string
}

// UpdateNoteInput carries a full note update. Completed is only applied
// when true: this path cannot clear the flag back to false.
type UpdateNoteInput struct {
	ID        string
	Title     string
	Text      string
	UserID    string
	Completed bool
}

// DeleteNoteInput identifies a note by (id, owning user). A mismatched
// owner resolves as not-found, not as unauthorized.
type DeleteNoteInput struct {
	ID     string
	UserID string
}

// NoteService defines use-case operations for the note ledger.
type NoteService interface {
	List(ctx context.Context) ([]NoteWithOwner, error)
	Create(ctx context.Context, input CreateNoteInput) (*domain.Note, error)
	Update(ctx context.Context, input UpdateNoteInput) (*domain.Note, error)
	Delete(ctx context.Context, input DeleteNoteInput) (*domain.Note, error)
}
