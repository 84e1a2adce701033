package domain

import (
	"errors"
	"time"
)

var ErrNoNotes = errors.New("no notes found")
var ErrNoteNotFound = errors.New("note not found")
var ErrDuplicateNoteTitle = errors.New("duplicate note title")
var ErrInvalidNoteData = errors.New("invalid note data received")

// ErrNoteOwnerMissing is returned when a note create names a user that does
// not exist. It is reported to clients as a conflict (409), not a not-found:
// the original API shipped that way and callers depend on it.
var ErrNoteOwnerMissing = errors.New("note owner not found")

// Note is a work item assigned to exactly one user. Title uniqueness is
// global across all notes under the same strength-2 collation as usernames.
type Note struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user"`
	Title     string    `json:"title"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
