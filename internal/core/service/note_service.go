package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/repairshop/technotes/internal/core/domain"
	"github.com/repairshop/technotes/internal/core/ports"
)

// NoteService implements the note ledger operations. Title uniqueness is
// global across all notes and collated the same way as usernames.
type NoteService struct {
	notes  ports.NoteRepository
	users  ports.UserRepository
	audit  ports.AuditSink
	logger zerolog.Logger
}

func NewNoteService(notes ports.NoteRepository, users ports.UserRepository, audit ports.AuditSink, logger zerolog.Logger) *NoteService {
	return &NoteService{notes: notes, users: users, audit: audit, logger: logger}
}

// List returns all notes, each joined with its owner's username via a
// per-note directory lookup. The join is deliberately N+1: fine at this
// scale, and the handler observes its duration so growth is visible.
func (s *NoteService) List(ctx context.Context) ([]ports.NoteWithOwner, error) {
	notes, err := s.notes.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	if len(notes) == 0 {
		return nil, domain.ErrNoNotes
	}

	out := make([]ports.NoteWithOwner, 0, len(notes))
	for _, note := range notes {
		owner, err := s.users.FindByID(ctx, note.UserID)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				// Dangling reference; unreachable while the deletion rule
				// holds, but must not fail the whole list.
				s.logger.Warn().Str("note_id", note.ID).Str("user_id", note.UserID).Msg("note references missing user")
				out = append(out, ports.NoteWithOwner{Note: *note})
				continue
			}
			return nil, fmt.Errorf("resolve note owner: %w", err)
		}
		out = append(out, ports.NoteWithOwner{Note: *note, Username: owner.Username})
	}
	return out, nil
}

// Create adds a new note after verifying the owning user exists and the
// title is not already taken under strength-2 collation. The missing-owner
// case is reported as ErrNoteOwnerMissing, which maps to a 409.
func (s *NoteService) Create(ctx context.Context, input ports.CreateNoteInput) (*domain.Note, error) {
	if input.UserID == "" || input.Title == "" || input.Text == "" {
		return nil, domain.ErrAllFieldsRequired
	}

	if _, err := s.users.FindByID(ctx, input.UserID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrNoteOwnerMissing
		}
		return nil, fmt.Errorf("resolve note owner: %w", err)
	}

	duplicate, err := s.notes.FindByTitle(ctx, input.Title)
	if err != nil && !errors.Is(err, domain.ErrNoteNotFound) {
		return nil, fmt.Errorf("check duplicate title: %w", err)
	}
	if duplicate != nil {
		return nil, domain.ErrDuplicateNoteTitle
	}

	now := time.Now().UTC()
	note := &domain.Note{
		UserID:    input.UserID,
		Title:     input.Title,
		Text:      input.Text,
		Completed: false,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.notes.Create(ctx, note)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateNoteTitle) {
			return nil, err
		}
		s.logger.Error().Err(err).Str("title", input.Title).Msg("note insert rejected")
		return nil, domain.ErrInvalidNoteData
	}

	s.logger.Info().Str("title", created.Title).Str("note_id", created.ID).Msg("note created")
	s.recordAudit(created.ID, domain.AuditActionCreated, created.Title)
	return created, nil
}

// Update applies a full update to an existing note. Title and text are
// applied unconditionally; Completed only when true, so this path cannot
// clear the flag. The duplicate check excludes the note's own id.
func (s *NoteService) Update(ctx context.Context, input ports.UpdateNoteInput) (*domain.Note, error) {
	if input.ID == "" || input.Title == "" || input.Text == "" || input.UserID == "" {
		return nil, domain.ErrAllFieldsRequired
	}

	if _, err := s.users.FindByID(ctx, input.UserID); err != nil {
		return nil, err
	}

	note, err := s.notes.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	duplicate, err := s.notes.FindByTitle(ctx, input.Title)
	if err != nil && !errors.Is(err, domain.ErrNoteNotFound) {
		return nil, fmt.Errorf("check duplicate title: %w", err)
	}
	if duplicate != nil && duplicate.ID != input.ID {
		return nil, domain.ErrDuplicateNoteTitle
	}

	note.Title = input.Title
	note.Text = input.Text
	note.UserID = input.UserID
	if input.Completed {
		note.Completed = true
	}
	note.UpdatedAt = time.Now().UTC()

	if err := s.notes.Save(ctx, note); err != nil {
		return nil, fmt.Errorf("save note: %w", err)
	}

	s.logger.Info().Str("title", note.Title).Str("note_id", note.ID).Msg("note updated")
	s.recordAudit(note.ID, domain.AuditActionUpdated, note.Title)
	return note, nil
}

// Delete removes the note matching both id and owning user. A mismatched
// owner silently resolves as not-found.
func (s *NoteService) Delete(ctx context.Context, input ports.DeleteNoteInput) (*domain.Note, error) {
	if input.ID == "" || input.UserID == "" {
		return nil, domain.ErrAllFieldsRequired
	}

	note, err := s.notes.FindByIDAndUser(ctx, input.ID, input.UserID)
	if err != nil {
		return nil, err
	}

	if err := s.notes.Delete(ctx, note.ID); err != nil {
		return nil, fmt.Errorf("delete note: %w", err)
	}

	s.logger.Info().Str("title", note.Title).Str("note_id", note.ID).Msg("note deleted")
	s.recordAudit(note.ID, domain.AuditActionDeleted, note.Title)
	return note, nil
}

func (s *NoteService) recordAudit(id, action, detail string) {
	if s.audit == nil {
		return
	}
	s.audit.Record(domain.AuditEntry{
		Entity:   domain.AuditEntityNote,
		EntityID: id,
		Action:   action,
		Detail:   detail,
		At:       time.Now().UTC(),
	})
}
