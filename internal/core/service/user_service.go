package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/repairshop/technotes/internal/core/domain"
	"github.com/repairshop/technotes/internal/core/ports"
)

// UserService implements the user directory operations. All consistency
// checks (duplicate username, note dependency) are check-then-act against
// the store; the unique collated index closes the remaining race window.
type UserService struct {
	users  ports.UserRepository
	notes  ports.NoteRepository
	audit  ports.AuditSink
	logger zerolog.Logger
}

func NewUserService(users ports.UserRepository, notes ports.NoteRepository, audit ports.AuditSink, logger zerolog.Logger) *UserService {
	return &UserService{users: users, notes: notes, audit: audit, logger: logger}
}

// List returns all users. An empty directory is an error, not an empty
// list; callers rely on the 400 "No users found" response.
func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	if len(users) == 0 {
		return nil, domain.ErrNoUsers
	}
	return users, nil
}

// Create adds a new user. The username must be unique under strength-2
// collation. Roles default to the base Employee role when none are given.
func (s *UserService) Create(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	if input.Username == "" || input.Password == "" {
		return nil, domain.ErrAllFieldsRequired
	}

	duplicate, err := s.users.FindByUsername(ctx, input.Username)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("check duplicate username: %w", err)
	}
	if duplicate != nil {
		return nil, domain.ErrDuplicateUsername
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	roles := input.Roles
	if len(roles) == 0 {
		roles = []string{domain.RoleEmployee}
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     input.Username,
		PasswordHash: string(hash),
		Roles:        roles,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateUsername) {
			return nil, err
		}
		s.logger.Error().Err(err).Str("username", input.Username).Msg("user insert rejected")
		return nil, domain.ErrInvalidUserData
	}

	s.logger.Info().Str("username", created.Username).Str("user_id", created.ID).Msg("user created")
	s.recordAudit(domain.AuditEntityUser, created.ID, domain.AuditActionCreated, created.Username)
	return created, nil
}

// Update applies a full update to an existing user. The record is allowed
// to keep its own username: the duplicate check excludes its own id. The
// password is re-hashed only when a new one is supplied.
func (s *UserService) Update(ctx context.Context, input ports.UpdateUserInput) (*domain.User, error) {
	if input.ID == "" || input.Username == "" || len(input.Roles) == 0 {
		return nil, domain.ErrAllFieldsRequired
	}

	user, err := s.users.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	duplicate, err := s.users.FindByUsername(ctx, input.Username)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("check duplicate username: %w", err)
	}
	if duplicate != nil && duplicate.ID != input.ID {
		return nil, domain.ErrDuplicateUsername
	}

	user.Username = input.Username
	user.Roles = input.Roles
	user.Active = input.Active
	user.UpdatedAt = time.Now().UTC()

	if input.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}

	if err := s.users.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}

	s.logger.Info().Str("username", user.Username).Str("user_id", user.ID).Msg("user updated")
	s.recordAudit(domain.AuditEntityUser, user.ID, domain.AuditActionUpdated, user.Username)
	return user, nil
}

// Delete removes a user. The deletion is blocked while any note still
// references the user; the dependency is checked via a lookup, not a
// store-level constraint.
func (s *UserService) Delete(ctx context.Context, id string) (*domain.User, error) {
	if id == "" {
		return nil, domain.ErrAllFieldsRequired
	}

	note, err := s.notes.FindAnyByUser(ctx, id)
	if err != nil && !errors.Is(err, domain.ErrNoteNotFound) {
		return nil, fmt.Errorf("check assigned notes: %w", err)
	}
	if note != nil {
		return nil, domain.ErrUserHasNotes
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return nil, fmt.Errorf("delete user: %w", err)
	}

	s.logger.Info().Str("username", user.Username).Str("user_id", user.ID).Msg("user deleted")
	s.recordAudit(domain.AuditEntityUser, user.ID, domain.AuditActionDeleted, user.Username)
	return user, nil
}

func (s *UserService) recordAudit(entity, id, action, detail string) {
	if s.audit == nil {
		return
	}
	s.audit.Record(domain.AuditEntry{
		Entity:   entity,
		EntityID: id,
		Action:   action,
		Detail:   detail,
		At:       time.Now().UTC(),
	})
}
