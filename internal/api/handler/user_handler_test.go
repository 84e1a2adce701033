package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/repairshop/technotes/internal/core/domain"
	"github.com/repairshop/technotes/internal/core/ports"
)

type stubUserService struct {
	listFn   func(ctx context.Context) ([]*domain.User, error)
	createFn func(ctx context.Context, input ports.CreateUserInput) (*domain.User, error)
	updateFn func(ctx context.Context, input ports.UpdateUserInput) (*domain.User, error)
	deleteFn func(ctx context.Context, id string) (*domain.User, error)
}

func (s *stubUserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.listFn(ctx)
}

func (s *stubUserService) Create(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	return s.createFn(ctx, input)
}

func (s *stubUserService) Update(ctx context.Context, input ports.UpdateUserInput) (*domain.User, error) {
	return s.updateFn(ctx, input)
}

func (s *stubUserService) Delete(ctx context.Context, id string) (*domain.User, error) {
	return s.deleteFn(ctx, id)
}

func newTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp messageResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp.Message
}

func TestUserHandler_List(t *testing.T) {
	svc := &stubUserService{
		listFn: func(context.Context) ([]*domain.User, error) {
			return []*domain.User{
				{ID: "u1", Username: "alice", Roles: []string{domain.RoleEmployee}, Active: true},
			}, nil
		},
	}
	h := NewUserHandler(svc)
	c, rec := newTestContext(t, http.MethodGet, "/users", "")

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var users []domain.User
	if err := json.Unmarshal(rec.Body.Bytes(), &users); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(users) != 1 || users[0].Username != "alice" {
		t.Fatalf("unexpected payload: %+v", users)
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("password hash must not be serialized: %s", rec.Body.String())
	}
}

func TestUserHandler_List_PropagatesServiceError(t *testing.T) {
	svc := &stubUserService{
		listFn: func(context.Context) ([]*domain.User, error) {
			return nil, domain.ErrNoUsers
		},
	}
	h := NewUserHandler(svc)
	c, _ := newTestContext(t, http.MethodGet, "/users", "")

	if err := h.List(c); !errors.Is(err, domain.ErrNoUsers) {
		t.Fatalf("expected ErrNoUsers, got %v", err)
	}
}

func TestUserHandler_Create(t *testing.T) {
	var got ports.CreateUserInput
	svc := &stubUserService{
		createFn: func(_ context.Context, input ports.CreateUserInput) (*domain.User, error) {
			got = input
			return &domain.User{ID: "u1", Username: input.Username}, nil
		},
	}
	h := NewUserHandler(svc)
	c, rec := newTestContext(t, http.MethodPost, "/users",
		`{"username":"alice","password":"s3cret","roles":["Manager"]}`)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if msg := decodeMessage(t, rec); msg != "New user alice created" {
		t.Fatalf("unexpected message: %q", msg)
	}
	if got.Username != "alice" || got.Password != "s3cret" || len(got.Roles) != 1 {
		t.Fatalf("unexpected input forwarded: %+v", got)
	}
}

func TestUserHandler_Create_MissingFields(t *testing.T) {
	h := NewUserHandler(&stubUserService{})
	c, _ := newTestContext(t, http.MethodPost, "/users", `{"username":"alice"}`)

	if err := h.Create(c); !errors.Is(err, domain.ErrAllFieldsRequired) {
		t.Fatalf("expected ErrAllFieldsRequired, got %v", err)
	}
}

func TestUserHandler_Create_RejectsUnknownRole(t *testing.T) {
	h := NewUserHandler(&stubUserService{})
	c, _ := newTestContext(t, http.MethodPost, "/users",
		`{"username":"alice","password":"s3cret","roles":["Superuser"]}`)

	if err := h.Create(c); !errors.Is(err, domain.ErrAllFieldsRequired) {
		t.Fatalf("expected ErrAllFieldsRequired for unknown role, got %v", err)
	}
}

func TestUserHandler_Create_PropagatesDuplicate(t *testing.T) {
	svc := &stubUserService{
		createFn: func(context.Context, ports.CreateUserInput) (*domain.User, error) {
			return nil, domain.ErrDuplicateUsername
		},
	}
	h := NewUserHandler(svc)
	c, _ := newTestContext(t, http.MethodPost, "/users",
		`{"username":"alice","password":"s3cret"}`)

	if err := h.Create(c); !errors.Is(err, domain.ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}
}

func TestUserHandler_Update(t *testing.T) {
	var got ports.UpdateUserInput
	svc := &stubUserService{
		updateFn: func(_ context.Context, input ports.UpdateUserInput) (*domain.User, error) {
			got = input
			return &domain.User{ID: input.ID, Username: input.Username}, nil
		},
	}
	h := NewUserHandler(svc)
	c, rec := newTestContext(t, http.MethodPatch, "/users",
		`{"id":"u1","username":"alice","roles":["Employee"],"active":false}`)

	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if msg := decodeMessage(t, rec); msg != "alice updated" {
		t.Fatalf("unexpected message: %q", msg)
	}
	if got.Active {
		t.Fatalf("explicit active=false must be forwarded")
	}
	if got.Password != "" {
		t.Fatalf("omitted password must stay empty, got %q", got.Password)
	}
}

func TestUserHandler_Update_ActiveRequired(t *testing.T) {
	h := NewUserHandler(&stubUserService{})
	// active is a required boolean; omitting it is a validation failure,
	// not an implicit false.
	c, _ := newTestContext(t, http.MethodPatch, "/users",
		`{"id":"u1","username":"alice","roles":["Employee"]}`)

	if err := h.Update(c); !errors.Is(err, domain.ErrAllFieldsRequired) {
		t.Fatalf("expected ErrAllFieldsRequired, got %v", err)
	}
}

func TestUserHandler_Update_EmptyRoles(t *testing.T) {
	h := NewUserHandler(&stubUserService{})
	c, _ := newTestContext(t, http.MethodPatch, "/users",
		`{"id":"u1","username":"alice","roles":[],"active":true}`)

	if err := h.Update(c); !errors.Is(err, domain.ErrAllFieldsRequired) {
		t.Fatalf("expected ErrAllFieldsRequired, got %v", err)
	}
}

func TestUserHandler_Delete(t *testing.T) {
	svc := &stubUserService{
		deleteFn: func(_ context.Context, id string) (*domain.User, error) {
			return &domain.User{ID: id, Username: "alice"}, nil
		},
	}
	h := NewUserHandler(svc)
	c, rec := newTestContext(t, http.MethodDelete, "/users", `{"id":"u1"}`)

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if msg := decodeMessage(t, rec); msg != "Username alice with ID u1 deleted" {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestUserHandler_Delete_MissingID(t *testing.T) {
	h := NewUserHandler(&stubUserService{})
	c, _ := newTestContext(t, http.MethodDelete, "/users", `{}`)

	err := h.Delete(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	if he.Code != http.StatusBadRequest || he.Message != "User ID is required" {
		t.Fatalf("unexpected error: code=%d message=%v", he.Code, he.Message)
	}
}

func TestUserHandler_Delete_PropagatesConflict(t *testing.T) {
	svc := &stubUserService{
		deleteFn: func(context.Context, string) (*domain.User, error) {
			return nil, domain.ErrUserHasNotes
		},
	}
	h := NewUserHandler(svc)
	c, _ := newTestContext(t, http.MethodDelete, "/users", `{"id":"u1"}`)

	if err := h.Delete(c); !errors.Is(err, domain.ErrUserHasNotes) {
		t.Fatalf("expected ErrUserHasNotes, got %v", err)
	}
}
