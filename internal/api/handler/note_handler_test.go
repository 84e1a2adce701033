package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/repairshop/technotes/internal/core/domain"
	"github.com/repairshop/technotes/internal/core/ports"
)

type stubNoteService struct {
	listFn   func(ctx context.Context) ([]ports.NoteWithOwner, error)
	createFn func(ctx context.Context, input ports.CreateNoteInput) (*domain.Note, error)
	updateFn func(ctx context.Context, input ports.UpdateNoteInput) (*domain.Note, error)
	deleteFn func(ctx context.Context, input ports.DeleteNoteInput) (*domain.Note, error)
}

func (s *stubNoteService) List(ctx context.Context) ([]ports.NoteWithOwner, error) {
	return s.listFn(ctx)
}

func (s *stubNoteService) Create(ctx context.Context, input ports.CreateNoteInput) (*domain.Note, error) {
	return s.createFn(ctx, input)
}

func (s *stubNoteService) Update(ctx context.Context, input ports.UpdateNoteInput) (*domain.Note, error) {
	return s.updateFn(ctx, input)
}

func (s *stubNoteService) Delete(ctx context.Context, input ports.DeleteNoteInput) (*domain.Note, error) {
	return s.deleteFn(ctx, input)
}

func TestNoteHandler_List(t *testing.T) {
	svc := &stubNoteService{
		listFn: func(context.Context) ([]ports.NoteWithOwner, error) {
			return []ports.NoteWithOwner{
				{
					Note:     domain.Note{ID: "n1", UserID: "u1", Title: "Shopping", Text: "milk"},
					Username: "alice",
				},
			}, nil
		},
	}
	h := NewNoteHandler(svc)
	c, rec := newTestContext(t, http.MethodGet, "/notes", "")

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var notes []ports.NoteWithOwner
	if err := json.Unmarshal(rec.Body.Bytes(), &notes); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(notes) != 1 || notes[0].Username != "alice" || notes[0].Title != "Shopping" {
		t.Fatalf("unexpected payload: %+v", notes)
	}
}

func TestNoteHandler_List_PropagatesServiceError(t *testing.T) {
	svc := &stubNoteService{
		listFn: func(context.Context) ([]ports.NoteWithOwner, error) {
			return nil, domain.ErrNoNotes
		},
	}
	h := NewNoteHandler(svc)
	c, _ := newTestContext(t, http.MethodGet, "/notes", "")

	if err := h.List(c); !errors.Is(err, domain.ErrNoNotes) {
		t.Fatalf("expected ErrNoNotes, got %v", err)
	}
}

func TestNoteHandler_Create(t *testing.T) {
	var got ports.CreateNoteInput
	svc := &stubNoteService{
		createFn: func(_ context.Context, input ports.CreateNoteInput) (*domain.Note, error) {
			got = input
			return &domain.Note{ID: "n1", Title: input.Title}, nil
		},
	}
	h := NewNoteHandler(svc)
	c, rec := newTestContext(t, http.MethodPost, "/notes",
		`{"user":"u1","title":"Shopping","text":"milk"}`)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if msg := decodeMessage(t, rec); msg != "New note Shopping created" {
		t.Fatalf("unexpected message: %q", msg)
	}
	if got.UserID != "u1" || got.Title != "Shopping" || got.Text != "milk" {
		t.Fatalf("unexpected input forwarded: %+v", got)
	}
}

func TestNoteHandler_Create_MissingFields(t *testing.T) {
	h := NewNoteHandler(&stubNoteService{})
	c, _ := newTestContext(t, http.MethodPost, "/notes", `{"title":"Shopping"}`)

	if err := h.Create(c); !errors.Is(err, domain.ErrAllFieldsRequired) {
		t.Fatalf("expected ErrAllFieldsRequired, got %v", err)
	}
}

func TestNoteHandler_Create_PropagatesMissingOwner(t *testing.T) {
	svc := &stubNoteService{
		createFn: func(context.Context, ports.CreateNoteInput) (*domain.Note, error) {
			return nil, domain.ErrNoteOwnerMissing
		},
	}
	h := NewNoteHandler(svc)
	c, _ := newTestContext(t, http.MethodPost, "/notes",
		`{"user":"missing","title":"Shopping","text":"milk"}`)

	if err := h.Create(c); !errors.Is(err, domain.ErrNoteOwnerMissing) {
		t.Fatalf("expected ErrNoteOwnerMissing, got %v", err)
	}
}

func TestNoteHandler_Update(t *testing.T) {
	var got ports.UpdateNoteInput
	svc := &stubNoteService{
		updateFn: func(_ context.Context, input ports.UpdateNoteInput) (*domain.Note, error) {
			got = input
			return &domain.Note{ID: input.ID, Title: input.Title}, nil
		},
	}
	h := NewNoteHandler(svc)
	c, rec := newTestContext(t, http.MethodPatch, "/notes",
		`{"id":"n1","title":"Shopping","text":"milk","user":"u1","completed":true}`)

	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if msg := decodeMessage(t, rec); msg != "Shopping updated" {
		t.Fatalf("unexpected message: %q", msg)
	}
	if !got.Completed {
		t.Fatalf("completed flag not forwarded")
	}
}

func TestNoteHandler_Update_CompletedOptional(t *testing.T) {
	var got ports.UpdateNoteInput
	svc := &stubNoteService{
		updateFn: func(_ context.Context, input ports.UpdateNoteInput) (*domain.Note, error) {
			got = input
			return &domain.Note{ID: input.ID, Title: input.Title}, nil
		},
	}
	h := NewNoteHandler(svc)
	c, _ := newTestContext(t, http.MethodPatch, "/notes",
		`{"id":"n1","title":"Shopping","text":"milk","user":"u1"}`)

	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got.Completed {
		t.Fatalf("omitted completed must bind to false")
	}
}

func TestNoteHandler_Delete(t *testing.T) {
	svc := &stubNoteService{
		deleteFn: func(_ context.Context, input ports.DeleteNoteInput) (*domain.Note, error) {
			return &domain.Note{ID: input.ID, Title: "Shopping"}, nil
		},
	}
	h := NewNoteHandler(svc)
	c, rec := newTestContext(t, http.MethodDelete, "/notes", `{"id":"n1","user":"u1"}`)

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if msg := decodeMessage(t, rec); msg != "Note title Shopping with ID n1 deleted" {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestNoteHandler_Delete_MissingFields(t *testing.T) {
	h := NewNoteHandler(&stubNoteService{})
	c, _ := newTestContext(t, http.MethodDelete, "/notes", `{"id":"n1"}`)

	err := h.Delete(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	if he.Code != http.StatusBadRequest || he.Message != "Note ID and user ID are required" {
		t.Fatalf("unexpected error: code=%d message=%v", he.Code, he.Message)
	}
}

func TestNoteHandler_Delete_PropagatesNotFound(t *testing.T) {
	svc := &stubNoteService{
		deleteFn: func(context.Context, ports.DeleteNoteInput) (*domain.Note, error) {
			return nil, domain.ErrNoteNotFound
		},
	}
	h := NewNoteHandler(svc)
	c, _ := newTestContext(t, http.MethodDelete, "/notes", `{"id":"n1","user":"u2"}`)

	if err := h.Delete(c); !errors.Is(err, domain.ErrNoteNotFound) {
		t.Fatalf("expected ErrNoteNotFound, got %v", err)
	}
}
