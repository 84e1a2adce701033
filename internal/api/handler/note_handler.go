package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/repairshop/technotes/internal/api/metrics"
	"github.com/repairshop/technotes/internal/core/domain"
	"github.com/repairshop/technotes/internal/core/ports"
)

// NoteHandler handles HTTP requests for the note ledger.
type NoteHandler struct {
	service ports.NoteService
}

func NewNoteHandler(service ports.NoteService) *NoteHandler {
	return &NoteHandler{service: service}
}

// List handles GET /notes. Each note carries the username of its owner.
//
// @Summary      List all notes with owner usernames
// @Tags         notes
// @Produce      json
// @Success      200  {array}   ports.NoteWithOwner
// @Failure      400  {object}  map[string]string
// @Router       /notes [get]
func (h *NoteHandler) List(c echo.Context) error {
	start := time.Now()
	notes, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	metrics.OwnerLookupDuration.Observe(time.Since(start).Seconds())

	return c.JSON(http.StatusOK, notes)
}

// Create handles POST /notes.
//
// @Summary      Create a new note
// @Tags         notes
// @Accept       json
// @Produce      json
// @Param        body  body      createNoteRequest  true  "Note details"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /notes [post]
func (h *NoteHandler) Create(c echo.Context) error {
	var req createNoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrAllFieldsRequired, err)
	}

	note, err := h.service.Create(c.Request().Context(), ports.CreateNoteInput{
		UserID: req.UserID,
		Title:  req.Title,
		Text:   req.Text,
	})
	if err != nil {
		return err
	}

	metrics.NotesCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, messageResponse{
		Message: fmt.Sprintf("New note %s created", note.Title),
	})
}

// Update handles PATCH /notes.
//
// @Summary      Update a note
// @Tags         notes
// @Accept       json
// @Produce      json
// @Param        body  body      updateNoteRequest  true  "Full note update"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /notes [patch]
func (h *NoteHandler) Update(c echo.Context) error {
	var req updateNoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrAllFieldsRequired, err)
	}

	note, err := h.service.Update(c.Request().Context(), ports.UpdateNoteInput{
		ID:        req.ID,
		Title:     req.Title,
		Text:      req.Text,
		UserID:    req.UserID,
		Completed: req.Completed,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{
		Message: fmt.Sprintf("%s updated", note.Title),
	})
}

// Delete handles DELETE /notes. The note is addressed by the (id, user)
// pair; a mismatched owner resolves as not-found.
//
// @Summary      Delete a note
// @Tags         notes
// @Accept       json
// @Produce      json
// @Param        body  body      deleteNoteRequest  true  "Note id and owning user id"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Router       /notes [delete]
func (h *NoteHandler) Delete(c echo.Context) error {
	var req deleteNoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Note ID and user ID are required")
	}

	note, err := h.service.Delete(c.Request().Context(), ports.DeleteNoteInput{
		ID:     req.ID,
		UserID: req.UserID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{
		Message: fmt.Sprintf("Note title %s with ID %s deleted", note.Title, note.ID),
	})
}
