package handler

// Request schemas for the note ledger. The "user" field name is kept from
// the original wire contract (the note's owning user id).

type createNoteRequest struct {
	UserID string `json:"user"  validate:"required"`
	Title  string `json:"title" validate:"required"`
	Text   string `json:"text"  validate:"required"`
}

type updateNoteRequest struct {
	ID     string `json:"id"    validate:"required"`
	Title  string `json:"title" validate:"required"`
	Text   string `json:"text"  validate:"required"`
	UserID string `json:"user"  validate:"required"`
	// Completed is only applied when true; this path cannot clear it.
	Completed bool `json:"completed"`
}

type deleteNoteRequest struct {
	ID     string `json:"id"   validate:"required"`
	UserID string `json:"user" validate:"required"`
}
