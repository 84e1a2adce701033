package handler

// messageResponse is the envelope for confirmation messages and errors.
type messageResponse struct {
	Message string `json:"message"`
}

// Request schemas for the user directory. Every operation has an explicit
// schema validated at the boundary; nothing duck-typed reaches the service.

type createUserRequest struct {
	Username string   `json:"username" validate:"required"`
	Password string   `json:"password" validate:"required"`
	Roles    []string `json:"roles"    validate:"omitempty,dive,oneof=Employee Manager Admin"`
}

type updateUserRequest struct {
	ID       string `json:"id"       validate:"required"`
	Username string `json:"username" validate:"required"`
	// Password is optional: empty leaves the stored hash untouched.
	Password string   `json:"password"`
	Roles    []string `json:"roles"  validate:"required,min=1,dive,oneof=Employee Manager Admin"`
	// Active is a pointer so that an omitted flag fails validation instead
	// of silently binding to false.
	Active *bool `json:"active" validate:"required"`
}

type deleteUserRequest struct {
	ID string `json:"id" validate:"required"`
}
