package handler

import (
	"strings"

	"github.com/focustrack/focus-tracker-api/internal/core/domain"
)

// Request bodies bind into these typed structs, which is the sanitization
// boundary: undeclared JSON fields are dropped by the decoder and the
// validate tags are the declarative schema checked by echoValidator.

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6"`
	IsAdmin  bool   `json:"isAdmin"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type profileUpdateRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
}

// normalize applies the trims the schema declares before validation runs.
func (r *registerRequest) normalize() {
	r.Username = strings.TrimSpace(r.Username)
}

func (r *loginRequest) normalize() {
	r.Username = strings.TrimSpace(r.Username)
}

func (r *profileUpdateRequest) normalize() {
	r.Username = strings.TrimSpace(r.Username)
}

type registerResponse struct {
	Message string       `json:"message"`
	User    *domain.User `json:"user"`
}

type loginResponse struct {
	Message   string       `json:"message"`
	Token     string       `json:"token"`
	User      *domain.User `json:"user"`
	ExpiresIn string       `json:"expiresIn"`
}

type profileResponse struct {
	Message string       `json:"message,omitempty"`
	User    *domain.User `json:"user"`
}
