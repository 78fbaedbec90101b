package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError is one failed constraint on one request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every failed constraint of a request body, in
// field declaration order. The central error handler renders it as a 400
// with per-field details; handlers never format it themselves.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, fe := range e.Fields {
		msgs = append(msgs, fe.Message)
	}
	return strings.Join(msgs, "; ")
}

// Messages returns the ordered per-field messages.
func (e *ValidationError) Messages() []string {
	msgs := make([]string, 0, len(e.Fields))
	for _, fe := range e.Fields {
		msgs = append(msgs, fe.Message)
	}
	return msgs
}

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
// All constraints are checked before failing; the validator never stops at
// the first broken field.
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator() *echoValidator {
	return &echoValidator{v: validator.New()}
}

// Validate satisfies the echo.Validator interface.
func (ev *echoValidator) Validate(i any) error {
	if err := ev.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			fields := make([]FieldError, 0, len(ve))
			for _, fe := range ve {
				fields = append(fields, fieldError(fe))
			}
			return &ValidationError{Fields: fields}
		}
		return err
	}
	return nil
}

// fieldError converts a single ValidationError into a human-readable message.
func fieldError(fe validator.FieldError) FieldError {
	field := strings.ToLower(fe.Field())
	var msg string
	switch fe.Tag() {
	case "required":
		msg = field + " is required"
	case "min":
		if fe.Kind().String() == "string" {
			msg = fmt.Sprintf("%s must be at least %s characters long", field, fe.Param())
		} else {
			msg = fmt.Sprintf("%s must be at least %s", field, fe.Param())
		}
	case "max":
		if fe.Kind().String() == "string" {
			msg = fmt.Sprintf("%s cannot exceed %s characters", field, fe.Param())
		} else {
			msg = fmt.Sprintf("%s cannot exceed %s", field, fe.Param())
		}
	case "gte":
		msg = fmt.Sprintf("%s must be at least %s", field, fe.Param())
	default:
		msg = fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
	return FieldError{Field: field, Message: msg}
}
