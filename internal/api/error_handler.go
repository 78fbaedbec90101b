package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/focustrack/focus-tracker-api/internal/api/handler"
	"github.com/focustrack/focus-tracker-api/internal/core/domain"
	"github.com/focustrack/focus-tracker-api/internal/core/service"
)

// errorBody is the canonical error payload. Every failure in the pipeline
// (bind, validation, store, token, unexpected) renders through it.
type errorBody struct {
	Message   string   `json:"message"`
	Status    int      `json:"status"`
	Details   []string `json:"details,omitempty"`
	Fields    []string `json:"fields,omitempty"`
	Timestamp string   `json:"timestamp"`
	Path      string   `json:"path"`
	Method    string   `json:"method"`
	Cause     string   `json:"cause,omitempty"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Renders validation failures with ordered per-field details.
//   - Logs unexpected errors internally; their cause reaches the client
//     only when production is false.
func NewHTTPErrorHandler(log zerolog.Logger, production bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		body := resolveError(err, log, c)
		if production {
			body.Cause = ""
		}
		body.Status = statusOf(body)
		body.Timestamp = time.Now().UTC().Format(time.RFC3339)
		body.Path = c.Request().URL.Path
		body.Method = c.Request().Method

		_ = c.JSON(body.Status, errorEnvelope{Error: body})
	}
}

func statusOf(body errorBody) int {
	if body.Status == 0 {
		return http.StatusInternalServerError
	}
	return body.Status
}

func resolveError(err error, log zerolog.Logger, c echo.Context) errorBody {
	// Validation failures carry their own ordered field details.
	var ve *handler.ValidationError
	if errors.As(err, &ve) {
		fields := make([]string, 0, len(ve.Fields))
		for _, fe := range ve.Fields {
			fields = append(fields, fe.Field)
		}
		return errorBody{
			Status:  http.StatusBadRequest,
			Message: "Validation failed",
			Details: ve.Messages(),
			Fields:  fields,
		}
	}

	// Echo's own errors (bind failures, 404 from router, method not allowed).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg := fmt.Sprintf("%v", he.Message)
		if he.Code == http.StatusNotFound {
			msg = "Route not found"
		}
		return errorBody{Status: he.Code, Message: msg}
	}

	// Known domain errors → deterministic HTTP codes. A duplicate username
	// is a client mistake, reported as 400 like any other bad input.
	switch {
	case errors.Is(err, domain.ErrUsernameTaken):
		return errorBody{Status: http.StatusBadRequest, Message: "Username is taken"}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return errorBody{Status: http.StatusUnauthorized, Message: "Invalid username or password"}
	case errors.Is(err, service.ErrInvalidToken), errors.Is(err, service.ErrTokenExpired):
		// Expired and invalid surface identically to the client.
		return errorBody{Status: http.StatusUnauthorized, Message: "Token is not valid"}
	case errors.Is(err, domain.ErrUserNotFound):
		return errorBody{Status: http.StatusNotFound, Message: "User not found"}
	case errors.Is(err, domain.ErrSessionNotFound):
		return errorBody{Status: http.StatusNotFound, Message: "Session not found"}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Request().URL.Path).
		Msg("unhandled error")

	return errorBody{
		Status:  http.StatusInternalServerError,
		Message: "Internal server error",
		Cause:   err.Error(),
	}
}
