package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/focustrack/focus-tracker-api/internal/api/metrics"
	"github.com/focustrack/focus-tracker-api/internal/core/domain"
	"github.com/focustrack/focus-tracker-api/internal/core/ports"
)

// SessionHandler exposes the focus-session CRUD endpoints. The owner id is
// always taken from the authenticated claims, never from the payload.
type SessionHandler struct {
	service ports.SessionService
}

func NewSessionHandler(service ports.SessionService) *SessionHandler {
	return &SessionHandler{service: service}
}

// List handles GET /api/sessions — the caller's sessions, newest first.
//
// @Summary      List the current user's focus sessions
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  sessionListResponse
// @Failure      401  {object}  map[string]any
// @Router       /api/sessions [get]
func (h *SessionHandler) List(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	sessions, err := h.service.List(c.Request().Context(), claims.UserID)
	if err != nil {
		return err
	}
	if sessions == nil {
		sessions = []domain.FocusSession{}
	}

	return c.JSON(http.StatusOK, sessionListResponse{Sessions: sessions})
}

// Create handles POST /api/sessions.
//
// @Summary      Record a focus session
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createSessionRequest  true  "Focus session"
// @Success      201   {object}  sessionResponse
// @Failure      400   {object}  map[string]any
// @Failure      401   {object}  map[string]any
// @Router       /api/sessions [post]
func (h *SessionHandler) Create(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createSessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	session, err := h.service.Create(c.Request().Context(), claims.UserID, req.toInput())
	if err != nil {
		return err
	}

	metrics.SessionsCreatedTotal.WithLabelValues(completionLabel(session.Completed)).Inc()
	metrics.SessionDurationMinutes.Observe(session.Duration)

	return c.JSON(http.StatusCreated, sessionResponse{Session: session})
}

// Clear handles DELETE /api/sessions — removes every session of the caller.
//
// @Summary      Delete all of the current user's focus sessions
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  sessionsClearedResponse
// @Failure      401  {object}  map[string]any
// @Router       /api/sessions [delete]
func (h *SessionHandler) Clear(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	deleted, err := h.service.Clear(c.Request().Context(), claims.UserID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, sessionsClearedResponse{
		Message: "All sessions cleared",
		Deleted: deleted,
	})
}

func completionLabel(completed bool) string {
	if completed {
		return "completed"
	}
	return "abandoned"
}
