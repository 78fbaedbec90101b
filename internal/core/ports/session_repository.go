package ports

import (
	"context"

	"github.com/focustrack/focus-tracker-api/internal/core/domain"
)

// SessionRepository persists focus sessions. Every operation is scoped by
// the owning user id.
type SessionRepository interface {
	Insert(ctx context.Context, session *domain.FocusSession) (*domain.FocusSession, error)
	FindByUser(ctx context.Context, userID string) ([]domain.FocusSession, error)
	DeleteByUser(ctx context.Context, userID string) (int64, error)
}
