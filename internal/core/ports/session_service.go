package ports

import (
	"context"
	"time"

	"github.com/focustrack/focus-tracker-api/internal/core/domain"
)

// CreateSessionInput is the sanitized payload for a new focus session.
// The owner id is supplied separately from the authenticated claims.
type CreateSessionInput struct {
	Goal      string
	Duration  float64
	Result    string
	StartTime time.Time
	EndTime   time.Time
	Completed bool
}

type SessionService interface {
	Create(ctx context.Context, userID string, input CreateSessionInput) (*domain.FocusSession, error)
	List(ctx context.Context, userID string) ([]domain.FocusSession, error)
	Clear(ctx context.Context, userID string) (int64, error)
}
