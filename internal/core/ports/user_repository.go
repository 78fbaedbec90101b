package ports

import (
	"context"

	"github.com/focustrack/focus-tracker-api/internal/core/domain"
)

// UserRepository defines the interface for user credential persistence.
// Username uniqueness is enforced by the store itself (unique index), not
// by a prior existence check, so concurrent duplicate writes cannot race.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdateUsername(ctx context.Context, id, username string) (*domain.User, error)
}
