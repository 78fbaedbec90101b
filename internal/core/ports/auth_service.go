package ports

import (
	"context"

	"github.com/focustrack/focus-tracker-api/internal/core/domain"
)

// LoginResult carries everything the login endpoint returns to the client.
type LoginResult struct {
	Token     string
	User      *domain.User
	ExpiresIn string
}

type AuthService interface {
	Register(ctx context.Context, username, password string, isAdmin bool) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	Profile(ctx context.Context, userID string) (*domain.User, error)
	UpdateUsername(ctx context.Context, userID, username string) (*domain.User, error)
}
