package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/focustrack/focus-tracker-api/internal/core/domain"
	"github.com/focustrack/focus-tracker-api/internal/core/ports"
)

// bcryptCost is deliberately above the library default so a single hash
// costs tens of milliseconds. Tunable, not a secret.
const bcryptCost = 12

// AuthService implements registration, login and profile management.
type AuthService struct {
	repo   ports.UserRepository
	tokens *TokenManager
	logger zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, tokens *TokenManager, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, logger: logger}
}

// Register hashes the password and stores a new user. The repository's
// unique index decides conflicts; there is no read-before-write check.
func (s *AuthService) Register(ctx context.Context, username, password string, isAdmin bool) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		IsAdmin:      isAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", created.Username).Msg("user registered")
	return created, nil
}

// Login verifies credentials and issues a token. An unknown username and a
// wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", user.Username).Msg("login succeeded")
	return &ports.LoginResult{Token: token, User: user, ExpiresIn: ExpiresIn}, nil
}

// Profile returns the user behind the authenticated claims.
func (s *AuthService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.FindByID(ctx, userID)
}

// UpdateUsername renames the authenticated user. Conflicts with another
// user's name surface as ErrUsernameTaken.
func (s *AuthService) UpdateUsername(ctx context.Context, userID, username string) (*domain.User, error) {
	username = strings.TrimSpace(username)

	updated, err := s.repo.UpdateUsername(ctx, userID, username)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", updated.Username).Msg("profile updated")
	return updated, nil
}
