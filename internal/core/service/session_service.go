package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/focustrack/focus-tracker-api/internal/core/domain"
	"github.com/focustrack/focus-tracker-api/internal/core/ports"
)

type sessionService struct {
	repo   ports.SessionRepository
	logger zerolog.Logger
}

// NewSessionService returns a SessionService implementation.
func NewSessionService(repo ports.SessionRepository, logger zerolog.Logger) ports.SessionService {
	return &sessionService{repo: repo, logger: logger}
}

// Create records a focus session for the owner identified by the claims.
func (s *sessionService) Create(ctx context.Context, userID string, input ports.CreateSessionInput) (*domain.FocusSession, error) {
	now := time.Now().UTC()
	session := &domain.FocusSession{
		UserID:    userID,
		Goal:      input.Goal,
		Duration:  input.Duration,
		Result:    input.Result,
		StartTime: input.StartTime,
		EndTime:   input.EndTime,
		Completed: input.Completed,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.repo.Insert(ctx, session)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create session")
		return nil, err
	}

	s.logger.Info().Str("goal", created.Goal).Float64("duration", created.Duration).Msg("session created")
	return created, nil
}

// List returns the owner's sessions, newest first.
func (s *sessionService) List(ctx context.Context, userID string) ([]domain.FocusSession, error) {
	return s.repo.FindByUser(ctx, userID)
}

// Clear deletes every session of the owner and reports how many went.
func (s *sessionService) Clear(ctx context.Context, userID string) (int64, error) {
	deleted, err := s.repo.DeleteByUser(ctx, userID)
	if err != nil {
		return 0, err
	}

	s.logger.Info().Int64("deleted", deleted).Msg("sessions cleared")
	return deleted, nil
}
