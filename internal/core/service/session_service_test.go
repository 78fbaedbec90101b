package service

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/focustrack/focus-tracker-api/internal/core/domain"
	"github.com/focustrack/focus-tracker-api/internal/core/ports"
)

type stubSessionRepo struct {
	nextID   int
	sessions []domain.FocusSession
}

func (r *stubSessionRepo) Insert(_ context.Context, session *domain.FocusSession) (*domain.FocusSession, error) {
	r.nextID++
	created := *session
	created.ID = "session_" + strconv.Itoa(r.nextID)
	r.sessions = append(r.sessions, created)
	return &created, nil
}

func (r *stubSessionRepo) FindByUser(_ context.Context, userID string) ([]domain.FocusSession, error) {
	var out []domain.FocusSession
	for i := len(r.sessions) - 1; i >= 0; i-- {
		if r.sessions[i].UserID == userID {
			out = append(out, r.sessions[i])
		}
	}
	return out, nil
}

func (r *stubSessionRepo) DeleteByUser(_ context.Context, userID string) (int64, error) {
	var kept []domain.FocusSession
	var deleted int64
	for _, s := range r.sessions {
		if s.UserID == userID {
			deleted++
			continue
		}
		kept = append(kept, s)
	}
	r.sessions = kept
	return deleted, nil
}

func TestSessionService_Create(t *testing.T) {
	repo := &stubSessionRepo{}
	svc := NewSessionService(repo, zerolog.Nop())

	start := time.Now().Add(-30 * time.Minute)
	end := time.Now()
	session, err := svc.Create(context.Background(), "user_1", ports.CreateSessionInput{
		Goal:      "write report",
		Duration:  30,
		StartTime: start,
		EndTime:   end,
		Completed: true,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if session.ID == "" {
		t.Fatalf("expected generated id")
	}
	if session.UserID != "user_1" {
		t.Fatalf("expected owner user_1, got %q", session.UserID)
	}
	if session.CreatedAt.IsZero() || session.UpdatedAt.IsZero() {
		t.Fatalf("expected timestamps to be set")
	}
}

func TestSessionService_ListScopedToOwner(t *testing.T) {
	repo := &stubSessionRepo{}
	svc := NewSessionService(repo, zerolog.Nop())

	_, _ = svc.Create(context.Background(), "user_1", ports.CreateSessionInput{Goal: "a", Duration: 10})
	_, _ = svc.Create(context.Background(), "user_2", ports.CreateSessionInput{Goal: "b", Duration: 20})
	_, _ = svc.Create(context.Background(), "user_1", ports.CreateSessionInput{Goal: "c", Duration: 30})

	sessions, err := svc.List(context.Background(), "user_1")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}
	for _, s := range sessions {
		if s.UserID != "user_1" {
			t.Fatalf("session %q belongs to %q", s.ID, s.UserID)
		}
	}
	// Newest first.
	if sessions[0].Goal != "c" || sessions[1].Goal != "a" {
		t.Fatalf("unexpected order: %q, %q", sessions[0].Goal, sessions[1].Goal)
	}
}

func TestSessionService_ClearOnlyOwner(t *testing.T) {
	repo := &stubSessionRepo{}
	svc := NewSessionService(repo, zerolog.Nop())

	_, _ = svc.Create(context.Background(), "user_1", ports.CreateSessionInput{Goal: "a", Duration: 10})
	_, _ = svc.Create(context.Background(), "user_1", ports.CreateSessionInput{Goal: "b", Duration: 10})
	_, _ = svc.Create(context.Background(), "user_2", ports.CreateSessionInput{Goal: "c", Duration: 10})

	deleted, err := svc.Clear(context.Background(), "user_1")
	if err != nil {
		t.Fatalf("Clear returned error: %v", err)
	}
	if deleted != 2 {
		t.Fatalf("expected 2 deleted, got %d", deleted)
	}

	remaining, _ := svc.List(context.Background(), "user_2")
	if len(remaining) != 1 {
		t.Fatalf("expected user_2 sessions untouched, got %d", len(remaining))
	}
}
