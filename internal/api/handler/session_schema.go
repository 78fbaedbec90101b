package handler

import (
	"time"

	"github.com/focustrack/focus-tracker-api/internal/core/domain"
	"github.com/focustrack/focus-tracker-api/internal/core/ports"
)

type createSessionRequest struct {
	Goal      string    `json:"goal"      validate:"required,min=1"`
	Duration  float64   `json:"duration"  validate:"required,gte=1"`
	Result    string    `json:"result"`
	StartTime time.Time `json:"startTime" validate:"required"`
	EndTime   time.Time `json:"endTime"   validate:"required"`
	Completed *bool     `json:"completed"`
}

// toInput maps the request to the service DTO, applying the schema
// defaults for absent optional fields.
func (r createSessionRequest) toInput() ports.CreateSessionInput {
	completed := true
	if r.Completed != nil {
		completed = *r.Completed
	}
	return ports.CreateSessionInput{
		Goal:      r.Goal,
		Duration:  r.Duration,
		Result:    r.Result,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Completed: completed,
	}
}

type sessionResponse struct {
	Session *domain.FocusSession `json:"session"`
}

type sessionListResponse struct {
	Sessions []domain.FocusSession `json:"sessions"`
}

type sessionsClearedResponse struct {
	Message string `json:"message"`
	Deleted int64  `json:"deleted"`
}
