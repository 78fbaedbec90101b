package domain

import (
	"errors"
	"time"
)

var ErrSessionNotFound = errors.New("session not found")

// FocusSession is a single timed focus entry. UserID always comes from the
// authenticated claims, never from client input.
type FocusSession struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user"`
	Goal      string    `json:"goal"`
	Duration  float64   `json:"duration"`
	Result    string    `json:"result"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
