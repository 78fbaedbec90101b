package domain

import (
	"errors"
	"time"
)

var ErrUsernameTaken = errors.New("username is taken")
var ErrUserNotFound = errors.New("user not found")
var ErrInvalidCredentials = errors.New("invalid username or password")

// User models a registered account. PasswordHash is excluded from every
// JSON rendering; only the store and the auth service ever see it.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"isAdmin"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
