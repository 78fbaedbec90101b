package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/focustrack/focus-tracker-api/internal/core/domain"
)

// TokenTTL is how long an issued token stays valid. Claims are trusted for
// the whole lifetime; there is no server-side revocation.
const TokenTTL = 7 * 24 * time.Hour

// ExpiresIn is the client-facing rendering of TokenTTL.
const ExpiresIn = "7d"

var ErrInvalidToken = errors.New("invalid token")
var ErrTokenExpired = errors.New("token expired")

// Claims is the identity embedded in every issued token.
type Claims struct {
	jwt.RegisteredClaims
	UserID   string `json:"id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
}

// TokenManager issues and verifies HS256-signed identity tokens. Pure
// CPU-bound work; no store access on either path.
type TokenManager struct {
	secret []byte
}

// NewTokenManager fails on an empty secret so a misconfigured deployment
// halts at startup instead of rejecting every request.
func NewTokenManager(secret string) (*TokenManager, error) {
	if secret == "" {
		return nil, errors.New("token: signing secret is not configured")
	}
	return &TokenManager{secret: []byte(secret)}, nil
}

// Issue signs a token for the given user with a 7 day expiry.
func (m *TokenManager) Issue(user *domain.User) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
		UserID:   user.ID,
		Username: user.Username,
		IsAdmin:  user.IsAdmin,
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token, returning its claims unchanged.
// Expired tokens yield ErrTokenExpired; every other failure (bad
// signature, wrong algorithm, malformed blob) yields ErrInvalidToken.
func (m *TokenManager) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}
	if !tkn.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
