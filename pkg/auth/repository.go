package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/recruiting/pkg/apperror"
)

// Common errors used by the token store and use cases.
var (
	ErrInvalidCredentials = apperror.New(apperror.CodeUnauthorized, "invalid credentials")
	ErrInvalidRefresh     = apperror.New(apperror.CodeUnauthorized, "invalid or expired refresh token")
)

// RefreshToken is an opaque, server-side session handle.
type RefreshToken struct {
	Token     string    `json:"-"`
	AccountID uuid.UUID `json:"accountId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// RefreshTokenStore keeps refresh tokens until they expire or are revoked.
// Implementations may be Redis or in-memory.
type RefreshTokenStore interface {
	Store(ctx context.Context, t RefreshToken) error
	// Get returns ErrInvalidRefresh for unknown, revoked or expired tokens.
	Get(ctx context.Context, token string) (RefreshToken, error)
	Revoke(ctx context.Context, token string) error
}
