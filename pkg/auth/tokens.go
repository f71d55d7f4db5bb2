package auth

import (
	"context"
	"time"

	"github.com/artem13815/recruiting/pkg/account"
)

// TokenGenerator abstracts access token creation (e.g., JWT).
// It allows use cases to stay framework-agnostic.
type TokenGenerator interface {
	Generate(ctx context.Context, acc account.Account) (token string, expiresAt time.Time, err error)
}

type TokenPair struct {
	AccessToken  string    `json:"access"`
	RefreshToken string    `json:"refresh"`
	ExpiresAt    time.Time `json:"expiresAt"`
}
