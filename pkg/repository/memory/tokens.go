package memory

import (
	"context"
	"time"

	"github.com/artem13815/recruiting/pkg/auth"
)

type RefreshTokenStore struct{ s *Store }

func (r *RefreshTokenStore) Store(ctx context.Context, t auth.RefreshToken) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.refresh[t.Token] = t
	return nil
}

func (r *RefreshTokenStore) Get(ctx context.Context, token string) (auth.RefreshToken, error) {
	r.s.mu.RLock()
	t, ok := r.s.refresh[token]
	r.s.mu.RUnlock()
	if !ok {
		return auth.RefreshToken{}, auth.ErrInvalidRefresh
	}
	if !time.Now().Before(t.ExpiresAt) {
		_ = r.Revoke(ctx, token)
		return auth.RefreshToken{}, auth.ErrInvalidRefresh
	}
	return t, nil
}

func (r *RefreshTokenStore) Revoke(ctx context.Context, token string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.refresh, token)
	return nil
}
