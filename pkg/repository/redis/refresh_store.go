package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/artem13815/recruiting/pkg/auth"
)

const refreshPrefix = "refresh:"

// RefreshTokenStore keeps refresh tokens as expiring Redis keys.
type RefreshTokenStore struct {
	rdb *goredis.Client
}

func NewRefreshTokenStore(rdb *goredis.Client) *RefreshTokenStore {
	return &RefreshTokenStore{rdb: rdb}
}

func (s *RefreshTokenStore) Store(ctx context.Context, t auth.RefreshToken) error {
	ttl := time.Until(t.ExpiresAt)
	if ttl <= 0 {
		return auth.ErrInvalidRefresh
	}
	b, err := json.Marshal(t)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, refreshPrefix+t.Token, b, ttl).Err()
}

func (s *RefreshTokenStore) Get(ctx context.Context, token string) (auth.RefreshToken, error) {
	b, err := s.rdb.Get(ctx, refreshPrefix+token).Bytes()
	if errors.Is(err, goredis.Nil) {
		return auth.RefreshToken{}, auth.ErrInvalidRefresh
	}
	if err != nil {
		return auth.RefreshToken{}, err
	}
	var t auth.RefreshToken
	if err := json.Unmarshal(b, &t); err != nil {
		_ = s.rdb.Del(ctx, refreshPrefix+token).Err()
		return auth.RefreshToken{}, auth.ErrInvalidRefresh
	}
	t.Token = token
	if !time.Now().Before(t.ExpiresAt) {
		return auth.RefreshToken{}, auth.ErrInvalidRefresh
	}
	return t, nil
}

func (s *RefreshTokenStore) Revoke(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, refreshPrefix+token).Err()
}
