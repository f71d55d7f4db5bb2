package middleware

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/artem13815/recruiting/api/http/presenter"
	"github.com/artem13815/recruiting/pkg/apperror"
	"github.com/artem13815/recruiting/pkg/security/jwt"
)

const rateLimitScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
if current > tonumber(ARGV[2]) then
  return 0
end
return 1
`

var errRateLimited = apperror.New(apperror.CodeRateLimited, "too many requests, try again later")

// Limiter decides whether a key may perform one more request in the window.
type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) bool
}

type RedisLimiter struct {
	client *redis.Client
	script *redis.Script
}

func NewRedisLimiter(client *redis.Client) *RedisLimiter {
	if client == nil {
		return nil
	}
	return &RedisLimiter{client: client, script: redis.NewScript(rateLimitScript)}
}

// Allow fails open: Redis errors never block a request.
func (l *RedisLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) bool {
	if l == nil || l.client == nil {
		return true
	}
	if key == "" || limit <= 0 || window <= 0 {
		return true
	}
	ttl := window.Milliseconds()
	if ttl <= 0 {
		ttl = 1
	}
	ctx, cancel := context.WithTimeout(ctx, 250*time.Millisecond)
	defer cancel()
	allowed, err := l.script.Run(ctx, l.client, []string{key}, ttl, limit).Int64()
	if err != nil {
		return true
	}
	return allowed == 1
}

// RateLimit keys requests by the authenticated user, falling back to the IP.
// A nil limiter disables the middleware.
func RateLimit(l Limiter, scope string, limit int, window time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if l == nil {
			return c.Next()
		}
		who, _ := c.Locals(jwt.LocalUserID).(string)
		if who == "" {
			who = c.IP()
		}
		if !l.Allow(c.UserContext(), "rl:"+scope+":"+who, limit, window) {
			return presenter.Fail(c, errRateLimited)
		}
		return c.Next()
	}
}
