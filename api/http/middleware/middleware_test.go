package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/recruiting/api/http/presenter"
	"github.com/artem13815/recruiting/pkg/account"
	"github.com/artem13815/recruiting/pkg/apperror"
	"github.com/artem13815/recruiting/pkg/security/jwt"
)

type countingLimiter struct {
	max  int
	seen map[string]int
}

func (l *countingLimiter) Allow(_ context.Context, key string, _ int, _ time.Duration) bool {
	l.seen[key]++
	return l.seen[key] <= l.max
}

func withUser(id, role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if id != "" {
			c.Locals(jwt.LocalUserID, id)
			c.Locals(jwt.LocalRole, role)
		}
		return c.Next()
	}
}

func ok(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) }

func TestRateLimit(t *testing.T) {
	l := &countingLimiter{max: 2, seen: map[string]int{}}
	app := fiber.New()
	app.Post("/apply", withUser("u1", "candidate"), RateLimit(l, "apply", 2, time.Minute), ok)

	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/apply", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}
	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/apply", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Contains(t, l.seen, "rl:apply:u1")
}

func TestRateLimit_NilLimiterDisabled(t *testing.T) {
	app := fiber.New()
	app.Get("/", RateLimit(nil, "x", 1, time.Minute), ok)

	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}
}

func TestRedisLimiter_NilClientAllows(t *testing.T) {
	var l *RedisLimiter
	assert.Nil(t, NewRedisLimiter(nil))
	assert.True(t, l.Allow(context.Background(), "k", 1, time.Second))
}

func TestRequireRole(t *testing.T) {
	cases := []struct {
		name string
		role string
		want int
	}{
		{"admin", string(account.RoleAdmin), http.StatusOK},
		{"hiring group", string(account.RoleHiringGroup), http.StatusOK},
		{"company", string(account.RoleCompany), http.StatusForbidden},
		{"anonymous", "", http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", withUser("u", tc.role), RequireStaff(), ok)

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
			require.NoError(t, err)
			assert.Equal(t, tc.want, resp.StatusCode)
		})
	}
}

func TestRequestLogger(t *testing.T) {
	log, hook := logtest.NewNullLogger()
	app := fiber.New(fiber.Config{ErrorHandler: presenter.ErrorHandler})
	app.Use(RequestLogger(log))
	app.Get("/ok", ok)
	app.Get("/boom", func(c *fiber.Ctx) error { return errors.New("db down") })
	app.Get("/missing", func(c *fiber.Ctx) error { return presenter.Fail(c, apperror.NotFound("nothing here")) })

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(fiber.HeaderXRequestID, "req-1")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "req-1", resp.Header.Get(fiber.HeaderXRequestID))
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, "req-1", entry.Data["request_id"])

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))
	entry = hook.LastEntry()
	assert.Equal(t, logrus.ErrorLevel, entry.Level)
	assert.Error(t, entry.Data[logrus.ErrorKey].(error))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}
