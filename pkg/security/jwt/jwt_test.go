package jwt

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/recruiting/pkg/account"
)

func newTestApp(mw fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Get("/me", mw, func(c *fiber.Ctx) error {
		id, _ := c.Locals(LocalUserID).(string)
		role, _ := c.Locals(LocalRole).(string)
		return c.SendString(id + "|" + role)
	})
	return app
}

func TestMiddleware_AcceptsGeneratedToken(t *testing.T) {
	gen := NewGenerator("secret", "issuer", time.Minute)
	acc := account.Account{ID: uuid.New(), Role: account.RoleCompany}
	token, exp, err := gen.Generate(context.Background(), acc)
	require.NoError(t, err)
	assert.True(t, exp.After(time.Now()))

	app := newTestApp(NewAuthMiddleware("secret", "issuer"))
	for _, header := range []string{"Bearer " + token, token} {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", header)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, acc.ID.String()+"|company", string(body))
	}
}

func TestMiddleware_Rejects(t *testing.T) {
	good, _, err := NewGenerator("secret", "issuer", time.Minute).Generate(context.Background(), account.Account{ID: uuid.New()})
	require.NoError(t, err)
	otherIssuer, _, err := NewGenerator("secret", "other", time.Minute).Generate(context.Background(), account.Account{ID: uuid.New()})
	require.NoError(t, err)
	expired, _, err := NewGenerator("secret", "issuer", -time.Minute).Generate(context.Background(), account.Account{ID: uuid.New()})
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong secret", "Bearer " + good + "x"},
		{"wrong issuer", "Bearer " + otherIssuer},
		{"expired", "Bearer " + expired},
		{"garbage", "Bearer not-a-jwt"},
	}
	app := newTestApp(NewAuthMiddleware("secret", "issuer"))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestOptionalMiddleware_AllowsAnonymous(t *testing.T) {
	app := newTestApp(NewOptionalAuthMiddleware("secret", "issuer"))
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/me", nil), -1)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "|", string(body))
}
