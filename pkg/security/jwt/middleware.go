package jwt

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Locals keys set by the middleware.
const (
	LocalUserID = "userId"
	LocalRole   = "role"
)

// NewAuthMiddleware returns a Fiber middleware that validates Bearer JWT (HS256).
// On success sets the subject and role into c.Locals.
func NewAuthMiddleware(secret, expectedIssuer string) fiber.Handler {
	return newMiddleware([]byte(secret), expectedIssuer, false)
}

// NewOptionalAuthMiddleware is like NewAuthMiddleware but lets anonymous requests
// through; a present but invalid token is still rejected.
func NewOptionalAuthMiddleware(secret, expectedIssuer string) fiber.Handler {
	return newMiddleware([]byte(secret), expectedIssuer, true)
}

func newMiddleware(secret []byte, expectedIssuer string, optional bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			if optional {
				return c.Next()
			}
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "missing Authorization header"})
		}
		// Support both "Bearer <token>" and "<token>" (no prefix).
		tokenStr := strings.TrimSpace(authHeader)
		if parts := strings.SplitN(tokenStr, " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			tokenStr = strings.TrimSpace(parts[1])
		}
		if tokenStr == "" {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "empty token"})
		}
		token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
			return secret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
		if err != nil || !token.Valid {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "invalid or expired token"})
		}
		claims, ok := token.Claims.(*Claims)
		if !ok {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "invalid token claims"})
		}
		if expectedIssuer != "" && claims.Issuer != expectedIssuer {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "invalid token issuer"})
		}
		c.Locals(LocalUserID, claims.Subject)
		c.Locals(LocalRole, string(claims.Role))
		return c.Next()
	}
}
