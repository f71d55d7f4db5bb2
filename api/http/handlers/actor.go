package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/artem13815/recruiting/pkg/account"
	"github.com/artem13815/recruiting/pkg/apperror"
	"github.com/artem13815/recruiting/pkg/security/jwt"
)

const dateLayout = "2006-01-02"

var (
	errUnauthenticated = apperror.New(apperror.CodeUnauthorized, "could not identify the user")
	errInvalidJSON     = apperror.Validation("invalid JSON payload")
	errInvalidUUID     = apperror.Validation("invalid UUID")
)

// actorFrom reads the caller set by the auth middleware.
func actorFrom(c *fiber.Ctx) (account.Actor, error) {
	idStr, _ := c.Locals(jwt.LocalUserID).(string)
	id, err := uuid.Parse(idStr)
	if err != nil {
		return account.Actor{}, errUnauthenticated
	}
	role, _ := c.Locals(jwt.LocalRole).(string)
	return account.Actor{ID: id, Role: account.Role(role)}, nil
}

// optionalActor returns nil for anonymous requests.
func optionalActor(c *fiber.Ctx) *account.Actor {
	a, err := actorFrom(c)
	if err != nil {
		return nil
	}
	return &a
}

func uuidParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, errInvalidUUID
	}
	return id, nil
}

func parseUUID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return uuid.Nil, errInvalidUUID
	}
	return id, nil
}

func parseDate(field, s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, apperror.Validation(field + " must use the YYYY-MM-DD format")
	}
	return t, nil
}

func parseOptionalDate(field string, s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	t, err := parseDate(field, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
