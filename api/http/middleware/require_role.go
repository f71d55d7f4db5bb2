package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/recruiting/api/http/presenter"
	"github.com/artem13815/recruiting/pkg/account"
	"github.com/artem13815/recruiting/pkg/apperror"
	"github.com/artem13815/recruiting/pkg/security/jwt"
)

var errRoleNotAllowed = apperror.Forbidden("role not allowed for this operation")

// RequireRole must run after the auth middleware.
func RequireRole(allowed ...account.Role) fiber.Handler {
	allow := make(map[account.Role]struct{}, len(allowed))
	for _, r := range allowed {
		allow[r] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals(jwt.LocalRole).(string)
		if _, ok := allow[account.Role(role)]; !ok {
			return presenter.Fail(c, errRoleNotAllowed)
		}
		return c.Next()
	}
}

// RequireStaff allows admins and the hiring group.
func RequireStaff() fiber.Handler {
	return RequireRole(account.RoleAdmin, account.RoleHiringGroup)
}
