package handlers

import "github.com/gofiber/fiber/v2"

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// parseLimitOffset reads ?limit= and ?offset=. An oversized limit is clamped,
// malformed or negative values fall back to the defaults.
func parseLimitOffset(c *fiber.Ctx, defLimit int) (limit, offset int) {
	limit = c.QueryInt("limit", defLimit)
	switch {
	case limit <= 0:
		limit = defLimit
	case limit > maxPageSize:
		limit = maxPageSize
	}
	offset = c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
