package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeRestrictViolation   = "23001"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func isUniqueViolation(err error) bool { return pgCode(err) == codeUniqueViolation }

// isReferenced reports a delete blocked by a restricting foreign key, or an
// insert pointing at a missing row.
func isReferenced(err error) bool {
	c := pgCode(err)
	return c == codeForeignKeyViolation || c == codeRestrictViolation
}
