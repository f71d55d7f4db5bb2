package checkers

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var errSchemaMissing = errors.New("schema not migrated")

// PostgresChecker pings the pool and makes sure the migrations created the schema.
type PostgresChecker struct {
	pool *pgxpool.Pool
}

func NewPostgresChecker(pool *pgxpool.Pool) *PostgresChecker {
	return &PostgresChecker{pool: pool}
}

func (c *PostgresChecker) Name() string { return "postgres" }

func (c *PostgresChecker) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	if err := c.pool.Ping(ctx); err != nil {
		return err
	}
	var ready bool
	if err := c.pool.QueryRow(ctx, `SELECT to_regclass('public.applications') IS NOT NULL`).Scan(&ready); err != nil {
		return err
	}
	if !ready {
		return errSchemaMissing
	}
	return nil
}
