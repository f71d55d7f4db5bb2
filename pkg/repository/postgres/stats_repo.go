package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/recruiting/pkg/stats"
)

type StatsRepository struct {
	pool *pgxpool.Pool
}

func NewStatsRepository(pool *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{pool: pool}
}

func (r *StatsRepository) CompanyCounts(ctx context.Context, companyID uuid.UUID, openState string) (stats.CompanyCounts, error) {
	var c stats.CompanyCounts
	err := r.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM postings WHERE company_id = $1 AND state = $2),
			(SELECT COUNT(*) FROM applications a JOIN postings p ON p.id = a.posting_id WHERE p.company_id = $1),
			(SELECT COUNT(*) FROM hirings h
				JOIN applications a ON a.id = h.application_id
				JOIN postings p ON p.id = a.posting_id
				WHERE p.company_id = $1)
	`, companyID, openState).Scan(&c.OpenPostings, &c.Applications, &c.Hirings)
	return c, err
}

func (r *StatsRepository) Overview(ctx context.Context) (stats.Overview, error) {
	o := stats.Overview{
		AccountsByRole:       map[string]int{},
		ApplicationsByStatus: map[string]int{},
	}
	if err := r.groupCount(ctx, `SELECT role, COUNT(*) FROM accounts GROUP BY role`, o.AccountsByRole); err != nil {
		return stats.Overview{}, err
	}
	if err := r.groupCount(ctx, `SELECT status, COUNT(*) FROM applications GROUP BY status`, o.ApplicationsByStatus); err != nil {
		return stats.Overview{}, err
	}
	err := r.pool.QueryRow(ctx, `
		SELECT (SELECT COUNT(*) FROM postings WHERE active), (SELECT COUNT(*) FROM hirings)
	`).Scan(&o.ActivePostings, &o.Hirings)
	if err != nil {
		return stats.Overview{}, err
	}
	return o, nil
}

func (r *StatsRepository) groupCount(ctx context.Context, q string, dst map[string]int) error {
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var key string
		var n int
		if err := rows.Scan(&key, &n); err != nil {
			return err
		}
		dst[key] = n
	}
	return rows.Err()
}
