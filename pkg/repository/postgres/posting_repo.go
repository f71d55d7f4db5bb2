package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/recruiting/pkg/company"
	"github.com/artem13815/recruiting/pkg/posting"
)

// PostingRepository stores the postings of every company.
type PostingRepository struct {
	pool *pgxpool.Pool
}

func NewPostingRepository(pool *pgxpool.Pool) *PostingRepository {
	return &PostingRepository{pool: pool}
}

const postingColumns = `id, company_id, profession, title, description, salary, active, state, created_at`

func scanPosting(row pgx.Row) (posting.Posting, error) {
	var p posting.Posting
	if err := row.Scan(&p.ID, &p.CompanyID, &p.Profession, &p.Title, &p.Description, &p.Salary, &p.Active, &p.State, &p.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return posting.Posting{}, posting.ErrNotFound
		}
		return posting.Posting{}, err
	}
	p.CreatedAt = p.CreatedAt.UTC()
	return p, nil
}

func (r *PostingRepository) Create(ctx context.Context, p posting.Posting) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO postings (id, company_id, profession, title, description, salary, active, state, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, p.ID, p.CompanyID, p.Profession, p.Title, p.Description, p.Salary, p.Active, p.State, p.CreatedAt)
	if err != nil && isReferenced(err) {
		return company.ErrNotFound
	}
	return err
}

func (r *PostingRepository) GetByID(ctx context.Context, id uuid.UUID) (posting.Posting, error) {
	return scanPosting(r.pool.QueryRow(ctx, `SELECT `+postingColumns+` FROM postings WHERE id = $1`, id))
}

func (r *PostingRepository) List(ctx context.Context, f posting.Filter) ([]posting.Posting, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}
	args := []any{limit, f.Offset}
	var where []string
	if f.CompanyID != nil {
		args = append(args, *f.CompanyID)
		where = append(where, fmt.Sprintf("company_id = $%d", len(args)))
	}
	if f.ActiveOnly {
		where = append(where, "active")
	}
	q := `SELECT ` + postingColumns + ` FROM postings`
	if len(where) > 0 {
		q += ` WHERE ` + strings.Join(where, " AND ")
	}
	q += ` ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := []posting.Posting{}
	for rows.Next() {
		p, err := scanPosting(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, p)
	}
	return res, rows.Err()
}

func (r *PostingRepository) Update(ctx context.Context, p posting.Posting) error {
	cmd, err := r.pool.Exec(ctx, `
		UPDATE postings
		SET profession = $2, title = $3, description = $4, salary = $5, active = $6, state = $7
		WHERE id = $1
	`, p.ID, p.Profession, p.Title, p.Description, p.Salary, p.Active, p.State)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return posting.ErrNotFound
	}
	return nil
}

func (r *PostingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM postings WHERE id = $1`, id)
	if err != nil {
		if isReferenced(err) {
			return posting.ErrHasHiringRecord
		}
		return err
	}
	if cmd.RowsAffected() == 0 {
		return posting.ErrNotFound
	}
	return nil
}
