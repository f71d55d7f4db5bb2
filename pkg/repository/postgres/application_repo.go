package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/recruiting/pkg/account"
	"github.com/artem13815/recruiting/pkg/application"
	"github.com/artem13815/recruiting/pkg/posting"
)

type ApplicationRepository struct {
	pool *pgxpool.Pool
}

func NewApplicationRepository(pool *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{pool: pool}
}

const applicationColumns = `id, posting_id, applicant_id, status, applied_at, updated_at`

func scanApplication(row pgx.Row) (application.Application, error) {
	var a application.Application
	if err := row.Scan(&a.ID, &a.PostingID, &a.ApplicantID, &a.Status, &a.AppliedAt, &a.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return application.Application{}, application.ErrNotFound
		}
		return application.Application{}, err
	}
	a.AppliedAt = a.AppliedAt.UTC()
	a.UpdatedAt = a.UpdatedAt.UTC()
	return a, nil
}

func (r *ApplicationRepository) Create(ctx context.Context, a application.Application) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO applications (id, posting_id, applicant_id, status, applied_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, a.ID, a.PostingID, a.ApplicantID, a.Status, a.AppliedAt, a.UpdatedAt)
	switch {
	case err == nil:
		return nil
	case isUniqueViolation(err):
		return application.ErrDuplicate
	case isReferenced(err):
		return posting.ErrNotFound
	default:
		return err
	}
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (application.Application, error) {
	return scanApplication(r.pool.QueryRow(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id))
}

func (r *ApplicationRepository) GetByPostingAndApplicant(ctx context.Context, postingID, applicantID uuid.UUID) (application.Application, error) {
	return scanApplication(r.pool.QueryRow(ctx, `
		SELECT `+applicationColumns+` FROM applications WHERE posting_id = $1 AND applicant_id = $2
	`, postingID, applicantID))
}

func (r *ApplicationRepository) ListByPosting(ctx context.Context, postingID uuid.UUID) ([]application.Application, error) {
	return r.list(ctx, `SELECT `+applicationColumns+` FROM applications WHERE posting_id = $1 ORDER BY applied_at DESC`, postingID)
}

func (r *ApplicationRepository) ListByApplicant(ctx context.Context, applicantID uuid.UUID) ([]application.Application, error) {
	return r.list(ctx, `SELECT `+applicationColumns+` FROM applications WHERE applicant_id = $1 ORDER BY applied_at DESC`, applicantID)
}

func (r *ApplicationRepository) list(ctx context.Context, q string, arg uuid.UUID) ([]application.Application, error) {
	rows, err := r.pool.Query(ctx, q, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := []application.Application{}
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, a)
	}
	return res, rows.Err()
}

func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to application.Status) error {
	cmd, err := r.pool.Exec(ctx, `
		UPDATE applications SET status = $3, updated_at = now() WHERE id = $1 AND status = $2
	`, id, from, to)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return r.missingOr(ctx, id, application.ErrFinal)
	}
	return nil
}

// MarkHired runs the hire as one transaction: the application row is updated
// only if it is still open, then the applicant is promoted and the posting closed.
func (r *ApplicationRepository) MarkHired(ctx context.Context, a application.Application) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	cmd, err := tx.Exec(ctx, `
		UPDATE applications SET status = $3, updated_at = now()
		WHERE id = $1 AND status = $2 AND status IN ($4, $5)
	`, a.ID, a.Status, application.StatusHired, application.StatusPending, application.StatusReviewed)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return r.missingOr(ctx, a.ID, application.ErrFinal)
	}

	// Only candidates are promoted; an employee hired again keeps the role.
	cmd, err = tx.Exec(ctx, `
		UPDATE accounts SET role = $2 WHERE id = $1 AND role IN ($3, $2)
	`, a.ApplicantID, account.RoleEmployee, account.RoleCandidate)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE id = $1)`, a.ApplicantID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return account.ErrNotFound
		}
		return application.ErrNotHireable
	}

	cmd, err = tx.Exec(ctx, `UPDATE postings SET active = FALSE WHERE id = $1`, a.PostingID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return posting.ErrNotFound
	}
	return tx.Commit(ctx)
}

func (r *ApplicationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, `
		DELETE FROM applications WHERE id = $1 AND status IN ($2, $3)
	`, id, application.StatusPending, application.StatusReviewed)
	if err != nil {
		if isReferenced(err) {
			return application.ErrHasHiring
		}
		return err
	}
	if cmd.RowsAffected() == 0 {
		return r.missingOr(ctx, id, application.ErrNotCancellable)
	}
	return nil
}

// missingOr tells apart "no such application" from a failed status guard.
func (r *ApplicationRepository) missingOr(ctx context.Context, id uuid.UUID, guardErr error) error {
	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM applications WHERE id = $1)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return application.ErrNotFound
	}
	return guardErr
}
