package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/recruiting/pkg/account"
)

// AccountRepository implements account.Repository backed by PostgreSQL (pgx).
type AccountRepository struct {
	pool *pgxpool.Pool
}

func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

const accountColumns = `id, email, password_hash, role, first_name, last_name, phone, created_at`

func scanAccount(row pgx.Row) (account.Account, error) {
	var a account.Account
	if err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.Role, &a.FirstName, &a.LastName, &a.Phone, &a.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return account.Account{}, account.ErrNotFound
		}
		return account.Account{}, err
	}
	a.CreatedAt = a.CreatedAt.UTC()
	return a, nil
}

func (r *AccountRepository) Create(ctx context.Context, a account.Account) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO accounts (id, email, password_hash, role, first_name, last_name, phone, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, a.ID, account.NormalizeEmail(a.Email), a.PasswordHash, a.Role, a.FirstName, a.LastName, a.Phone, a.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return account.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id uuid.UUID) (account.Account, error) {
	return scanAccount(r.pool.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id))
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (account.Account, error) {
	return scanAccount(r.pool.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE email = $1`, account.NormalizeEmail(email)))
}

func (r *AccountRepository) List(ctx context.Context, limit, offset int) ([]account.Account, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := []account.Account{}
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, a)
	}
	return res, rows.Err()
}

// Update never touches the role; it only changes through MarkHired.
func (r *AccountRepository) Update(ctx context.Context, a account.Account) error {
	cmd, err := r.pool.Exec(ctx, `
		UPDATE accounts
		SET email = $2, password_hash = $3, first_name = $4, last_name = $5, phone = $6
		WHERE id = $1
	`, a.ID, account.NormalizeEmail(a.Email), a.PasswordHash, a.FirstName, a.LastName, a.Phone)
	if err != nil {
		if isUniqueViolation(err) {
			return account.ErrAlreadyExists
		}
		return err
	}
	if cmd.RowsAffected() == 0 {
		return account.ErrNotFound
	}
	return nil
}

// Delete relies on ON DELETE CASCADE for profiles, postings and applications;
// hiring records restrict it.
func (r *AccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		if isReferenced(err) {
			return account.ErrHasHistory
		}
		return err
	}
	if cmd.RowsAffected() == 0 {
		return account.ErrNotFound
	}
	return nil
}
