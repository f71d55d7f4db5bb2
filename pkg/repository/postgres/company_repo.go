package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/recruiting/pkg/account"
	"github.com/artem13815/recruiting/pkg/company"
)

type CompanyRepository struct {
	pool *pgxpool.Pool
}

func NewCompanyRepository(pool *pgxpool.Pool) *CompanyRepository {
	return &CompanyRepository{pool: pool}
}

const companyColumns = `id, account_id, name, sector, contact_person, contact_phone, address, created_at`

func scanCompany(row pgx.Row) (company.Profile, error) {
	var p company.Profile
	if err := row.Scan(&p.ID, &p.AccountID, &p.Name, &p.Sector, &p.ContactPerson, &p.ContactPhone, &p.Address, &p.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.Profile{}, company.ErrNotFound
		}
		return company.Profile{}, err
	}
	p.CreatedAt = p.CreatedAt.UTC()
	return p, nil
}

func (r *CompanyRepository) Create(ctx context.Context, p company.Profile) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO company_profiles (id, account_id, name, sector, contact_person, contact_phone, address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, p.ID, p.AccountID, p.Name, p.Sector, p.ContactPerson, p.ContactPhone, p.Address, p.CreatedAt)
	switch {
	case err == nil:
		return nil
	case isUniqueViolation(err):
		return company.ErrAlreadyExists
	case isReferenced(err):
		return account.ErrNotFound
	default:
		return err
	}
}

func (r *CompanyRepository) GetByID(ctx context.Context, id uuid.UUID) (company.Profile, error) {
	return scanCompany(r.pool.QueryRow(ctx, `SELECT `+companyColumns+` FROM company_profiles WHERE id = $1`, id))
}

func (r *CompanyRepository) GetByAccount(ctx context.Context, accountID uuid.UUID) (company.Profile, error) {
	return scanCompany(r.pool.QueryRow(ctx, `SELECT `+companyColumns+` FROM company_profiles WHERE account_id = $1`, accountID))
}

func (r *CompanyRepository) List(ctx context.Context, limit, offset int) ([]company.Profile, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+companyColumns+`
		FROM company_profiles
		ORDER BY name
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := []company.Profile{}
	for rows.Next() {
		p, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, p)
	}
	return res, rows.Err()
}

func (r *CompanyRepository) Update(ctx context.Context, p company.Profile) error {
	cmd, err := r.pool.Exec(ctx, `
		UPDATE company_profiles
		SET name = $2, sector = $3, contact_person = $4, contact_phone = $5, address = $6
		WHERE id = $1
	`, p.ID, p.Name, p.Sector, p.ContactPerson, p.ContactPhone, p.Address)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return company.ErrNotFound
	}
	return nil
}
