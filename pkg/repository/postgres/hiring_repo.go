package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/recruiting/pkg/application"
	"github.com/artem13815/recruiting/pkg/hiring"
	"github.com/artem13815/recruiting/pkg/payroll"
)

// HiringRepository stores hiring records and the bank catalog they reference.
type HiringRepository struct {
	pool *pgxpool.Pool
}

func NewHiringRepository(pool *pgxpool.Pool) *HiringRepository {
	return &HiringRepository{pool: pool}
}

func (r *HiringRepository) UpsertBank(ctx context.Context, name string) (hiring.Bank, error) {
	var b hiring.Bank
	err := r.pool.QueryRow(ctx, `
		INSERT INTO banks (id, name) VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, name
	`, uuid.New(), name).Scan(&b.ID, &b.Name)
	return b, err
}

func (r *HiringRepository) Create(ctx context.Context, rec hiring.Record) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO hirings (id, application_id, term, monthly_salary, start_date, bank_id,
			account_number, blood_type, emergency_contact, emergency_phone, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, rec.ID, rec.ApplicationID, rec.Term, rec.MonthlySalary, rec.StartDate, rec.BankID,
		rec.AccountNumber, rec.BloodType, rec.EmergencyContact, rec.EmergencyPhone, rec.CreatedAt)
	switch {
	case err == nil:
		return nil
	case isUniqueViolation(err):
		return hiring.ErrDuplicate
	case isReferenced(err):
		return application.ErrNotFound
	default:
		return err
	}
}

const hiringSelect = `
	SELECT h.id, h.application_id, h.term, h.monthly_salary, h.start_date, h.bank_id, b.name,
		h.account_number, h.blood_type, h.emergency_contact, h.emergency_phone, h.created_at
	FROM hirings h
	JOIN banks b ON b.id = h.bank_id
`

func scanHiring(row pgx.Row) (hiring.Record, error) {
	var rec hiring.Record
	err := row.Scan(&rec.ID, &rec.ApplicationID, &rec.Term, &rec.MonthlySalary, &rec.StartDate, &rec.BankID, &rec.BankName,
		&rec.AccountNumber, &rec.BloodType, &rec.EmergencyContact, &rec.EmergencyPhone, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return hiring.Record{}, hiring.ErrNotFound
		}
		return hiring.Record{}, err
	}
	rec.StartDate = rec.StartDate.UTC()
	rec.CreatedAt = rec.CreatedAt.UTC()
	return rec, nil
}

func (r *HiringRepository) GetByID(ctx context.Context, id uuid.UUID) (hiring.Record, error) {
	return scanHiring(r.pool.QueryRow(ctx, hiringSelect+` WHERE h.id = $1`, id))
}

func (r *HiringRepository) GetByApplication(ctx context.Context, applicationID uuid.UUID) (hiring.Record, error) {
	return scanHiring(r.pool.QueryRow(ctx, hiringSelect+` WHERE h.application_id = $1`, applicationID))
}

type PayslipRepository struct {
	pool *pgxpool.Pool
}

func NewPayslipRepository(pool *pgxpool.Pool) *PayslipRepository {
	return &PayslipRepository{pool: pool}
}

func (r *PayslipRepository) Create(ctx context.Context, p payroll.Payslip) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO payslips (id, hiring_id, period, gross, deductions, net, issued_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, p.ID, p.HiringID, p.Period, p.Gross, p.Deductions, p.Net, p.IssuedAt)
	switch {
	case err == nil:
		return nil
	case isUniqueViolation(err):
		return payroll.ErrDuplicate
	case isReferenced(err):
		return hiring.ErrNotFound
	default:
		return err
	}
}

func (r *PayslipRepository) ListByHiring(ctx context.Context, hiringID uuid.UUID) ([]payroll.Payslip, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, hiring_id, period, gross, deductions, net, issued_at
		FROM payslips WHERE hiring_id = $1
		ORDER BY period DESC
	`, hiringID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := []payroll.Payslip{}
	for rows.Next() {
		var p payroll.Payslip
		if err := rows.Scan(&p.ID, &p.HiringID, &p.Period, &p.Gross, &p.Deductions, &p.Net, &p.IssuedAt); err != nil {
			return nil, err
		}
		p.IssuedAt = p.IssuedAt.UTC()
		res = append(res, p)
	}
	return res, rows.Err()
}
