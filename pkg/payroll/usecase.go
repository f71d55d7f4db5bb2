package payroll

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/recruiting/pkg/account"
	"github.com/artem13815/recruiting/pkg/apperror"
	"github.com/artem13815/recruiting/pkg/hiring"
)

type UseCase interface {
	Issue(ctx context.Context, actor account.Actor, hiringID uuid.UUID, period string, deductions float64) (Payslip, error)
	List(ctx context.Context, actor account.Actor, hiringID uuid.UUID) ([]Payslip, error)
}

type service struct {
	repo    Repository
	hirings hiring.UseCase
}

func NewService(repo Repository, hirings hiring.UseCase) UseCase {
	return &service{repo: repo, hirings: hirings}
}

// Issue creates the payslip of a month; gross is the contract's monthly salary.
func (s *service) Issue(ctx context.Context, actor account.Actor, hiringID uuid.UUID, period string, deductions float64) (Payslip, error) {
	if !actor.IsStaff() {
		return Payslip{}, ErrForbidden
	}
	period = strings.TrimSpace(period)
	if _, err := time.Parse(PeriodLayout, period); err != nil {
		return Payslip{}, apperror.Validation("period must use the YYYY-MM format")
	}
	rec, _, err := s.hirings.Employee(ctx, hiringID)
	if err != nil {
		return Payslip{}, err
	}
	if deductions < 0 || deductions > rec.MonthlySalary {
		return Payslip{}, apperror.Validation("deductions must be between 0 and the monthly salary")
	}
	p := Payslip{
		ID:         uuid.New(),
		HiringID:   rec.ID,
		Period:     period,
		Gross:      rec.MonthlySalary,
		Deductions: deductions,
		Net:        math.Round((rec.MonthlySalary-deductions)*100) / 100,
		IssuedAt:   time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return Payslip{}, err
	}
	return p, nil
}

func (s *service) List(ctx context.Context, actor account.Actor, hiringID uuid.UUID) ([]Payslip, error) {
	_, employee, err := s.hirings.Employee(ctx, hiringID)
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(employee) {
		return nil, ErrForbidden
	}
	return s.repo.ListByHiring(ctx, hiringID)
}
