package payroll

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/recruiting/pkg/apperror"
)

// PeriodLayout is the month a payslip covers, e.g. "2026-09".
const PeriodLayout = "2006-01"

// Payslip is one monthly pay receipt of a hired employee.
type Payslip struct {
	ID         uuid.UUID `json:"id"`
	HiringID   uuid.UUID `json:"hiringId"`
	Period     string    `json:"period"`
	Gross      float64   `json:"gross"`
	Deductions float64   `json:"deductions"`
	Net        float64   `json:"net"`
	IssuedAt   time.Time `json:"issuedAt"`
}

var (
	ErrDuplicate = apperror.Duplicate("payslip already issued for this period")
	ErrForbidden = apperror.Forbidden("not allowed to access these payslips")
)

type Repository interface {
	// Create fails with ErrDuplicate for a second payslip in the same period.
	Create(ctx context.Context, p Payslip) error
	ListByHiring(ctx context.Context, hiringID uuid.UUID) ([]Payslip, error)
}
