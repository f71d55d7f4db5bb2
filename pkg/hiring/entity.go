package hiring

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/recruiting/pkg/application"
	"github.com/artem13815/recruiting/pkg/apperror"
)

// Term is the contract duration offered at hiring time.
type Term string

const (
	TermOneMonth   Term = "1 mes"
	TermSixMonths  Term = "6 meses"
	TermOneYear    Term = "1 año"
	TermIndefinite Term = "indefinido"
)

func (t Term) Valid() bool {
	switch t {
	case TermOneMonth, TermSixMonths, TermOneYear, TermIndefinite:
		return true
	}
	return false
}

type Bank struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// Record holds the finalized employment terms of one hired application.
type Record struct {
	ID               uuid.UUID `json:"id"`
	ApplicationID    uuid.UUID `json:"applicationId"`
	Term             Term      `json:"term"`
	MonthlySalary    float64   `json:"monthlySalary"`
	StartDate        time.Time `json:"startDate"`
	BankID           uuid.UUID `json:"bankId"`
	BankName         string    `json:"bankName"`
	AccountNumber    string    `json:"accountNumber"`
	BloodType        string    `json:"bloodType,omitempty"`
	EmergencyContact string    `json:"emergencyContact,omitempty"`
	EmergencyPhone   string    `json:"emergencyPhone,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}

// Terms is the input of Create.
type Terms struct {
	Term             Term
	MonthlySalary    float64
	StartDate        time.Time
	BankName         string
	AccountNumber    string
	BloodType        string
	EmergencyContact string
	EmergencyPhone   string
}

// Status answers "has this account been hired, and on which terms".
type Status struct {
	AccountID   uuid.UUID                `json:"accountId"`
	Hired       bool                     `json:"hired"`
	Application *application.Application `json:"application,omitempty"`
	Record      *Record                  `json:"record,omitempty"`
}

var (
	ErrNotFound     = apperror.NotFound("hiring record not found")
	ErrDuplicate    = apperror.Duplicate("application already has a hiring record")
	ErrNotHired     = apperror.InvalidState("application has not been hired")
	ErrForbidden    = apperror.Forbidden("not allowed to access this hiring record")
	ErrInvalidTerms = apperror.Validation("term must be one of: 1 mes, 6 meses, 1 año, indefinido")
)

type Repository interface {
	// UpsertBank returns the bank with the given name, creating it when missing.
	UpsertBank(ctx context.Context, name string) (Bank, error)
	// Create fails with ErrDuplicate when the application already has a record.
	Create(ctx context.Context, r Record) error
	GetByID(ctx context.Context, id uuid.UUID) (Record, error)
	GetByApplication(ctx context.Context, applicationID uuid.UUID) (Record, error)
}
