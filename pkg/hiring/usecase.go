package hiring

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/recruiting/pkg/account"
	"github.com/artem13815/recruiting/pkg/application"
	"github.com/artem13815/recruiting/pkg/apperror"
)

const maxAccountNumberLen = 20

type UseCase interface {
	Create(ctx context.Context, actor account.Actor, applicationID uuid.UUID, terms Terms) (Record, error)
	Get(ctx context.Context, actor account.Actor, id uuid.UUID) (Record, error)
	Status(ctx context.Context, actor account.Actor, accountID uuid.UUID) (Status, error)
	// Employee returns the hired applicant behind a record; payroll uses it for access checks.
	Employee(ctx context.Context, id uuid.UUID) (Record, uuid.UUID, error)
}

type service struct {
	repo         Repository
	applications application.Repository
	accounts     account.Repository
}

func NewService(repo Repository, applications application.Repository, accounts account.Repository) UseCase {
	return &service{repo: repo, applications: applications, accounts: accounts}
}

func (s *service) Create(ctx context.Context, actor account.Actor, applicationID uuid.UUID, terms Terms) (Record, error) {
	app, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		return Record{}, err
	}
	if !actor.CanManage(app.ApplicantID) {
		return Record{}, ErrForbidden
	}
	if app.Status != application.StatusHired {
		return Record{}, ErrNotHired
	}
	if err := validateTerms(&terms); err != nil {
		return Record{}, err
	}
	if _, err := s.repo.GetByApplication(ctx, app.ID); err == nil {
		return Record{}, ErrDuplicate
	} else if !errors.Is(err, ErrNotFound) {
		return Record{}, err
	}
	bank, err := s.repo.UpsertBank(ctx, terms.BankName)
	if err != nil {
		return Record{}, err
	}
	r := Record{
		ID:               uuid.New(),
		ApplicationID:    app.ID,
		Term:             terms.Term,
		MonthlySalary:    terms.MonthlySalary,
		StartDate:        terms.StartDate,
		BankID:           bank.ID,
		BankName:         bank.Name,
		AccountNumber:    terms.AccountNumber,
		BloodType:        terms.BloodType,
		EmergencyContact: terms.EmergencyContact,
		EmergencyPhone:   terms.EmergencyPhone,
		CreatedAt:        time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return Record{}, err
	}
	return r, nil
}

func (s *service) Get(ctx context.Context, actor account.Actor, id uuid.UUID) (Record, error) {
	r, employee, err := s.Employee(ctx, id)
	if err != nil {
		return Record{}, err
	}
	if !actor.CanManage(employee) {
		return Record{}, ErrForbidden
	}
	return r, nil
}

func (s *service) Employee(ctx context.Context, id uuid.UUID) (Record, uuid.UUID, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Record{}, uuid.Nil, err
	}
	app, err := s.applications.GetByID(ctx, r.ApplicationID)
	if err != nil {
		return Record{}, uuid.Nil, err
	}
	return r, app.ApplicantID, nil
}

// Status reports the most recent hired application of the account, if any.
func (s *service) Status(ctx context.Context, actor account.Actor, accountID uuid.UUID) (Status, error) {
	if !actor.CanManage(accountID) {
		return Status{}, ErrForbidden
	}
	if _, err := s.accounts.GetByID(ctx, accountID); err != nil {
		return Status{}, err
	}
	apps, err := s.applications.ListByApplicant(ctx, accountID)
	if err != nil {
		return Status{}, err
	}
	st := Status{AccountID: accountID}
	for i := range apps {
		a := apps[i]
		if a.Status != application.StatusHired {
			continue
		}
		if st.Application != nil && !a.UpdatedAt.After(st.Application.UpdatedAt) {
			continue
		}
		st.Application = &a
	}
	if st.Application == nil {
		return st, nil
	}
	st.Hired = true
	rec, err := s.repo.GetByApplication(ctx, st.Application.ID)
	switch {
	case err == nil:
		st.Record = &rec
	case !errors.Is(err, ErrNotFound):
		return Status{}, err
	}
	return st, nil
}

func validateTerms(t *Terms) error {
	t.Term = Term(strings.TrimSpace(string(t.Term)))
	if !t.Term.Valid() {
		return ErrInvalidTerms
	}
	if t.MonthlySalary <= 0 {
		return apperror.Validation("monthlySalary must be positive")
	}
	t.BankName = strings.TrimSpace(t.BankName)
	t.AccountNumber = strings.TrimSpace(t.AccountNumber)
	if t.BankName == "" || t.AccountNumber == "" {
		return apperror.Validation("bank and accountNumber are required")
	}
	if len(t.AccountNumber) > maxAccountNumberLen {
		return apperror.Validation("accountNumber must be at most 20 characters")
	}
	if t.StartDate.IsZero() {
		t.StartDate = time.Now().UTC().Truncate(24 * time.Hour)
	}
	t.BloodType = strings.TrimSpace(t.BloodType)
	t.EmergencyContact = strings.TrimSpace(t.EmergencyContact)
	t.EmergencyPhone = strings.TrimSpace(t.EmergencyPhone)
	return nil
}
