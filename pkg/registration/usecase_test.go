package registration_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/recruiting/pkg/account"
	"github.com/artem13815/recruiting/pkg/apperror"
	"github.com/artem13815/recruiting/pkg/candidate"
	"github.com/artem13815/recruiting/pkg/company"
	"github.com/artem13815/recruiting/pkg/registration"
	"github.com/artem13815/recruiting/pkg/repository/memory"
)

type failingCompanies struct {
	company.UseCase
	err error
}

func (f failingCompanies) Provision(context.Context, account.Account, company.Profile) (company.Profile, error) {
	return company.Profile{}, f.err
}

func newService(store *memory.Store, companies company.UseCase) registration.UseCase {
	log, _ := logtest.NewNullLogger()
	if companies == nil {
		companies = company.NewService(store.Companies(), store.Accounts())
	}
	return registration.NewService(
		account.NewService(store.Accounts()),
		companies,
		candidate.NewService(store.Candidates(), store.Accounts()),
		log,
	)
}

func TestRegister_Company(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := newService(store, nil)

	res, err := svc.Register(ctx, registration.Input{
		Account:       account.CreateInput{Email: "HR@Acme.test", Password: "secret1", Role: account.RoleCompany, FirstName: "Ana"},
		CompanyName:   "Acme",
		CompanySector: "retail",
	})
	require.NoError(t, err)
	assert.Equal(t, "hr@acme.test", res.Account.Email)
	require.NotNil(t, res.Company)
	assert.Equal(t, "Acme", res.Company.Name)
	assert.Nil(t, res.Candidate)

	stored, err := store.Companies().GetByAccount(ctx, res.Account.ID)
	require.NoError(t, err)
	assert.Equal(t, res.Company.ID, stored.ID)
}

func TestRegister_Candidate(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := newService(store, nil)

	res, err := svc.Register(ctx, registration.Input{
		Account: account.CreateInput{Email: "a@x.com", Password: "secret1", Role: account.RoleCandidate},
	})
	require.NoError(t, err)
	require.NotNil(t, res.Candidate)
	assert.Equal(t, res.Account.ID, res.Candidate.AccountID)

	_, err = svc.Register(ctx, registration.Input{
		Account: account.CreateInput{Email: "a@x.com", Password: "secret1", Role: account.RoleCandidate},
	})
	require.ErrorIs(t, err, account.ErrAlreadyExists)
}

func TestRegister_RestrictedRoles(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := newService(store, nil)
	in := account.CreateInput{Email: "staff@corp.test", Password: "secret1", Role: account.RoleHiringGroup}

	_, err := svc.Register(ctx, registration.Input{Account: in})
	require.ErrorIs(t, err, registration.ErrRoleNotSelfService)

	hg := account.Actor{ID: uuid.New(), Role: account.RoleHiringGroup}
	_, err = svc.Register(ctx, registration.Input{Actor: &hg, Account: in})
	require.ErrorIs(t, err, registration.ErrRoleNotSelfService)

	admin := account.Actor{ID: uuid.New(), Role: account.RoleAdmin}
	res, err := svc.Register(ctx, registration.Input{Actor: &admin, Account: in})
	require.NoError(t, err)
	assert.Equal(t, account.RoleHiringGroup, res.Account.Role)
	assert.Nil(t, res.Company)
	assert.Nil(t, res.Candidate)
}

func TestRegister_Validation(t *testing.T) {
	svc := newService(memory.New(), nil)

	_, err := svc.Register(context.Background(), registration.Input{
		Account: account.CreateInput{Email: "nope", Password: "secret1", Role: account.RoleCandidate},
	})
	assert.True(t, apperror.Is(err, apperror.CodeValidation))

	_, err = svc.Register(context.Background(), registration.Input{
		Account: account.CreateInput{Email: "a@x.com", Password: "123", Role: account.RoleCandidate},
	})
	assert.True(t, apperror.Is(err, apperror.CodeValidation))
}

func TestRegister_RollsBackWhenProvisioningFails(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	boom := errors.New("profile store unavailable")
	svc := newService(store, failingCompanies{err: boom})

	_, err := svc.Register(ctx, registration.Input{
		Account:     account.CreateInput{Email: "hr@acme.test", Password: "secret1", Role: account.RoleCompany},
		CompanyName: "Acme",
	})
	require.ErrorIs(t, err, boom)

	_, err = store.Accounts().GetByEmail(ctx, "hr@acme.test")
	require.ErrorIs(t, err, account.ErrNotFound)
}
