package company_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/recruiting/pkg/account"
	"github.com/artem13815/recruiting/pkg/apperror"
	"github.com/artem13815/recruiting/pkg/company"
	"github.com/artem13815/recruiting/pkg/repository/memory"
)

func seedAccount(t *testing.T, store *memory.Store, role account.Role) account.Account {
	t.Helper()
	acc := account.Account{ID: uuid.New(), Email: uuid.NewString() + "@corp.test", Role: role, FirstName: "Luis", LastName: "Mora", Phone: "555", CreatedAt: time.Now()}
	require.NoError(t, store.Accounts().Create(context.Background(), acc))
	return acc
}

func TestProvision_FallsBackToContactName(t *testing.T) {
	store := memory.New()
	svc := company.NewService(store.Companies(), store.Accounts())
	acc := seedAccount(t, store, account.RoleCompany)

	p, err := svc.Provision(context.Background(), acc, company.Profile{})
	require.NoError(t, err)
	assert.Equal(t, "Luis Mora", p.Name)
	assert.Equal(t, "Luis Mora", p.ContactPerson)
	assert.Equal(t, "555", p.ContactPhone)

	cand := seedAccount(t, store, account.RoleCandidate)
	_, err = svc.Provision(context.Background(), cand, company.Profile{Name: "x"})
	assert.True(t, apperror.Is(err, apperror.CodeValidation))
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := company.NewService(store.Companies(), store.Accounts())
	acc := seedAccount(t, store, account.RoleCompany)
	staff := account.Actor{ID: uuid.New(), Role: account.RoleHiringGroup}

	_, err := svc.Create(ctx, account.Actor{ID: acc.ID, Role: account.RoleCompany}, company.Profile{AccountID: acc.ID, Name: "Acme"})
	require.ErrorIs(t, err, company.ErrForbidden)

	p, err := svc.Create(ctx, staff, company.Profile{AccountID: acc.ID, Name: "Acme"})
	require.NoError(t, err)
	assert.Equal(t, acc.ID, p.AccountID)

	_, err = svc.Create(ctx, staff, company.Profile{AccountID: acc.ID, Name: "Acme 2"})
	require.ErrorIs(t, err, company.ErrAlreadyExists)

	_, err = svc.Create(ctx, staff, company.Profile{AccountID: uuid.New(), Name: "Ghost"})
	require.ErrorIs(t, err, account.ErrNotFound)

	list, err := svc.List(ctx, 0, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestUpdateByAccount(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := company.NewService(store.Companies(), store.Accounts())
	acc := seedAccount(t, store, account.RoleCompany)
	_, err := svc.Provision(ctx, acc, company.Profile{Name: "Acme"})
	require.NoError(t, err)
	self := account.Actor{ID: acc.ID, Role: account.RoleCompany}

	sector := " logistics "
	got, err := svc.UpdateByAccount(ctx, self, acc.ID, company.Patch{Sector: &sector})
	require.NoError(t, err)
	assert.Equal(t, "logistics", got.Sector)
	assert.Equal(t, "Acme", got.Name)

	_, err = svc.UpdateByAccount(ctx, self, acc.ID, company.Patch{})
	require.ErrorIs(t, err, company.ErrNoFields)

	blank := "  "
	_, err = svc.UpdateByAccount(ctx, self, acc.ID, company.Patch{Name: &blank})
	assert.True(t, apperror.Is(err, apperror.CodeValidation))

	_, err = svc.UpdateByAccount(ctx, account.Actor{ID: uuid.New(), Role: account.RoleCompany}, acc.ID, company.Patch{Sector: &sector})
	require.ErrorIs(t, err, company.ErrForbidden)
}
