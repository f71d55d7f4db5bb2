package posting_test

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
	"github.com/artem13815/recruiting/pkg/posting"
	"github.com/artem13815/recruiting/pkg/repository/memory"
)

type env struct {
	store *memory.Store
	svc   posting.UseCase
	owner account.Actor
	staff account.Actor
}

func newEnv(t *testing.T) *env {
	t.Helper()
	ctx := context.Background()
	store := memory.New()
	acc := account.Account{ID: uuid.New(), Email: "hr@acme.test", Role: account.RoleCompany, CreatedAt: time.Now()}
	require.NoError(t, store.Accounts().Create(ctx, acc))
	require.NoError(t, store.Companies().Create(ctx, company.Profile{ID: uuid.New(), AccountID: acc.ID, Name: "Acme"}))
	return &env{
		store: store,
		svc:   posting.NewService(store.Postings(), store.Companies()),
		owner: account.Actor{ID: acc.ID, Role: account.RoleCompany},
		staff: account.Actor{ID: uuid.New(), Role: account.RoleAdmin},
	}
}

func (e *env) create(t *testing.T, title string) posting.Posting {
	t.Helper()
	p, err := e.svc.Create(context.Background(), e.owner, posting.CreateInput{Profession: "dev", Title: title, Salary: 1200})
	require.NoError(t, err)
	return p
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	p := e.create(t, "  Backend  ")
	assert.Equal(t, "Backend", p.Title)
	assert.True(t, p.Active)
	assert.Equal(t, posting.StateOpen, p.State)

	_, err := e.svc.Create(ctx, e.staff, posting.CreateInput{Profession: "dev", Title: "x"})
	assert.True(t, apperror.Is(err, apperror.CodeValidation), "staff must name the owner")

	byStaff, err := e.svc.Create(ctx, e.staff, posting.CreateInput{OwnerID: e.owner.ID, Profession: "dev", Title: "x", State: "Pausada"})
	require.NoError(t, err)
	assert.Equal(t, "Pausada", byStaff.State)
}

func TestCreate_Rejections(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	_, err := e.svc.Create(ctx, e.owner, posting.CreateInput{Profession: "dev", Title: "x", Salary: -1})
	require.ErrorIs(t, err, posting.ErrNegativeSalary)

	_, err = e.svc.Create(ctx, e.owner, posting.CreateInput{Profession: "dev"})
	assert.True(t, apperror.Is(err, apperror.CodeValidation))

	_, err = e.svc.Create(ctx, account.Actor{ID: uuid.New(), Role: account.RoleCandidate}, posting.CreateInput{Profession: "dev", Title: "x"})
	require.ErrorIs(t, err, posting.ErrForbidden)

	_, err = e.svc.Create(ctx, e.owner, posting.CreateInput{OwnerID: uuid.New(), Profession: "dev", Title: "x"})
	require.ErrorIs(t, err, posting.ErrForbidden)

	noProfile := account.Actor{ID: uuid.New(), Role: account.RoleCompany}
	_, err = e.svc.Create(ctx, noProfile, posting.CreateInput{Profession: "dev", Title: "x"})
	require.ErrorIs(t, err, company.ErrNotFound)
}

func TestVisibilityOfInactivePostings(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	open := e.create(t, "open")
	closed := e.create(t, "closed")
	inactive := false
	_, err := e.svc.Update(ctx, e.owner, closed.ID, posting.Patch{Active: &inactive})
	require.NoError(t, err)

	anonymous := account.Actor{}
	_, err = e.svc.Get(ctx, anonymous, closed.ID)
	require.ErrorIs(t, err, posting.ErrNotFound)
	_, err = e.svc.Get(ctx, anonymous, open.ID)
	require.NoError(t, err)
	_, err = e.svc.Get(ctx, e.owner, closed.ID)
	require.NoError(t, err)

	public, err := e.svc.List(ctx, anonymous, posting.Query{})
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, open.ID, public[0].ID)

	mine, err := e.svc.List(ctx, e.owner, posting.Query{OwnerID: &e.owner.ID})
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	all, err := e.svc.List(ctx, e.staff, posting.Query{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	unknown := uuid.New()
	none, err := e.svc.List(ctx, anonymous, posting.Query{OwnerID: &unknown})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	p := e.create(t, "dev")

	salary := 3000.0
	state := posting.StateClosed
	got, err := e.svc.Update(ctx, e.staff, p.ID, posting.Patch{Salary: &salary, State: &state})
	require.NoError(t, err)
	assert.Equal(t, salary, got.Salary)
	assert.Equal(t, posting.StateClosed, got.State)
	assert.Equal(t, p.CompanyID, got.CompanyID)

	_, err = e.svc.Update(ctx, e.owner, p.ID, posting.Patch{})
	assert.True(t, apperror.Is(err, apperror.CodeValidation))

	negative := -5.0
	_, err = e.svc.Update(ctx, e.owner, p.ID, posting.Patch{Salary: &negative})
	require.ErrorIs(t, err, posting.ErrNegativeSalary)

	other := account.Actor{ID: uuid.New(), Role: account.RoleCompany}
	_, err = e.svc.Update(ctx, other, p.ID, posting.Patch{Salary: &salary})
	require.ErrorIs(t, err, posting.ErrForbidden)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	p := e.create(t, "dev")

	err := e.svc.Delete(ctx, account.Actor{ID: uuid.New(), Role: account.RoleCandidate}, p.ID)
	require.ErrorIs(t, err, posting.ErrForbidden)

	require.NoError(t, e.svc.Delete(ctx, e.owner, p.ID))
	_, err = e.svc.Get(ctx, e.owner, p.ID)
	require.ErrorIs(t, err, posting.ErrNotFound)
}

type forgetRecorder struct{ companies []uuid.UUID }

func (r *forgetRecorder) Forget(_ context.Context, companyID uuid.UUID) {
	r.companies = append(r.companies, companyID)
}

func TestWrites_EvictCompanyStats(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	rec := &forgetRecorder{}
	e.svc = posting.NewService(e.store.Postings(), e.store.Companies(), posting.WithStats(rec))

	p := e.create(t, "Go developer")
	state := posting.StateClosed
	_, err := e.svc.Update(ctx, e.owner, p.ID, posting.Patch{State: &state})
	require.NoError(t, err)
	_, err = e.svc.Update(ctx, e.owner, p.ID, posting.Patch{})
	require.Error(t, err)
	require.NoError(t, e.svc.Delete(ctx, e.owner, p.ID))

	assert.Equal(t, []uuid.UUID{p.CompanyID, p.CompanyID, p.CompanyID}, rec.companies)
}
