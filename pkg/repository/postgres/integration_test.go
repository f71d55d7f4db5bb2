package postgres_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/recruiting/pkg/account"
	"github.com/artem13815/recruiting/pkg/application"
	"github.com/artem13815/recruiting/pkg/company"
	"github.com/artem13815/recruiting/pkg/hiring"
	"github.com/artem13815/recruiting/pkg/payroll"
	"github.com/artem13815/recruiting/pkg/posting"
	pgrepo "github.com/artem13815/recruiting/pkg/repository/postgres"
	"github.com/artem13815/recruiting/pkg/storage/postgres"
)

// openPool connects to TEST_DATABASE_URL and resets the schema data.
func openPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := postgres.Connect(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = postgres.Migrate(ctx, pool)
	require.NoError(t, err)
	_, err = pool.Exec(ctx, `TRUNCATE payslips, hirings, banks, applications, postings, personal_info, work_experiences, candidate_profiles, company_profiles, accounts CASCADE`)
	require.NoError(t, err)
	return pool
}

type fixture struct {
	accounts     *pgrepo.AccountRepository
	companies    *pgrepo.CompanyRepository
	postings     *pgrepo.PostingRepository
	applications *pgrepo.ApplicationRepository
	hirings      *pgrepo.HiringRepository
	payslips     *pgrepo.PayslipRepository
	stats        *pgrepo.StatsRepository

	owner, cand account.Account
	posting     posting.Posting
	app         application.Application
}

func seed(t *testing.T, pool *pgxpool.Pool) *fixture {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)
	f := &fixture{
		accounts:     pgrepo.NewAccountRepository(pool),
		companies:    pgrepo.NewCompanyRepository(pool),
		postings:     pgrepo.NewPostingRepository(pool),
		applications: pgrepo.NewApplicationRepository(pool),
		hirings:      pgrepo.NewHiringRepository(pool),
		payslips:     pgrepo.NewPayslipRepository(pool),
		stats:        pgrepo.NewStatsRepository(pool),
		owner:        account.Account{ID: uuid.New(), Email: "owner@corp.test", PasswordHash: "x", Role: account.RoleCompany, CreatedAt: now},
		cand:         account.Account{ID: uuid.New(), Email: "a@x.com", PasswordHash: "x", Role: account.RoleCandidate, CreatedAt: now},
	}
	require.NoError(t, f.accounts.Create(ctx, f.owner))
	require.NoError(t, f.accounts.Create(ctx, f.cand))
	comp := company.Profile{ID: uuid.New(), AccountID: f.owner.ID, Name: "Corp", CreatedAt: now}
	require.NoError(t, f.companies.Create(ctx, comp))
	f.posting = posting.Posting{ID: uuid.New(), CompanyID: comp.ID, Profession: "dev", Title: "Go", Salary: 100, Active: true, State: posting.StateOpen, CreatedAt: now}
	require.NoError(t, f.postings.Create(ctx, f.posting))
	f.app = application.Application{ID: uuid.New(), PostingID: f.posting.ID, ApplicantID: f.cand.ID, Status: application.StatusPending, AppliedAt: now, UpdatedAt: now}
	require.NoError(t, f.applications.Create(ctx, f.app))
	return f
}

func TestPostgres_Constraints(t *testing.T) {
	ctx := context.Background()
	f := seed(t, openPool(t))

	dup := f.cand
	dup.ID = uuid.New()
	require.ErrorIs(t, f.accounts.Create(ctx, dup), account.ErrAlreadyExists)

	again := f.app
	again.ID = uuid.New()
	require.ErrorIs(t, f.applications.Create(ctx, again), application.ErrDuplicate)

	require.ErrorIs(t, f.applications.UpdateStatus(ctx, f.app.ID, application.StatusReviewed, application.StatusHired), application.ErrFinal)
}

func TestPostgres_HireAndRestrict(t *testing.T) {
	ctx := context.Background()
	f := seed(t, openPool(t))

	require.NoError(t, f.applications.MarkHired(ctx, f.app))
	acc, err := f.accounts.GetByID(ctx, f.cand.ID)
	require.NoError(t, err)
	assert.Equal(t, account.RoleEmployee, acc.Role)
	p, err := f.postings.GetByID(ctx, f.posting.ID)
	require.NoError(t, err)
	assert.False(t, p.Active)

	hired := f.app
	hired.Status = application.StatusHired
	require.ErrorIs(t, f.applications.MarkHired(ctx, hired), application.ErrFinal)

	bank, err := f.hirings.UpsertBank(ctx, "Banco")
	require.NoError(t, err)
	same, err := f.hirings.UpsertBank(ctx, "Banco")
	require.NoError(t, err)
	assert.Equal(t, bank.ID, same.ID)

	rec := hiring.Record{ID: uuid.New(), ApplicationID: f.app.ID, Term: hiring.TermOneYear, MonthlySalary: 100, StartDate: time.Now().UTC(), BankID: bank.ID, AccountNumber: "1", CreatedAt: time.Now().UTC()}
	require.NoError(t, f.hirings.Create(ctx, rec))
	second := rec
	second.ID = uuid.New()
	require.ErrorIs(t, f.hirings.Create(ctx, second), hiring.ErrDuplicate)

	got, err := f.hirings.GetByApplication(ctx, f.app.ID)
	require.NoError(t, err)
	assert.Equal(t, "Banco", got.BankName)

	require.NoError(t, f.payslips.Create(ctx, payroll.Payslip{ID: uuid.New(), HiringID: rec.ID, Period: "2026-01", Gross: 100, Net: 100, IssuedAt: time.Now().UTC()}))
	require.ErrorIs(t, f.payslips.Create(ctx, payroll.Payslip{ID: uuid.New(), HiringID: rec.ID, Period: "2026-01", IssuedAt: time.Now().UTC()}), payroll.ErrDuplicate)

	require.ErrorIs(t, f.accounts.Delete(ctx, f.cand.ID), account.ErrHasHistory)
	require.ErrorIs(t, f.postings.Delete(ctx, f.posting.ID), posting.ErrHasHiringRecord)

	counts, err := f.stats.CompanyCounts(ctx, f.posting.CompanyID, posting.StateOpen)
	require.NoError(t, err)
	assert.Equal(t, 1, counts.OpenPostings)
	assert.Equal(t, 1, counts.Applications)
	assert.Equal(t, 1, counts.Hirings)
}

func TestPostgres_DeleteCascades(t *testing.T) {
	ctx := context.Background()
	f := seed(t, openPool(t))

	require.NoError(t, f.accounts.Delete(ctx, f.owner.ID))
	_, err := f.postings.GetByID(ctx, f.posting.ID)
	require.ErrorIs(t, err, posting.ErrNotFound)
	_, err = f.applications.GetByID(ctx, f.app.ID)
	require.ErrorIs(t, err, application.ErrNotFound)
}

func TestPostgres_HireRequiresCandidate(t *testing.T) {
	ctx := context.Background()
	f := seed(t, openPool(t))
	own := application.Application{ID: uuid.New(), PostingID: f.posting.ID, ApplicantID: f.owner.ID, Status: application.StatusPending, AppliedAt: time.Now().UTC(), UpdatedAt: time.Now().UTC()}
	require.NoError(t, f.applications.Create(ctx, own))

	require.ErrorIs(t, f.applications.MarkHired(ctx, own), application.ErrNotHireable)

	acc, err := f.accounts.GetByID(ctx, f.owner.ID)
	require.NoError(t, err)
	assert.Equal(t, account.RoleCompany, acc.Role)
	got, err := f.applications.GetByID(ctx, own.ID)
	require.NoError(t, err)
	assert.Equal(t, application.StatusPending, got.Status)
	p, err := f.postings.GetByID(ctx, f.posting.ID)
	require.NoError(t, err)
	assert.True(t, p.Active)
}

func TestPostgres_CompanyCountsAreScoped(t *testing.T) {
	ctx := context.Background()
	f := seed(t, openPool(t))
	now := time.Now().UTC().Truncate(time.Microsecond)

	other := account.Account{ID: uuid.New(), Email: "jobs@other.test", PasswordHash: "x", Role: account.RoleCompany, CreatedAt: now}
	require.NoError(t, f.accounts.Create(ctx, other))
	comp := company.Profile{ID: uuid.New(), AccountID: other.ID, Name: "Other", CreatedAt: now}
	require.NoError(t, f.companies.Create(ctx, comp))

	var apps []application.Application
	for i := 0; i < 2; i++ {
		p := posting.Posting{ID: uuid.New(), CompanyID: comp.ID, Profession: "ops", Title: "SRE", Salary: 300, Active: true, State: posting.StateOpen, CreatedAt: now}
		require.NoError(t, f.postings.Create(ctx, p))
		cand := account.Account{ID: uuid.New(), Email: uuid.NewString() + "@x.com", PasswordHash: "x", Role: account.RoleCandidate, CreatedAt: now}
		require.NoError(t, f.accounts.Create(ctx, cand))
		a := application.Application{ID: uuid.New(), PostingID: p.ID, ApplicantID: cand.ID, Status: application.StatusPending, AppliedAt: now, UpdatedAt: now}
		require.NoError(t, f.applications.Create(ctx, a))
		apps = append(apps, a)
	}
	require.NoError(t, f.applications.MarkHired(ctx, apps[0]))
	bank, err := f.hirings.UpsertBank(ctx, "Banco")
	require.NoError(t, err)
	require.NoError(t, f.hirings.Create(ctx, hiring.Record{ID: uuid.New(), ApplicationID: apps[0].ID, Term: hiring.TermOneYear, MonthlySalary: 300, StartDate: now, BankID: bank.ID, AccountNumber: "1", CreatedAt: now}))

	counts, err := f.stats.CompanyCounts(ctx, f.posting.CompanyID, posting.StateOpen)
	require.NoError(t, err)
	assert.Equal(t, 1, counts.OpenPostings)
	assert.Equal(t, 1, counts.Applications)
	assert.Equal(t, 0, counts.Hirings)

	counts, err = f.stats.CompanyCounts(ctx, comp.ID, posting.StateOpen)
	require.NoError(t, err)
	assert.Equal(t, 2, counts.OpenPostings)
	assert.Equal(t, 2, counts.Applications)
	assert.Equal(t, 1, counts.Hirings)
}
