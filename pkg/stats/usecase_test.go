package stats_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/recruiting/pkg/account"
	"github.com/artem13815/recruiting/pkg/application"
	"github.com/artem13815/recruiting/pkg/company"
	"github.com/artem13815/recruiting/pkg/hiring"
	"github.com/artem13815/recruiting/pkg/posting"
	"github.com/artem13815/recruiting/pkg/repository/memory"
	"github.com/artem13815/recruiting/pkg/stats"
)

type mapCache struct {
	data    map[string][]byte
	gets    int
	readErr error
}

func newMapCache() *mapCache { return &mapCache{data: map[string][]byte{}} }

func (c *mapCache) GetJSON(_ context.Context, key string, dst any) (bool, error) {
	c.gets++
	if c.readErr != nil {
		return false, c.readErr
	}
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (c *mapCache) SetJSON(_ context.Context, key string, val any, _ time.Duration) error {
	b, err := json.Marshal(val)
	if err != nil {
		return err
	}
	c.data[key] = b
	return nil
}

func (c *mapCache) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

type seeded struct {
	store *memory.Store
	owner account.Account
	comp  company.Profile
	other company.Profile
}

// seed builds a company with two open postings, one closed posting,
// three applications and one hiring record, next to a second company
// with two open postings, two applications and one hiring record.
func seed(t *testing.T) seeded {
	t.Helper()
	store := memory.New()
	owner, comp := seedCompany(t, store, "owner@corp.test", []string{posting.StateOpen, posting.StateOpen, posting.StateClosed}, 3)
	_, other := seedCompany(t, store, "jobs@other.test", []string{posting.StateOpen, posting.StateOpen}, 2)
	return seeded{store: store, owner: owner, comp: comp, other: other}
}

// seedCompany spreads applications over the first two postings and hires the first applicant.
func seedCompany(t *testing.T, store *memory.Store, email string, states []string, applications int) (account.Account, company.Profile) {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC()

	owner := account.Account{ID: uuid.New(), Email: email, Role: account.RoleCompany, CreatedAt: now}
	require.NoError(t, store.Accounts().Create(ctx, owner))
	comp := company.Profile{ID: uuid.New(), AccountID: owner.ID, Name: email, CreatedAt: now}
	require.NoError(t, store.Companies().Create(ctx, comp))

	var postings []posting.Posting
	for i, state := range states {
		p := posting.Posting{
			ID:        uuid.New(),
			CompanyID: comp.ID,
			Title:     "Role",
			Salary:    900,
			Active:    state == posting.StateOpen,
			State:     state,
			CreatedAt: now.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, store.Postings().Create(ctx, p))
		postings = append(postings, p)
	}

	var apps []application.Application
	for i := 0; i < applications; i++ {
		cand := account.Account{ID: uuid.New(), Email: uuid.NewString() + "@x.com", Role: account.RoleCandidate, CreatedAt: now}
		require.NoError(t, store.Accounts().Create(ctx, cand))
		a := application.Application{ID: uuid.New(), PostingID: postings[i%2].ID, ApplicantID: cand.ID, Status: application.StatusPending, AppliedAt: now, UpdatedAt: now}
		require.NoError(t, store.Applications().Create(ctx, a))
		apps = append(apps, a)
	}
	require.NoError(t, store.Applications().MarkHired(ctx, apps[0]))
	bank, err := store.Hirings().UpsertBank(ctx, "Banco")
	require.NoError(t, err)
	require.NoError(t, store.Hirings().Create(ctx, hiring.Record{
		ID: uuid.New(), ApplicationID: apps[0].ID, Term: hiring.TermOneYear, MonthlySalary: 900,
		BankID: bank.ID, BankName: bank.Name, AccountNumber: "1", CreatedAt: now,
	}))
	return owner, comp
}

func TestCompanyStats(t *testing.T) {
	s := seed(t)
	log, _ := logtest.NewNullLogger()
	svc := stats.NewService(s.store.Stats(), s.store.Companies(), nil, 0, log)

	got, err := svc.CompanyStats(context.Background(), account.Actor{ID: s.owner.ID, Role: account.RoleCompany}, s.owner.ID)
	require.NoError(t, err)

	assert.Equal(t, s.comp.ID, got.CompanyID)
	// Hiring closes the first posting but its state label stays "Abierta".
	assert.Equal(t, 2, got.OpenPostings)
	assert.Equal(t, 3, got.Applications)
	assert.Equal(t, 1, got.Hirings)
	assert.Equal(t, 15, got.EstimatedViews)

	other, err := svc.CompanyStats(context.Background(), account.Actor{ID: uuid.New(), Role: account.RoleAdmin}, s.other.AccountID)
	require.NoError(t, err)
	assert.Equal(t, s.other.ID, other.CompanyID)
	assert.Equal(t, 2, other.OpenPostings)
	assert.Equal(t, 2, other.Applications)
	assert.Equal(t, 1, other.Hirings)
}

func TestCompanyStats_JSONNames(t *testing.T) {
	b, err := json.Marshal(stats.CompanyStats{OpenPostings: 1, Applications: 2, Hirings: 3, EstimatedViews: 10})
	require.NoError(t, err)
	assert.JSONEq(t, `{"companyId":"00000000-0000-0000-0000-000000000000","ofertas_activas":1,"total_aplicaciones":2,"contrataciones":3,"vistas_estimadas":10}`, string(b))
}

func TestCompanyStats_Cache(t *testing.T) {
	ctx := context.Background()
	s := seed(t)
	c := newMapCache()
	log, _ := logtest.NewNullLogger()
	svc := stats.NewService(s.store.Stats(), s.store.Companies(), c, time.Minute, log)
	actor := account.Actor{ID: s.owner.ID, Role: account.RoleCompany}

	first, err := svc.CompanyStats(ctx, actor, s.owner.ID)
	require.NoError(t, err)
	require.Len(t, c.data, 1)

	// A new application is not visible until the cached value expires.
	cand := account.Account{ID: uuid.New(), Email: "late@x.com", Role: account.RoleCandidate}
	require.NoError(t, s.store.Accounts().Create(ctx, cand))
	open, err := s.store.Postings().List(ctx, posting.Filter{CompanyID: &s.comp.ID, ActiveOnly: true})
	require.NoError(t, err)
	require.NotEmpty(t, open)
	require.NoError(t, s.store.Applications().Create(ctx, application.Application{
		ID: uuid.New(), PostingID: open[0].ID, ApplicantID: cand.ID, Status: application.StatusPending,
	}))

	second, err := svc.CompanyStats(ctx, actor, s.owner.ID)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 2, c.gets)
}

func TestForget_EvictsOneCompany(t *testing.T) {
	ctx := context.Background()
	s := seed(t)
	c := newMapCache()
	log, _ := logtest.NewNullLogger()
	svc := stats.NewService(s.store.Stats(), s.store.Companies(), c, time.Minute, log)
	admin := account.Actor{ID: uuid.New(), Role: account.RoleAdmin}

	_, err := svc.CompanyStats(ctx, admin, s.owner.ID)
	require.NoError(t, err)
	_, err = svc.CompanyStats(ctx, admin, s.other.AccountID)
	require.NoError(t, err)
	require.Len(t, c.data, 2)

	svc.Forget(ctx, s.comp.ID)

	assert.NotContains(t, c.data, "company:"+s.comp.ID.String())
	assert.Contains(t, c.data, "company:"+s.other.ID.String())
}

func TestForget_CacheDisabled(t *testing.T) {
	s := seed(t)
	c := newMapCache()
	c.data["company:"+s.comp.ID.String()] = []byte("{}")
	log, _ := logtest.NewNullLogger()
	svc := stats.NewService(s.store.Stats(), s.store.Companies(), c, 0, log)

	svc.Forget(context.Background(), s.comp.ID)

	assert.Len(t, c.data, 1)
}

func TestCompanyStats_CacheFailureFallsBack(t *testing.T) {
	s := seed(t)
	c := newMapCache()
	c.readErr = errors.New("connection refused")
	log, hook := logtest.NewNullLogger()
	svc := stats.NewService(s.store.Stats(), s.store.Companies(), c, time.Minute, log)

	got, err := svc.CompanyStats(context.Background(), account.Actor{ID: uuid.New(), Role: account.RoleAdmin}, s.owner.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Applications)

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestCompanyStats_Rejections(t *testing.T) {
	ctx := context.Background()
	s := seed(t)
	log, _ := logtest.NewNullLogger()
	svc := stats.NewService(s.store.Stats(), s.store.Companies(), nil, 0, log)

	_, err := svc.CompanyStats(ctx, account.Actor{ID: uuid.New(), Role: account.RoleCompany}, s.owner.ID)
	require.ErrorIs(t, err, stats.ErrForbidden)

	_, err = svc.CompanyStats(ctx, account.Actor{ID: uuid.New(), Role: account.RoleAdmin}, uuid.New())
	require.ErrorIs(t, err, company.ErrNotFound)
}

func TestOverview(t *testing.T) {
	ctx := context.Background()
	s := seed(t)
	log, _ := logtest.NewNullLogger()
	svc := stats.NewService(s.store.Stats(), s.store.Companies(), nil, 0, log)

	_, err := svc.Overview(ctx, account.Actor{ID: s.owner.ID, Role: account.RoleCompany})
	require.ErrorIs(t, err, stats.ErrForbidden)

	ov, err := svc.Overview(ctx, account.Actor{ID: uuid.New(), Role: account.RoleHiringGroup})
	require.NoError(t, err)
	assert.Equal(t, 2, ov.Hirings)
	assert.Equal(t, 2, ov.ActivePostings)
	assert.Equal(t, 2, ov.AccountsByRole[string(account.RoleCompany)])
	assert.Equal(t, 2, ov.AccountsByRole[string(account.RoleEmployee)])
	assert.Equal(t, 3, ov.AccountsByRole[string(account.RoleCandidate)])
	assert.Equal(t, 3, ov.ApplicationsByStatus[string(application.StatusPending)])
	assert.Equal(t, 2, ov.ApplicationsByStatus[string(application.StatusHired)])
}
