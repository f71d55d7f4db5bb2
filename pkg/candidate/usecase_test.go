package candidate_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/recruiting/pkg/account"
	"github.com/artem13815/recruiting/pkg/apperror"
	"github.com/artem13815/recruiting/pkg/candidate"
	"github.com/artem13815/recruiting/pkg/repository/memory"
)

type env struct {
	svc  candidate.UseCase
	acc  account.Account
	self account.Actor
}

func newEnv(t *testing.T) *env {
	t.Helper()
	store := memory.New()
	acc := account.Account{ID: uuid.New(), Email: "a@x.com", Role: account.RoleCandidate, CreatedAt: time.Now()}
	require.NoError(t, store.Accounts().Create(context.Background(), acc))
	return &env{
		svc:  candidate.NewService(store.Candidates(), store.Accounts()),
		acc:  acc,
		self: account.Actor{ID: acc.ID, Role: account.RoleCandidate},
	}
}

func date(y int, m time.Month) time.Time { return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC) }

func TestSaveProfile_CreatesWhenMissing(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	_, err := e.svc.GetProfile(ctx, e.self, e.acc.ID)
	require.ErrorIs(t, err, candidate.ErrNotFound)

	p, err := e.svc.SaveProfile(ctx, e.self, e.acc.ID, candidate.ProfileInput{Profession: " nurse ", Country: "CL"})
	require.NoError(t, err)
	assert.Equal(t, "nurse", p.Profession)

	got, err := e.svc.GetProfile(ctx, account.Actor{ID: uuid.New(), Role: account.RoleCompany}, e.acc.ID)
	require.NoError(t, err, "companies may read candidate profiles")
	assert.Equal(t, p.ID, got.ID)

	_, err = e.svc.GetProfile(ctx, account.Actor{ID: uuid.New(), Role: account.RoleCandidate}, e.acc.ID)
	require.ErrorIs(t, err, candidate.ErrForbidden)

	_, err = e.svc.Provision(ctx, e.acc)
	require.ErrorIs(t, err, candidate.ErrAlreadyExists)
}

func TestExperiences(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	_, err := e.svc.Provision(ctx, e.acc)
	require.NoError(t, err)

	end := date(2022, time.June)
	older, err := e.svc.AddExperience(ctx, e.self, e.acc.ID, candidate.Experience{Employer: "A", Title: "Junior", StartDate: date(2020, time.January), EndDate: &end})
	require.NoError(t, err)
	newer, err := e.svc.AddExperience(ctx, e.self, e.acc.ID, candidate.Experience{Employer: "B", Title: "Senior", StartDate: date(2022, time.July)})
	require.NoError(t, err)

	list, err := e.svc.ListExperiences(ctx, e.self, e.acc.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)

	before := date(2019, time.January)
	_, err = e.svc.UpdateExperience(ctx, e.self, e.acc.ID, older.ID, candidate.Experience{Employer: "A", Title: "Junior", StartDate: date(2020, time.January), EndDate: &before})
	assert.True(t, apperror.Is(err, apperror.CodeValidation))

	updated, err := e.svc.UpdateExperience(ctx, e.self, e.acc.ID, older.ID, candidate.Experience{Employer: "A", Title: "Mid", StartDate: date(2020, time.January)})
	require.NoError(t, err)
	assert.Equal(t, "Mid", updated.Title)

	require.NoError(t, e.svc.DeleteExperience(ctx, e.self, e.acc.ID, older.ID))
	err = e.svc.DeleteExperience(ctx, e.self, e.acc.ID, older.ID)
	require.ErrorIs(t, err, candidate.ErrExperienceNotFound)

	_, err = e.svc.AddExperience(ctx, account.Actor{ID: uuid.New(), Role: account.RoleCompany}, e.acc.ID, candidate.Experience{Employer: "C", Title: "x", StartDate: date(2023, time.May)})
	require.ErrorIs(t, err, candidate.ErrForbidden)
}

func TestPersonalInfo(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	_, err := e.svc.Provision(ctx, e.acc)
	require.NoError(t, err)

	_, err = e.svc.AddPersonalInfo(ctx, e.self, e.acc.ID, candidate.PersonalInfo{})
	assert.True(t, apperror.Is(err, apperror.CodeValidation))

	info, err := e.svc.AddPersonalInfo(ctx, e.self, e.acc.ID, candidate.PersonalInfo{University: "UCh"})
	require.NoError(t, err)

	staff := account.Actor{ID: uuid.New(), Role: account.RoleAdmin}
	updated, err := e.svc.UpdatePersonalInfo(ctx, staff, e.acc.ID, info.ID, candidate.PersonalInfo{University: "PUC", Country: "CL"})
	require.NoError(t, err)
	assert.Equal(t, "PUC", updated.University)

	list, err := e.svc.ListPersonalInfo(ctx, e.self, e.acc.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "CL", list[0].Country)

	require.NoError(t, e.svc.DeletePersonalInfo(ctx, e.self, e.acc.ID, info.ID))
	_, err = e.svc.UpdatePersonalInfo(ctx, e.self, e.acc.ID, info.ID, candidate.PersonalInfo{Country: "AR"})
	require.ErrorIs(t, err, candidate.ErrInfoNotFound)
}
