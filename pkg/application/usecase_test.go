package application_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/artem13815/recruiting/pkg/account"
	"github.com/artem13815/recruiting/pkg/application"
	"github.com/artem13815/recruiting/pkg/apperror"
	"github.com/artem13815/recruiting/pkg/company"
	"github.com/artem13815/recruiting/pkg/posting"
	"github.com/artem13815/recruiting/pkg/repository/memory"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fixture struct {
	store     *memory.Store
	svc       application.UseCase
	admin     account.Actor
	owner     account.Actor
	candidate account.Account
	posting   posting.Posting
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.New()
	now := time.Now().UTC()

	companyAcc := account.Account{ID: uuid.New(), Email: "hr@acme.test", Role: account.RoleCompany, CreatedAt: now}
	candidateAcc := account.Account{ID: uuid.New(), Email: "a@x.com", Role: account.RoleCandidate, CreatedAt: now}
	require.NoError(t, store.Accounts().Create(ctx, companyAcc))
	require.NoError(t, store.Accounts().Create(ctx, candidateAcc))

	comp := company.Profile{ID: uuid.New(), AccountID: companyAcc.ID, Name: "Acme", CreatedAt: now}
	require.NoError(t, store.Companies().Create(ctx, comp))

	p := posting.Posting{
		ID:         uuid.New(),
		CompanyID:  comp.ID,
		Profession: "engineer",
		Title:      "Go developer",
		Salary:     2500,
		Active:     true,
		State:      posting.StateOpen,
		CreatedAt:  now,
	}
	require.NoError(t, store.Postings().Create(ctx, p))

	return &fixture{
		store:     store,
		svc:       application.NewService(store.Applications(), store.Postings(), store.Companies(), store.Accounts()),
		admin:     account.Actor{ID: uuid.New(), Role: account.RoleAdmin},
		owner:     account.Actor{ID: companyAcc.ID, Role: account.RoleCompany},
		candidate: candidateAcc,
		posting:   p,
	}
}

func (f *fixture) self() account.Actor {
	return account.Actor{ID: f.candidate.ID, Role: f.candidate.Role}
}

func (f *fixture) apply(t *testing.T) application.Application {
	t.Helper()
	a, err := f.svc.Apply(context.Background(), f.self(), f.posting.ID, f.candidate.Email)
	require.NoError(t, err)
	return a
}

func TestApply_CreatesPending(t *testing.T) {
	f := newFixture(t)

	a := f.apply(t)

	assert.Equal(t, application.StatusPending, a.Status)
	assert.Equal(t, f.posting.ID, a.PostingID)
	assert.Equal(t, f.candidate.ID, a.ApplicantID)
}

func TestApply_TwiceIsDuplicate(t *testing.T) {
	f := newFixture(t)
	f.apply(t)

	_, err := f.svc.Apply(context.Background(), f.self(), f.posting.ID, "A@X.com")

	require.ErrorIs(t, err, application.ErrDuplicate)
	assert.True(t, apperror.Is(err, apperror.CodeDuplicate))
}

func TestApply_Rejections(t *testing.T) {
	ctx := context.Background()

	t.Run("closed posting", func(t *testing.T) {
		f := newFixture(t)
		closed := f.posting
		closed.Active = false
		require.NoError(t, f.store.Postings().Update(ctx, closed))

		_, err := f.svc.Apply(ctx, f.self(), f.posting.ID, f.candidate.Email)
		require.ErrorIs(t, err, application.ErrPostingClosed)
	})

	t.Run("unknown posting", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.Apply(ctx, f.self(), uuid.New(), f.candidate.Email)
		require.ErrorIs(t, err, posting.ErrNotFound)
	})

	t.Run("unknown applicant", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.Apply(ctx, f.admin, f.posting.ID, "nobody@x.com")
		require.ErrorIs(t, err, account.ErrNotFound)
	})

	t.Run("applying on behalf of someone else", func(t *testing.T) {
		f := newFixture(t)
		other := account.Actor{ID: uuid.New(), Role: account.RoleCandidate}
		_, err := f.svc.Apply(ctx, other, f.posting.ID, f.candidate.Email)
		require.ErrorIs(t, err, application.ErrForbidden)
	})

	t.Run("company applying with its own account", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.Apply(ctx, f.owner, f.posting.ID, "hr@acme.test")
		require.ErrorIs(t, err, application.ErrNotCandidate)
		assert.True(t, apperror.Is(err, apperror.CodeForbidden))
	})

	t.Run("staff applying for a company account", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.Apply(ctx, f.admin, f.posting.ID, "hr@acme.test")
		require.ErrorIs(t, err, application.ErrNotCandidate)

		// The token's role is not trusted: the stored account decides.
		_, err = f.svc.Apply(ctx, account.Actor{ID: f.owner.ID, Role: account.RoleCandidate}, f.posting.ID, "hr@acme.test")
		require.ErrorIs(t, err, application.ErrNotCandidate)

		apps, err := f.store.Applications().ListByPosting(ctx, f.posting.ID)
		require.NoError(t, err)
		assert.Empty(t, apps)
		acc, err := f.store.Accounts().GetByID(ctx, f.owner.ID)
		require.NoError(t, err)
		assert.Equal(t, account.RoleCompany, acc.Role)
	})

	t.Run("staff may apply for a candidate", func(t *testing.T) {
		f := newFixture(t)
		a, err := f.svc.Apply(ctx, f.admin, f.posting.ID, f.candidate.Email)
		require.NoError(t, err)
		assert.Equal(t, f.candidate.ID, a.ApplicantID)
	})
}

func TestHire_Scenario(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a := f.apply(t)

	hired, err := f.svc.Hire(ctx, f.owner, a.ID)
	require.NoError(t, err)
	assert.Equal(t, application.StatusHired, hired.Status)

	p, err := f.store.Postings().GetByID(ctx, f.posting.ID)
	require.NoError(t, err)
	assert.False(t, p.Active, "hiring closes the posting")

	acc, err := f.store.Accounts().GetByID(ctx, f.candidate.ID)
	require.NoError(t, err)
	assert.Equal(t, account.RoleEmployee, acc.Role)

	_, err = f.svc.Hire(ctx, f.owner, a.ID)
	require.ErrorIs(t, err, application.ErrFinal)
	assert.True(t, apperror.Is(err, apperror.CodeInvalidState))

	_, err = f.svc.Apply(ctx, f.admin, f.posting.ID, f.candidate.Email)
	require.ErrorIs(t, err, application.ErrDuplicate)
}

func TestTransitions(t *testing.T) {
	ctx := context.Background()

	t.Run("review then reject", func(t *testing.T) {
		f := newFixture(t)
		a := f.apply(t)

		got, err := f.svc.Review(ctx, f.owner, a.ID)
		require.NoError(t, err)
		assert.Equal(t, application.StatusReviewed, got.Status)

		got, err = f.svc.Reject(ctx, f.admin, a.ID)
		require.NoError(t, err)
		assert.Equal(t, application.StatusRejected, got.Status)

		_, err = f.svc.Review(ctx, f.owner, a.ID)
		require.ErrorIs(t, err, application.ErrFinal)
		_, err = f.svc.Hire(ctx, f.owner, a.ID)
		require.ErrorIs(t, err, application.ErrFinal)
	})

	t.Run("reviewing twice is not allowed", func(t *testing.T) {
		f := newFixture(t)
		a := f.apply(t)
		_, err := f.svc.Review(ctx, f.owner, a.ID)
		require.NoError(t, err)
		_, err = f.svc.Review(ctx, f.owner, a.ID)
		require.ErrorIs(t, err, application.ErrFinal)
	})

	t.Run("only staff or the owning company decide", func(t *testing.T) {
		f := newFixture(t)
		a := f.apply(t)

		_, err := f.svc.Hire(ctx, f.self(), a.ID)
		require.ErrorIs(t, err, application.ErrForbidden)

		stranger := account.Actor{ID: uuid.New(), Role: account.RoleCompany}
		_, err = f.svc.Reject(ctx, stranger, a.ID)
		require.ErrorIs(t, err, application.ErrForbidden)
	})

	t.Run("unknown application", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.Hire(ctx, f.admin, uuid.New())
		require.ErrorIs(t, err, application.ErrNotFound)
	})
}

func TestCancel(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		name    string
		prepare func(t *testing.T, f *fixture, id uuid.UUID)
		wantErr error
	}{
		{name: "pending", prepare: func(*testing.T, *fixture, uuid.UUID) {}},
		{name: "reviewed", prepare: func(t *testing.T, f *fixture, id uuid.UUID) {
			_, err := f.svc.Review(ctx, f.owner, id)
			require.NoError(t, err)
		}},
		{name: "hired", wantErr: application.ErrNotCancellable, prepare: func(t *testing.T, f *fixture, id uuid.UUID) {
			_, err := f.svc.Hire(ctx, f.owner, id)
			require.NoError(t, err)
		}},
		{name: "rejected", wantErr: application.ErrNotCancellable, prepare: func(t *testing.T, f *fixture, id uuid.UUID) {
			_, err := f.svc.Reject(ctx, f.owner, id)
			require.NoError(t, err)
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			a := f.apply(t)
			tc.prepare(t, f, a.ID)

			err := f.svc.Cancel(ctx, f.self(), a.ID)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				assert.True(t, apperror.Is(err, apperror.CodeInvalidState))
				_, getErr := f.store.Applications().GetByID(ctx, a.ID)
				require.NoError(t, getErr, "record must survive a refused cancel")
				return
			}
			require.NoError(t, err)
			_, getErr := f.store.Applications().GetByID(ctx, a.ID)
			require.ErrorIs(t, getErr, application.ErrNotFound)
		})
	}
}

func TestListing(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a := f.apply(t)

	byPosting, err := f.svc.ListByPosting(ctx, f.owner, f.posting.ID)
	require.NoError(t, err)
	require.Len(t, byPosting, 1)
	assert.Equal(t, a.ID, byPosting[0].ID)

	_, err = f.svc.ListByPosting(ctx, f.self(), f.posting.ID)
	require.ErrorIs(t, err, application.ErrForbidden)

	mine, err := f.svc.ListByApplicant(ctx, f.self(), f.candidate.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	got, err := f.svc.Get(ctx, f.self(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)
}

type forgetRecorder struct{ companies []uuid.UUID }

func (r *forgetRecorder) Forget(_ context.Context, companyID uuid.UUID) {
	r.companies = append(r.companies, companyID)
}

func TestWrites_EvictCompanyStats(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	rec := &forgetRecorder{}
	svc := application.NewService(f.store.Applications(), f.store.Postings(), f.store.Companies(), f.store.Accounts(), application.WithStats(rec))

	a, err := svc.Apply(ctx, f.self(), f.posting.ID, f.candidate.Email)
	require.NoError(t, err)
	_, err = svc.Review(ctx, f.owner, a.ID)
	require.NoError(t, err)
	require.NoError(t, svc.Cancel(ctx, f.self(), a.ID))

	b, err := svc.Apply(ctx, f.self(), f.posting.ID, f.candidate.Email)
	require.NoError(t, err)
	_, err = svc.Hire(ctx, f.owner, b.ID)
	require.NoError(t, err)

	// apply, cancel, apply, hire; a review does not change the counts.
	assert.Equal(t, []uuid.UUID{f.posting.CompanyID, f.posting.CompanyID, f.posting.CompanyID, f.posting.CompanyID}, rec.companies)

	_, err = svc.Apply(ctx, f.self(), f.posting.ID, f.candidate.Email)
	require.ErrorIs(t, err, application.ErrDuplicate)
	assert.Len(t, rec.companies, 4)
}
