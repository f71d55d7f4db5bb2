package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/recruiting/pkg/account"
	"github.com/artem13815/recruiting/pkg/apperror"
	"github.com/artem13815/recruiting/pkg/company"
	"github.com/artem13815/recruiting/pkg/posting"
)

// UseCase is the application workflow: pending -> reviewed -> hired | rejected.
type UseCase interface {
	Apply(ctx context.Context, actor account.Actor, postingID uuid.UUID, applicantEmail string) (Application, error)
	Get(ctx context.Context, actor account.Actor, id uuid.UUID) (Application, error)
	ListByPosting(ctx context.Context, actor account.Actor, postingID uuid.UUID) ([]Application, error)
	ListByApplicant(ctx context.Context, actor account.Actor, applicantID uuid.UUID) ([]Application, error)
	Review(ctx context.Context, actor account.Actor, id uuid.UUID) (Application, error)
	Hire(ctx context.Context, actor account.Actor, id uuid.UUID) (Application, error)
	Reject(ctx context.Context, actor account.Actor, id uuid.UUID) (Application, error)
	Cancel(ctx context.Context, actor account.Actor, id uuid.UUID) error
}

type Option func(*service)

// WithStats evicts the company's cached stats after apply, hire and cancel.
func WithStats(inv posting.StatsInvalidator) Option {
	return func(s *service) { s.stats = inv }
}

type service struct {
	repo      Repository
	postings  posting.Repository
	companies company.Repository
	accounts  account.Repository
	stats     posting.StatsInvalidator
	now       func() time.Time
}

func NewService(repo Repository, postings posting.Repository, companies company.Repository, accounts account.Repository, opts ...Option) UseCase {
	s := &service{
		repo:      repo,
		postings:  postings,
		companies: companies,
		accounts:  accounts,
		now:       func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Apply(ctx context.Context, actor account.Actor, postingID uuid.UUID, applicantEmail string) (Application, error) {
	email := account.NormalizeEmail(applicantEmail)
	if email == "" {
		return Application{}, apperror.Validation("applicantEmail is required")
	}
	p, err := s.postings.GetByID(ctx, postingID)
	if err != nil {
		return Application{}, err
	}
	applicant, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		return Application{}, err
	}
	if !actor.IsStaff() && !actor.Owns(applicant.ID) {
		return Application{}, ErrForbidden
	}
	// Duplicates are reported even when the posting has since been closed.
	if _, err := s.repo.GetByPostingAndApplicant(ctx, p.ID, applicant.ID); err == nil {
		return Application{}, ErrDuplicate
	} else if !errors.Is(err, ErrNotFound) {
		return Application{}, err
	}
	// The stored role decides, not the caller's token.
	if applicant.Role != account.RoleCandidate {
		return Application{}, ErrNotCandidate
	}
	if !p.Active {
		return Application{}, ErrPostingClosed
	}
	now := s.now()
	a := Application{
		ID:          uuid.New(),
		PostingID:   p.ID,
		ApplicantID: applicant.ID,
		Status:      StatusPending,
		AppliedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return Application{}, err
	}
	s.forget(ctx, p.ID)
	return a, nil
}

func (s *service) Get(ctx context.Context, actor account.Actor, id uuid.UUID) (Application, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Application{}, err
	}
	if actor.Owns(a.ApplicantID) {
		return a, nil
	}
	if err := s.requireDecider(ctx, actor, a.PostingID); err != nil {
		return Application{}, err
	}
	return a, nil
}

func (s *service) ListByPosting(ctx context.Context, actor account.Actor, postingID uuid.UUID) ([]Application, error) {
	if _, err := s.postings.GetByID(ctx, postingID); err != nil {
		return nil, err
	}
	if err := s.requireDecider(ctx, actor, postingID); err != nil {
		return nil, err
	}
	return s.repo.ListByPosting(ctx, postingID)
}

func (s *service) ListByApplicant(ctx context.Context, actor account.Actor, applicantID uuid.UUID) ([]Application, error) {
	if !actor.CanManage(applicantID) {
		return nil, ErrForbidden
	}
	if _, err := s.accounts.GetByID(ctx, applicantID); err != nil {
		return nil, err
	}
	return s.repo.ListByApplicant(ctx, applicantID)
}

func (s *service) Review(ctx context.Context, actor account.Actor, id uuid.UUID) (Application, error) {
	return s.transition(ctx, actor, id, StatusReviewed)
}

func (s *service) Reject(ctx context.Context, actor account.Actor, id uuid.UUID) (Application, error) {
	return s.transition(ctx, actor, id, StatusRejected)
}

// Hire finalizes the application. The status change, the applicant's new role
// and the closed posting are committed together by the repository.
func (s *service) Hire(ctx context.Context, actor account.Actor, id uuid.UUID) (Application, error) {
	a, err := s.loadForDecision(ctx, actor, id, StatusHired)
	if err != nil {
		return Application{}, err
	}
	if err := s.repo.MarkHired(ctx, a); err != nil {
		return Application{}, err
	}
	s.forget(ctx, a.PostingID)
	a.Status = StatusHired
	a.UpdatedAt = s.now()
	return a, nil
}

func (s *service) Cancel(ctx context.Context, actor account.Actor, id uuid.UUID) error {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !actor.CanManage(a.ApplicantID) {
		return ErrForbidden
	}
	if a.Status.Terminal() {
		return ErrNotCancellable
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.forget(ctx, a.PostingID)
	return nil
}

// forget resolves the posting's company and evicts its cached stats.
func (s *service) forget(ctx context.Context, postingID uuid.UUID) {
	if s.stats == nil {
		return
	}
	p, err := s.postings.GetByID(ctx, postingID)
	if err != nil {
		return
	}
	s.stats.Forget(ctx, p.CompanyID)
}

func (s *service) transition(ctx context.Context, actor account.Actor, id uuid.UUID, next Status) (Application, error) {
	a, err := s.loadForDecision(ctx, actor, id, next)
	if err != nil {
		return Application{}, err
	}
	if err := s.repo.UpdateStatus(ctx, a.ID, a.Status, next); err != nil {
		return Application{}, err
	}
	a.Status = next
	a.UpdatedAt = s.now()
	return a, nil
}

func (s *service) loadForDecision(ctx context.Context, actor account.Actor, id uuid.UUID, next Status) (Application, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Application{}, err
	}
	if err := s.requireDecider(ctx, actor, a.PostingID); err != nil {
		return Application{}, err
	}
	if !a.Status.CanTransition(next) {
		return Application{}, ErrFinal
	}
	return a, nil
}

// requireDecider allows staff and the company that owns the posting.
func (s *service) requireDecider(ctx context.Context, actor account.Actor, postingID uuid.UUID) error {
	if actor.IsStaff() {
		return nil
	}
	if actor.Role != account.RoleCompany {
		return ErrForbidden
	}
	p, err := s.postings.GetByID(ctx, postingID)
	if err != nil {
		return err
	}
	comp, err := s.companies.GetByID(ctx, p.CompanyID)
	if err != nil {
		return err
	}
	if comp.AccountID != actor.ID {
		return ErrForbidden
	}
	return nil
}
