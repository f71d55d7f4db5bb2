package posting

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/recruiting/pkg/account"
	"github.com/artem13815/recruiting/pkg/apperror"
	"github.com/artem13815/recruiting/pkg/company"
)

// UseCase encapsulates the posting catalog with role-scoped visibility:
// only staff and the owning company see inactive postings.
type UseCase interface {
	Create(ctx context.Context, actor account.Actor, in CreateInput) (Posting, error)
	Get(ctx context.Context, actor account.Actor, id uuid.UUID) (Posting, error)
	List(ctx context.Context, actor account.Actor, q Query) ([]Posting, error)
	Update(ctx context.Context, actor account.Actor, id uuid.UUID, patch Patch) (Posting, error)
	Delete(ctx context.Context, actor account.Actor, id uuid.UUID) error
}

type CreateInput struct {
	// OwnerID is the company account; staff must set it, companies may omit it.
	OwnerID     uuid.UUID
	Profession  string
	Title       string
	Description string
	Salary      float64
	State       string
}

type Query struct {
	OwnerID *uuid.UUID
	Limit   int
	Offset  int
}

// StatsInvalidator drops cached per-company aggregates after a write.
type StatsInvalidator interface {
	Forget(ctx context.Context, companyID uuid.UUID)
}

type Option func(*service)

// WithStats makes every posting write evict the owning company's cached stats.
func WithStats(inv StatsInvalidator) Option {
	return func(s *service) { s.stats = inv }
}

type service struct {
	repo      Repository
	companies company.Repository
	stats     StatsInvalidator
}

func NewService(repo Repository, companies company.Repository, opts ...Option) UseCase {
	s := &service{repo: repo, companies: companies}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Create(ctx context.Context, actor account.Actor, in CreateInput) (Posting, error) {
	owner := in.OwnerID
	switch {
	case actor.Role == account.RoleCompany:
		if owner != uuid.Nil && owner != actor.ID {
			return Posting{}, ErrForbidden
		}
		owner = actor.ID
	case actor.IsStaff():
		if owner == uuid.Nil {
			return Posting{}, apperror.Validation("ownerId is required")
		}
	default:
		return Posting{}, ErrForbidden
	}
	comp, err := s.companies.GetByAccount(ctx, owner)
	if err != nil {
		return Posting{}, err
	}

	p := Posting{
		ID:          uuid.New(),
		CompanyID:   comp.ID,
		Profession:  strings.TrimSpace(in.Profession),
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Salary:      in.Salary,
		Active:      true,
		State:       strings.TrimSpace(in.State),
		CreatedAt:   time.Now().UTC(),
	}
	if p.State == "" {
		p.State = StateOpen
	}
	if err := validate(p); err != nil {
		return Posting{}, err
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return Posting{}, err
	}
	s.forget(ctx, p.CompanyID)
	return p, nil
}

func (s *service) Get(ctx context.Context, actor account.Actor, id uuid.UUID) (Posting, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Posting{}, err
	}
	if p.Active {
		return p, nil
	}
	ok, err := s.canManage(ctx, actor, p)
	if err != nil {
		return Posting{}, err
	}
	if !ok {
		return Posting{}, ErrNotFound
	}
	return p, nil
}

func (s *service) List(ctx context.Context, actor account.Actor, q Query) ([]Posting, error) {
	f := Filter{Limit: q.Limit, Offset: q.Offset, ActiveOnly: !actor.IsStaff()}
	if q.OwnerID != nil {
		comp, err := s.companies.GetByAccount(ctx, *q.OwnerID)
		if err != nil {
			if errors.Is(err, company.ErrNotFound) {
				return []Posting{}, nil
			}
			return nil, err
		}
		f.CompanyID = &comp.ID
		if actor.Owns(*q.OwnerID) {
			f.ActiveOnly = false
		}
	}
	return s.repo.List(ctx, f)
}

func (s *service) Update(ctx context.Context, actor account.Actor, id uuid.UUID, patch Patch) (Posting, error) {
	if patch.Empty() {
		return Posting{}, apperror.Validation("no valid fields to update")
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Posting{}, err
	}
	if err := s.requireManage(ctx, actor, p); err != nil {
		return Posting{}, err
	}
	if patch.Profession != nil {
		p.Profession = strings.TrimSpace(*patch.Profession)
	}
	if patch.Title != nil {
		p.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		p.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Salary != nil {
		p.Salary = *patch.Salary
	}
	if patch.State != nil {
		p.State = strings.TrimSpace(*patch.State)
	}
	if patch.Active != nil {
		p.Active = *patch.Active
	}
	if err := validate(p); err != nil {
		return Posting{}, err
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return Posting{}, err
	}
	s.forget(ctx, p.CompanyID)
	return p, nil
}

func (s *service) Delete(ctx context.Context, actor account.Actor, id uuid.UUID) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.requireManage(ctx, actor, p); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.forget(ctx, p.CompanyID)
	return nil
}

func (s *service) forget(ctx context.Context, companyID uuid.UUID) {
	if s.stats != nil {
		s.stats.Forget(ctx, companyID)
	}
}

func (s *service) canManage(ctx context.Context, actor account.Actor, p Posting) (bool, error) {
	if actor.IsStaff() {
		return true, nil
	}
	if actor.Role != account.RoleCompany {
		return false, nil
	}
	comp, err := s.companies.GetByID(ctx, p.CompanyID)
	if err != nil {
		return false, err
	}
	return comp.AccountID == actor.ID, nil
}

func (s *service) requireManage(ctx context.Context, actor account.Actor, p Posting) error {
	ok, err := s.canManage(ctx, actor, p)
	if err != nil {
		return err
	}
	if !ok {
		return ErrForbidden
	}
	return nil
}

func validate(p Posting) error {
	if p.Title == "" || p.Profession == "" {
		return apperror.Validation("title and profession are required")
	}
	if p.Salary < 0 {
		return ErrNegativeSalary
	}
	if p.State == "" {
		return apperror.Validation("state must not be empty")
	}
	return nil
}
