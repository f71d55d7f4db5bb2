package candidate

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/recruiting/pkg/account"
	"github.com/artem13815/recruiting/pkg/apperror"
)

// UseCase covers the candidate profile and its nested entries.
// Every operation is addressed by the owning account id.
type UseCase interface {
	Provision(ctx context.Context, acc account.Account) (Profile, error)
	GetProfile(ctx context.Context, actor account.Actor, accountID uuid.UUID) (Profile, error)
	SaveProfile(ctx context.Context, actor account.Actor, accountID uuid.UUID, in ProfileInput) (Profile, error)

	ListExperiences(ctx context.Context, actor account.Actor, accountID uuid.UUID) ([]Experience, error)
	AddExperience(ctx context.Context, actor account.Actor, accountID uuid.UUID, e Experience) (Experience, error)
	UpdateExperience(ctx context.Context, actor account.Actor, accountID, id uuid.UUID, e Experience) (Experience, error)
	DeleteExperience(ctx context.Context, actor account.Actor, accountID, id uuid.UUID) error

	ListPersonalInfo(ctx context.Context, actor account.Actor, accountID uuid.UUID) ([]PersonalInfo, error)
	AddPersonalInfo(ctx context.Context, actor account.Actor, accountID uuid.UUID, p PersonalInfo) (PersonalInfo, error)
	UpdatePersonalInfo(ctx context.Context, actor account.Actor, accountID, id uuid.UUID, p PersonalInfo) (PersonalInfo, error)
	DeletePersonalInfo(ctx context.Context, actor account.Actor, accountID, id uuid.UUID) error
}

type ProfileInput struct {
	Profession string
	University string
	Country    string
}

type service struct {
	repo     Repository
	accounts account.Repository
}

func NewService(repo Repository, accounts account.Repository) UseCase {
	return &service{repo: repo, accounts: accounts}
}

func canRead(actor account.Actor, accountID uuid.UUID) bool {
	return actor.CanManage(accountID) || actor.Role == account.RoleCompany
}

func (s *service) Provision(ctx context.Context, acc account.Account) (Profile, error) {
	if _, err := s.repo.GetProfileByAccount(ctx, acc.ID); err == nil {
		return Profile{}, ErrAlreadyExists
	} else if !errors.Is(err, ErrNotFound) {
		return Profile{}, err
	}
	p := Profile{
		ID:        uuid.New(),
		AccountID: acc.ID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.CreateProfile(ctx, p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

func (s *service) GetProfile(ctx context.Context, actor account.Actor, accountID uuid.UUID) (Profile, error) {
	if !canRead(actor, accountID) {
		return Profile{}, ErrForbidden
	}
	return s.repo.GetProfileByAccount(ctx, accountID)
}

// SaveProfile updates the profile, creating it first when the account has none.
func (s *service) SaveProfile(ctx context.Context, actor account.Actor, accountID uuid.UUID, in ProfileInput) (Profile, error) {
	if !actor.CanManage(accountID) {
		return Profile{}, ErrForbidden
	}
	p, err := s.repo.GetProfileByAccount(ctx, accountID)
	switch {
	case errors.Is(err, ErrNotFound):
		acc, err := s.accounts.GetByID(ctx, accountID)
		if err != nil {
			return Profile{}, err
		}
		if p, err = s.Provision(ctx, acc); err != nil {
			return Profile{}, err
		}
	case err != nil:
		return Profile{}, err
	}
	p.Profession = strings.TrimSpace(in.Profession)
	p.University = strings.TrimSpace(in.University)
	p.Country = strings.TrimSpace(in.Country)
	if err := s.repo.UpdateProfile(ctx, p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// profileFor resolves the profile of accountID after the write-access check.
func (s *service) profileFor(ctx context.Context, actor account.Actor, accountID uuid.UUID) (Profile, error) {
	if !actor.CanManage(accountID) {
		return Profile{}, ErrForbidden
	}
	return s.repo.GetProfileByAccount(ctx, accountID)
}

func (s *service) ListExperiences(ctx context.Context, actor account.Actor, accountID uuid.UUID) ([]Experience, error) {
	if !canRead(actor, accountID) {
		return nil, ErrForbidden
	}
	p, err := s.repo.GetProfileByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListExperiences(ctx, p.ID)
}

func (s *service) AddExperience(ctx context.Context, actor account.Actor, accountID uuid.UUID, e Experience) (Experience, error) {
	p, err := s.profileFor(ctx, actor, accountID)
	if err != nil {
		return Experience{}, err
	}
	if err := validateExperience(&e); err != nil {
		return Experience{}, err
	}
	e.ID = uuid.New()
	e.ProfileID = p.ID
	if err := s.repo.CreateExperience(ctx, e); err != nil {
		return Experience{}, err
	}
	return e, nil
}

func (s *service) UpdateExperience(ctx context.Context, actor account.Actor, accountID, id uuid.UUID, e Experience) (Experience, error) {
	p, err := s.profileFor(ctx, actor, accountID)
	if err != nil {
		return Experience{}, err
	}
	cur, err := s.repo.GetExperience(ctx, id)
	if err != nil {
		return Experience{}, err
	}
	if cur.ProfileID != p.ID {
		return Experience{}, ErrExperienceNotFound
	}
	if err := validateExperience(&e); err != nil {
		return Experience{}, err
	}
	e.ID = cur.ID
	e.ProfileID = p.ID
	if err := s.repo.UpdateExperience(ctx, e); err != nil {
		return Experience{}, err
	}
	return e, nil
}

func (s *service) DeleteExperience(ctx context.Context, actor account.Actor, accountID, id uuid.UUID) error {
	p, err := s.profileFor(ctx, actor, accountID)
	if err != nil {
		return err
	}
	cur, err := s.repo.GetExperience(ctx, id)
	if err != nil {
		return err
	}
	if cur.ProfileID != p.ID {
		return ErrExperienceNotFound
	}
	return s.repo.DeleteExperience(ctx, id)
}

func (s *service) ListPersonalInfo(ctx context.Context, actor account.Actor, accountID uuid.UUID) ([]PersonalInfo, error) {
	if !canRead(actor, accountID) {
		return nil, ErrForbidden
	}
	p, err := s.repo.GetProfileByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListPersonalInfo(ctx, p.ID)
}

func (s *service) AddPersonalInfo(ctx context.Context, actor account.Actor, accountID uuid.UUID, in PersonalInfo) (PersonalInfo, error) {
	p, err := s.profileFor(ctx, actor, accountID)
	if err != nil {
		return PersonalInfo{}, err
	}
	if err := validatePersonalInfo(&in); err != nil {
		return PersonalInfo{}, err
	}
	in.ID = uuid.New()
	in.ProfileID = p.ID
	if err := s.repo.CreatePersonalInfo(ctx, in); err != nil {
		return PersonalInfo{}, err
	}
	return in, nil
}

func (s *service) UpdatePersonalInfo(ctx context.Context, actor account.Actor, accountID, id uuid.UUID, in PersonalInfo) (PersonalInfo, error) {
	p, err := s.profileFor(ctx, actor, accountID)
	if err != nil {
		return PersonalInfo{}, err
	}
	cur, err := s.repo.GetPersonalInfo(ctx, id)
	if err != nil {
		return PersonalInfo{}, err
	}
	if cur.ProfileID != p.ID {
		return PersonalInfo{}, ErrInfoNotFound
	}
	if err := validatePersonalInfo(&in); err != nil {
		return PersonalInfo{}, err
	}
	in.ID = cur.ID
	in.ProfileID = p.ID
	if err := s.repo.UpdatePersonalInfo(ctx, in); err != nil {
		return PersonalInfo{}, err
	}
	return in, nil
}

func (s *service) DeletePersonalInfo(ctx context.Context, actor account.Actor, accountID, id uuid.UUID) error {
	p, err := s.profileFor(ctx, actor, accountID)
	if err != nil {
		return err
	}
	cur, err := s.repo.GetPersonalInfo(ctx, id)
	if err != nil {
		return err
	}
	if cur.ProfileID != p.ID {
		return ErrInfoNotFound
	}
	return s.repo.DeletePersonalInfo(ctx, id)
}

func validateExperience(e *Experience) error {
	e.Employer = strings.TrimSpace(e.Employer)
	e.Title = strings.TrimSpace(e.Title)
	if e.Employer == "" || e.Title == "" {
		return apperror.Validation("employer and title are required")
	}
	if e.StartDate.IsZero() {
		return apperror.Validation("startDate is required")
	}
	if e.EndDate != nil && e.EndDate.Before(e.StartDate) {
		return apperror.Validation("endDate must not be before startDate")
	}
	return nil
}

func validatePersonalInfo(p *PersonalInfo) error {
	p.Profession = strings.TrimSpace(p.Profession)
	p.University = strings.TrimSpace(p.University)
	p.Country = strings.TrimSpace(p.Country)
	if p.Profession == "" && p.University == "" && p.Country == "" {
		return apperror.Validation("at least one of profession, university, country is required")
	}
	return nil
}
