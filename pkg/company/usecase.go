package company

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/recruiting/pkg/account"
	"github.com/artem13815/recruiting/pkg/apperror"
)

type UseCase interface {
	// Provision creates the profile for a freshly registered company account.
	Provision(ctx context.Context, acc account.Account, p Profile) (Profile, error)
	Create(ctx context.Context, actor account.Actor, p Profile) (Profile, error)
	List(ctx context.Context, limit, offset int) ([]Profile, error)
	GetByAccount(ctx context.Context, accountID uuid.UUID) (Profile, error)
	UpdateByAccount(ctx context.Context, actor account.Actor, accountID uuid.UUID, patch Patch) (Profile, error)
}

type service struct {
	repo     Repository
	accounts account.Repository
}

func NewService(repo Repository, accounts account.Repository) UseCase {
	return &service{repo: repo, accounts: accounts}
}

func (s *service) Provision(ctx context.Context, acc account.Account, p Profile) (Profile, error) {
	if acc.Role != account.RoleCompany {
		return Profile{}, apperror.Validation("company profiles belong to company accounts")
	}
	p.ID = uuid.New()
	p.AccountID = acc.ID
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		// Registration may omit the company name; fall back to the contact's name.
		p.Name = strings.TrimSpace(acc.FirstName + " " + acc.LastName)
	}
	if p.ContactPerson == "" {
		p.ContactPerson = strings.TrimSpace(acc.FirstName + " " + acc.LastName)
	}
	if p.ContactPhone == "" {
		p.ContactPhone = acc.Phone
	}
	p.CreatedAt = time.Now().UTC()
	if err := s.repo.Create(ctx, p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

func (s *service) Create(ctx context.Context, actor account.Actor, p Profile) (Profile, error) {
	if !actor.IsStaff() {
		return Profile{}, ErrForbidden
	}
	if strings.TrimSpace(p.Name) == "" {
		return Profile{}, apperror.Validation("name is required")
	}
	acc, err := s.accounts.GetByID(ctx, p.AccountID)
	if err != nil {
		return Profile{}, err
	}
	if _, err := s.repo.GetByAccount(ctx, acc.ID); err == nil {
		return Profile{}, ErrAlreadyExists
	} else if !errors.Is(err, ErrNotFound) {
		return Profile{}, err
	}
	return s.Provision(ctx, acc, p)
}

func (s *service) List(ctx context.Context, limit, offset int) ([]Profile, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *service) GetByAccount(ctx context.Context, accountID uuid.UUID) (Profile, error) {
	return s.repo.GetByAccount(ctx, accountID)
}

func (s *service) UpdateByAccount(ctx context.Context, actor account.Actor, accountID uuid.UUID, patch Patch) (Profile, error) {
	if !actor.CanManage(accountID) {
		return Profile{}, ErrForbidden
	}
	if patch.Empty() {
		return Profile{}, ErrNoFields
	}
	p, err := s.repo.GetByAccount(ctx, accountID)
	if err != nil {
		return Profile{}, err
	}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return Profile{}, apperror.Validation("name must not be empty")
		}
		p.Name = name
	}
	if patch.Sector != nil {
		p.Sector = strings.TrimSpace(*patch.Sector)
	}
	if patch.ContactPerson != nil {
		p.ContactPerson = strings.TrimSpace(*patch.ContactPerson)
	}
	if patch.ContactPhone != nil {
		p.ContactPhone = strings.TrimSpace(*patch.ContactPhone)
	}
	if patch.Address != nil {
		p.Address = strings.TrimSpace(*patch.Address)
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return Profile{}, err
	}
	return p, nil
}
