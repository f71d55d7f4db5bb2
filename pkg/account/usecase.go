package account

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/artem13815/recruiting/pkg/apperror"
)

const minPasswordLen = 6

// UseCase manages account records.
type UseCase interface {
	Create(ctx context.Context, in CreateInput) (Account, error)
	Get(ctx context.Context, actor Actor, id uuid.UUID) (Account, error)
	List(ctx context.Context, actor Actor, limit, offset int) ([]Account, error)
	Update(ctx context.Context, actor Actor, id uuid.UUID, in UpdateInput) (Account, error)
	Delete(ctx context.Context, actor Actor, id uuid.UUID) error
	// Remove deletes without an access check; used to roll back a failed registration.
	Remove(ctx context.Context, id uuid.UUID) error
}

type CreateInput struct {
	Email     string
	Password  string
	Role      Role
	FirstName string
	LastName  string
	Phone     string
}

// UpdateInput carries the fields a PUT may change; nil means unchanged.
type UpdateInput struct {
	Email     *string
	Password  *string
	FirstName *string
	LastName  *string
	Phone     *string
}

type service struct {
	repo Repository
}

func NewService(repo Repository) UseCase {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, in CreateInput) (Account, error) {
	email := NormalizeEmail(in.Email)
	if err := validateEmail(email); err != nil {
		return Account{}, err
	}
	if len(in.Password) < minPasswordLen {
		return Account{}, apperror.Validation("password must be at least 6 characters")
	}
	if !in.Role.Valid() {
		return Account{}, apperror.Validation("unknown role")
	}
	// Best-effort check; the unique index settles races.
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return Account{}, ErrAlreadyExists
	} else if !errors.Is(err, ErrNotFound) {
		return Account{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return Account{}, err
	}
	a := Account{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         in.Role,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Phone:        strings.TrimSpace(in.Phone),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return Account{}, err
	}
	return a, nil
}

func (s *service) Get(ctx context.Context, actor Actor, id uuid.UUID) (Account, error) {
	if !actor.CanManage(id) {
		return Account{}, ErrForbidden
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, actor Actor, limit, offset int) ([]Account, error) {
	if !actor.IsStaff() {
		return nil, ErrForbidden
	}
	return s.repo.List(ctx, limit, offset)
}

func (s *service) Update(ctx context.Context, actor Actor, id uuid.UUID, in UpdateInput) (Account, error) {
	if !actor.Owns(id) && actor.Role != RoleAdmin {
		return Account{}, ErrForbidden
	}
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Account{}, err
	}
	if in.Email != nil {
		email := NormalizeEmail(*in.Email)
		if err := validateEmail(email); err != nil {
			return Account{}, err
		}
		a.Email = email
	}
	if in.Password != nil {
		if len(*in.Password) < minPasswordLen {
			return Account{}, apperror.Validation("password must be at least 6 characters")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return Account{}, err
		}
		a.PasswordHash = string(hash)
	}
	if in.FirstName != nil {
		a.FirstName = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		a.LastName = strings.TrimSpace(*in.LastName)
	}
	if in.Phone != nil {
		a.Phone = strings.TrimSpace(*in.Phone)
	}
	if err := s.repo.Update(ctx, a); err != nil {
		return Account{}, err
	}
	return a, nil
}

func (s *service) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	if !actor.Owns(id) && actor.Role != RoleAdmin {
		return ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) Remove(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func validateEmail(email string) error {
	at := strings.IndexByte(email, '@')
	if email == "" || at <= 0 || at == len(email)-1 {
		return apperror.Validation("a valid email is required")
	}
	return nil
}
