package company

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/recruiting/pkg/apperror"
)

// Profile is the company attached to an account with role company.
type Profile struct {
	ID            uuid.UUID `json:"id"`
	AccountID     uuid.UUID `json:"accountId"`
	Name          string    `json:"name"`
	Sector        string    `json:"sector"`
	ContactPerson string    `json:"contactPerson"`
	ContactPhone  string    `json:"contactPhone,omitempty"`
	Address       string    `json:"address,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Patch lists the fields a PATCH may change; nil means unchanged.
type Patch struct {
	Name          *string
	Sector        *string
	ContactPerson *string
	ContactPhone  *string
	Address       *string
}

func (p Patch) Empty() bool {
	return p.Name == nil && p.Sector == nil && p.ContactPerson == nil && p.ContactPhone == nil && p.Address == nil
}

var (
	ErrNotFound      = apperror.NotFound("company not found")
	ErrAlreadyExists = apperror.Duplicate("company profile already exists for this account")
	ErrForbidden     = apperror.Forbidden("not allowed to manage this company")
	ErrNoFields      = apperror.Validation("no valid fields to update")
)

type Repository interface {
	Create(ctx context.Context, p Profile) error
	GetByID(ctx context.Context, id uuid.UUID) (Profile, error)
	GetByAccount(ctx context.Context, accountID uuid.UUID) (Profile, error)
	List(ctx context.Context, limit, offset int) ([]Profile, error)
	Update(ctx context.Context, p Profile) error
}
