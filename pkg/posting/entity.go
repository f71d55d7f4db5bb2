package posting

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/recruiting/pkg/apperror"
)

// State labels shown to users. The label is free text; StateOpen is the one
// the company statistics count.
const (
	StateOpen   = "Abierta"
	StateClosed = "Cerrada"
)

// Posting is a job offer published by a company profile.
type Posting struct {
	ID          uuid.UUID `json:"id"`
	CompanyID   uuid.UUID `json:"companyId"`
	Profession  string    `json:"profession"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Salary      float64   `json:"salary"`
	Active      bool      `json:"active"`
	State       string    `json:"state"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Filter narrows List. A nil CompanyID lists every company.
type Filter struct {
	CompanyID  *uuid.UUID
	ActiveOnly bool
	Limit      int
	Offset     int
}

// Patch lists the fields a PATCH may change; nil means unchanged.
type Patch struct {
	Profession  *string
	Title       *string
	Description *string
	Salary      *float64
	State       *string
	Active      *bool
}

func (p Patch) Empty() bool {
	return p.Profession == nil && p.Title == nil && p.Description == nil &&
		p.Salary == nil && p.State == nil && p.Active == nil
}

var (
	ErrNotFound        = apperror.NotFound("posting not found")
	ErrForbidden       = apperror.Forbidden("not allowed to manage this posting")
	ErrNegativeSalary  = apperror.Validation("salary must not be negative")
	ErrHasHiringRecord = apperror.InvalidState("posting has hiring records and cannot be deleted")
)

// Repository is the storage port of the posting catalog.
type Repository interface {
	Create(ctx context.Context, p Posting) error
	GetByID(ctx context.Context, id uuid.UUID) (Posting, error)
	List(ctx context.Context, f Filter) ([]Posting, error)
	Update(ctx context.Context, p Posting) error
	Delete(ctx context.Context, id uuid.UUID) error
}
