package account

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/recruiting/pkg/apperror"
)

// Role is the account's position in the recruiting process.
// It is never reused as an application outcome: a hired candidate becomes RoleEmployee.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleHiringGroup Role = "hiring_group"
	RoleCompany     Role = "company"
	RoleCandidate   Role = "candidate"
	RoleEmployee    Role = "employee"
)

// ParseRole accepts the canonical values case-insensitively.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", apperror.Validation("role must be one of admin, hiring_group, company, candidate, employee")
	}
	return r, nil
}

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleHiringGroup, RoleCompany, RoleCandidate, RoleEmployee:
		return true
	}
	return false
}

// IsStaff reports whether the role manages the whole recruiting pipeline.
func (r Role) IsStaff() bool { return r == RoleAdmin || r == RoleHiringGroup }

// Account is a system user.
type Account struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Phone        string    `json:"phone,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Actor is the authenticated caller of a use case.
type Actor struct {
	ID   uuid.UUID
	Role Role
}

func (a Actor) IsStaff() bool { return a.Role.IsStaff() }

// Owns reports whether the actor is the given account.
func (a Actor) Owns(accountID uuid.UUID) bool { return a.ID == accountID }

// CanManage: the account itself or staff.
func (a Actor) CanManage(accountID uuid.UUID) bool { return a.IsStaff() || a.Owns(accountID) }

var (
	ErrNotFound      = apperror.NotFound("account not found")
	ErrAlreadyExists = apperror.Duplicate("account already exists")
	ErrForbidden     = apperror.Forbidden("not allowed to access this account")
	ErrHasHistory    = apperror.InvalidState("account has hiring records and cannot be deleted")
)

// Repository abstracts persistence concerns from the domain layer.
type Repository interface {
	Create(ctx context.Context, a Account) error
	GetByID(ctx context.Context, id uuid.UUID) (Account, error)
	GetByEmail(ctx context.Context, email string) (Account, error)
	List(ctx context.Context, limit, offset int) ([]Account, error)
	// Update persists contact fields, e-mail and password hash. Role is left untouched.
	Update(ctx context.Context, a Account) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// NormalizeEmail is applied before every lookup and write.
func NormalizeEmail(email string) string { return strings.ToLower(strings.TrimSpace(email)) }
