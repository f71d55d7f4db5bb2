package application

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/recruiting/pkg/apperror"
)

// Status of an application. Pending and Reviewed are open; Hired and Rejected are final.
type Status string

const (
	StatusPending  Status = "pending"
	StatusReviewed Status = "reviewed"
	StatusHired    Status = "hired"
	StatusRejected Status = "rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusReviewed, StatusHired, StatusRejected:
		return true
	}
	return false
}

func (s Status) Terminal() bool { return s == StatusHired || s == StatusRejected }

// CanTransition reports whether the workflow allows moving from s to next.
func (s Status) CanTransition(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusReviewed || next == StatusHired || next == StatusRejected
	case StatusReviewed:
		return next == StatusHired || next == StatusRejected
	default:
		return false
	}
}

// Application is a candidate's request against a posting.
type Application struct {
	ID          uuid.UUID `json:"id"`
	PostingID   uuid.UUID `json:"postingId"`
	ApplicantID uuid.UUID `json:"applicantId"`
	Status      Status    `json:"status"`
	AppliedAt   time.Time `json:"appliedAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

var (
	ErrNotFound       = apperror.NotFound("application not found")
	ErrDuplicate      = apperror.Duplicate("applicant already applied to this posting")
	ErrFinal          = apperror.InvalidState("application status is final")
	ErrNotCancellable = apperror.InvalidState("only pending or reviewed applications can be cancelled")
	ErrPostingClosed  = apperror.InvalidState("posting is not active")
	ErrForbidden      = apperror.Forbidden("not allowed to act on this application")
	ErrHasHiring      = apperror.InvalidState("application has a hiring record")
	ErrNotCandidate   = apperror.Forbidden("only candidate accounts can apply")
	ErrNotHireable    = apperror.InvalidState("applicant account cannot be hired")
)

// Repository stores the application ledger.
type Repository interface {
	// Create fails with ErrDuplicate when the (posting, applicant) pair exists.
	Create(ctx context.Context, a Application) error
	GetByID(ctx context.Context, id uuid.UUID) (Application, error)
	GetByPostingAndApplicant(ctx context.Context, postingID, applicantID uuid.UUID) (Application, error)
	ListByPosting(ctx context.Context, postingID uuid.UUID) ([]Application, error)
	ListByApplicant(ctx context.Context, applicantID uuid.UUID) ([]Application, error)
	// UpdateStatus moves the application only if its status is still from,
	// failing with ErrFinal otherwise.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to Status) error
	// MarkHired sets the status to hired, the applicant's role to employee and
	// deactivates the posting, all or nothing.
	MarkHired(ctx context.Context, a Application) error
	// Delete removes the application only while it is pending or reviewed,
	// failing with ErrNotCancellable otherwise.
	Delete(ctx context.Context, id uuid.UUID) error
}
