package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/recruiting/pkg/account"
	"github.com/artem13815/recruiting/pkg/application"
	"github.com/artem13815/recruiting/pkg/posting"
)

type ApplicationRepository struct{ s *Store }

func (r *ApplicationRepository) Create(ctx context.Context, a application.Application) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.postings[a.PostingID]; !ok {
		return posting.ErrNotFound
	}
	if _, ok := r.s.accounts[a.ApplicantID]; !ok {
		return account.ErrNotFound
	}
	for _, existing := range r.s.applications {
		if existing.PostingID == a.PostingID && existing.ApplicantID == a.ApplicantID {
			return application.ErrDuplicate
		}
	}
	r.s.applications[a.ID] = a
	return nil
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (application.Application, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	a, ok := r.s.applications[id]
	if !ok {
		return application.Application{}, application.ErrNotFound
	}
	return a, nil
}

func (r *ApplicationRepository) GetByPostingAndApplicant(ctx context.Context, postingID, applicantID uuid.UUID) (application.Application, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, a := range r.s.applications {
		if a.PostingID == postingID && a.ApplicantID == applicantID {
			return a, nil
		}
	}
	return application.Application{}, application.ErrNotFound
}

func (r *ApplicationRepository) ListByPosting(ctx context.Context, postingID uuid.UUID) ([]application.Application, error) {
	return r.list(func(a application.Application) bool { return a.PostingID == postingID }), nil
}

func (r *ApplicationRepository) ListByApplicant(ctx context.Context, applicantID uuid.UUID) ([]application.Application, error) {
	return r.list(func(a application.Application) bool { return a.ApplicantID == applicantID }), nil
}

func (r *ApplicationRepository) list(match func(application.Application) bool) []application.Application {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	all := sortedValues(r.s.applications, func(a, b application.Application) bool { return a.AppliedAt.After(b.AppliedAt) })
	out := make([]application.Application, 0, len(all))
	for _, a := range all {
		if match(a) {
			out = append(out, a)
		}
	}
	return out
}

func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to application.Status) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.applications[id]
	if !ok {
		return application.ErrNotFound
	}
	if a.Status != from {
		return application.ErrFinal
	}
	a.Status = to
	a.UpdatedAt = time.Now().UTC()
	r.s.applications[id] = a
	return nil
}

func (r *ApplicationRepository) MarkHired(ctx context.Context, in application.Application) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.applications[in.ID]
	if !ok {
		return application.ErrNotFound
	}
	if a.Status != in.Status || !a.Status.CanTransition(application.StatusHired) {
		return application.ErrFinal
	}
	acc, ok := r.s.accounts[a.ApplicantID]
	if !ok {
		return account.ErrNotFound
	}
	if acc.Role != account.RoleCandidate && acc.Role != account.RoleEmployee {
		return application.ErrNotHireable
	}
	p, ok := r.s.postings[a.PostingID]
	if !ok {
		return posting.ErrNotFound
	}

	a.Status = application.StatusHired
	a.UpdatedAt = time.Now().UTC()
	acc.Role = account.RoleEmployee
	p.Active = false
	r.s.applications[a.ID] = a
	r.s.accounts[acc.ID] = acc
	r.s.postings[p.ID] = p
	return nil
}

func (r *ApplicationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.applications[id]
	if !ok {
		return application.ErrNotFound
	}
	if a.Status.Terminal() {
		return application.ErrNotCancellable
	}
	delete(r.s.applications, id)
	return nil
}
