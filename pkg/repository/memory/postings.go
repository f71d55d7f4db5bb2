package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/artem13815/recruiting/pkg/company"
	"github.com/artem13815/recruiting/pkg/posting"
)

type PostingRepository struct{ s *Store }

func (r *PostingRepository) Create(ctx context.Context, p posting.Posting) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.companies[p.CompanyID]; !ok {
		return company.ErrNotFound
	}
	r.s.postings[p.ID] = p
	return nil
}

func (r *PostingRepository) GetByID(ctx context.Context, id uuid.UUID) (posting.Posting, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.postings[id]
	if !ok {
		return posting.Posting{}, posting.ErrNotFound
	}
	return p, nil
}

func (r *PostingRepository) List(ctx context.Context, f posting.Filter) ([]posting.Posting, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	all := sortedValues(r.s.postings, func(a, b posting.Posting) bool { return a.CreatedAt.After(b.CreatedAt) })
	out := make([]posting.Posting, 0, len(all))
	for _, p := range all {
		if f.CompanyID != nil && p.CompanyID != *f.CompanyID {
			continue
		}
		if f.ActiveOnly && !p.Active {
			continue
		}
		out = append(out, p)
	}
	return paginate(out, f.Limit, f.Offset), nil
}

func (r *PostingRepository) Update(ctx context.Context, p posting.Posting) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.postings[p.ID]
	if !ok {
		return posting.ErrNotFound
	}
	p.CompanyID = cur.CompanyID
	p.CreatedAt = cur.CreatedAt
	r.s.postings[p.ID] = p
	return nil
}

// Delete drops the posting and its applications unless one of them was
// finalized into a hiring record.
func (r *PostingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.postings[id]; !ok {
		return posting.ErrNotFound
	}
	appIDs := map[uuid.UUID]struct{}{}
	for aid, a := range r.s.applications {
		if a.PostingID == id {
			appIDs[aid] = struct{}{}
		}
	}
	if r.s.hasHiringLocked(appIDs) {
		return posting.ErrHasHiringRecord
	}
	r.s.deleteApplicationsLocked(appIDs)
	delete(r.s.postings, id)
	return nil
}
