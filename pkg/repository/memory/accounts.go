package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/artem13815/recruiting/pkg/account"
)

type AccountRepository struct{ s *Store }

func (r *AccountRepository) Create(ctx context.Context, a account.Account) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a.Email = account.NormalizeEmail(a.Email)
	for _, existing := range r.s.accounts {
		if existing.Email == a.Email {
			return account.ErrAlreadyExists
		}
	}
	r.s.accounts[a.ID] = a
	return nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id uuid.UUID) (account.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	a, ok := r.s.accounts[id]
	if !ok {
		return account.Account{}, account.ErrNotFound
	}
	return a, nil
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (account.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	email = account.NormalizeEmail(email)
	for _, a := range r.s.accounts {
		if a.Email == email {
			return a, nil
		}
	}
	return account.Account{}, account.ErrNotFound
}

func (r *AccountRepository) List(ctx context.Context, limit, offset int) ([]account.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	all := sortedValues(r.s.accounts, func(a, b account.Account) bool { return a.CreatedAt.After(b.CreatedAt) })
	return paginate(all, limit, offset), nil
}

func (r *AccountRepository) Update(ctx context.Context, a account.Account) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.accounts[a.ID]
	if !ok {
		return account.ErrNotFound
	}
	a.Email = account.NormalizeEmail(a.Email)
	for id, existing := range r.s.accounts {
		if id != a.ID && existing.Email == a.Email {
			return account.ErrAlreadyExists
		}
	}
	a.Role = cur.Role
	a.CreatedAt = cur.CreatedAt
	r.s.accounts[a.ID] = a
	return nil
}

// Delete cascades to the account's profiles, postings and applications, and is
// refused while any of the affected applications has a hiring record.
func (r *AccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.accounts[id]; !ok {
		return account.ErrNotFound
	}

	postingIDs := map[uuid.UUID]struct{}{}
	for cid, c := range r.s.companies {
		if c.AccountID != id {
			continue
		}
		for pid, p := range r.s.postings {
			if p.CompanyID == cid {
				postingIDs[pid] = struct{}{}
			}
		}
	}
	appIDs := map[uuid.UUID]struct{}{}
	for aid, a := range r.s.applications {
		_, onPosting := postingIDs[a.PostingID]
		if a.ApplicantID == id || onPosting {
			appIDs[aid] = struct{}{}
		}
	}
	if r.s.hasHiringLocked(appIDs) {
		return account.ErrHasHistory
	}

	r.s.deleteApplicationsLocked(appIDs)
	for pid := range postingIDs {
		delete(r.s.postings, pid)
	}
	for cid, c := range r.s.companies {
		if c.AccountID == id {
			delete(r.s.companies, cid)
		}
	}
	for pid, p := range r.s.candidates {
		if p.AccountID != id {
			continue
		}
		for eid, e := range r.s.experiences {
			if e.ProfileID == pid {
				delete(r.s.experiences, eid)
			}
		}
		for iid, info := range r.s.infos {
			if info.ProfileID == pid {
				delete(r.s.infos, iid)
			}
		}
		delete(r.s.candidates, pid)
	}
	for token, rt := range r.s.refresh {
		if rt.AccountID == id {
			delete(r.s.refresh, token)
		}
	}
	delete(r.s.accounts, id)
	return nil
}
