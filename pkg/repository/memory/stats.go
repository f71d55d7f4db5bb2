package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/artem13815/recruiting/pkg/stats"
)

type StatsRepository struct{ s *Store }

func (r *StatsRepository) CompanyCounts(ctx context.Context, companyID uuid.UUID, openState string) (stats.CompanyCounts, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var c stats.CompanyCounts
	postings := map[uuid.UUID]struct{}{}
	for id, p := range r.s.postings {
		if p.CompanyID != companyID {
			continue
		}
		postings[id] = struct{}{}
		if p.State == openState {
			c.OpenPostings++
		}
	}
	apps := map[uuid.UUID]struct{}{}
	for id, a := range r.s.applications {
		if _, ok := postings[a.PostingID]; ok {
			apps[id] = struct{}{}
			c.Applications++
		}
	}
	for _, h := range r.s.hirings {
		if _, ok := apps[h.ApplicationID]; ok {
			c.Hirings++
		}
	}
	return c, nil
}

func (r *StatsRepository) Overview(ctx context.Context) (stats.Overview, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	o := stats.Overview{
		AccountsByRole:       map[string]int{},
		ApplicationsByStatus: map[string]int{},
		Hirings:              len(r.s.hirings),
	}
	for _, a := range r.s.accounts {
		o.AccountsByRole[string(a.Role)]++
	}
	for _, p := range r.s.postings {
		if p.Active {
			o.ActivePostings++
		}
	}
	for _, a := range r.s.applications {
		o.ApplicationsByStatus[string(a.Status)]++
	}
	return o, nil
}
