package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/artem13815/recruiting/pkg/application"
	"github.com/artem13815/recruiting/pkg/hiring"
	"github.com/artem13815/recruiting/pkg/payroll"
)

type HiringRepository struct{ s *Store }

func (r *HiringRepository) UpsertBank(ctx context.Context, name string) (hiring.Bank, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if b, ok := r.s.banks[name]; ok {
		return b, nil
	}
	b := hiring.Bank{ID: uuid.New(), Name: name}
	r.s.banks[name] = b
	return b, nil
}

func (r *HiringRepository) Create(ctx context.Context, rec hiring.Record) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.applications[rec.ApplicationID]; !ok {
		return application.ErrNotFound
	}
	for _, existing := range r.s.hirings {
		if existing.ApplicationID == rec.ApplicationID {
			return hiring.ErrDuplicate
		}
	}
	r.s.hirings[rec.ID] = rec
	return nil
}

func (r *HiringRepository) GetByID(ctx context.Context, id uuid.UUID) (hiring.Record, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rec, ok := r.s.hirings[id]
	if !ok {
		return hiring.Record{}, hiring.ErrNotFound
	}
	return rec, nil
}

func (r *HiringRepository) GetByApplication(ctx context.Context, applicationID uuid.UUID) (hiring.Record, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, rec := range r.s.hirings {
		if rec.ApplicationID == applicationID {
			return rec, nil
		}
	}
	return hiring.Record{}, hiring.ErrNotFound
}

type PayslipRepository struct{ s *Store }

func (r *PayslipRepository) Create(ctx context.Context, p payroll.Payslip) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.hirings[p.HiringID]; !ok {
		return hiring.ErrNotFound
	}
	for _, existing := range r.s.payslips {
		if existing.HiringID == p.HiringID && existing.Period == p.Period {
			return payroll.ErrDuplicate
		}
	}
	r.s.payslips[p.ID] = p
	return nil
}

func (r *PayslipRepository) ListByHiring(ctx context.Context, hiringID uuid.UUID) ([]payroll.Payslip, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	all := sortedValues(r.s.payslips, func(a, b payroll.Payslip) bool { return a.Period > b.Period })
	out := make([]payroll.Payslip, 0, len(all))
	for _, p := range all {
		if p.HiringID == hiringID {
			out = append(out, p)
		}
	}
	return out, nil
}
