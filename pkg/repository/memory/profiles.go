package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/artem13815/recruiting/pkg/candidate"
	"github.com/artem13815/recruiting/pkg/company"
)

type CompanyRepository struct{ s *Store }

func (r *CompanyRepository) Create(ctx context.Context, p company.Profile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.companies {
		if c.AccountID == p.AccountID {
			return company.ErrAlreadyExists
		}
	}
	r.s.companies[p.ID] = p
	return nil
}

func (r *CompanyRepository) GetByID(ctx context.Context, id uuid.UUID) (company.Profile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.companies[id]
	if !ok {
		return company.Profile{}, company.ErrNotFound
	}
	return p, nil
}

func (r *CompanyRepository) GetByAccount(ctx context.Context, accountID uuid.UUID) (company.Profile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, p := range r.s.companies {
		if p.AccountID == accountID {
			return p, nil
		}
	}
	return company.Profile{}, company.ErrNotFound
}

func (r *CompanyRepository) List(ctx context.Context, limit, offset int) ([]company.Profile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	all := sortedValues(r.s.companies, func(a, b company.Profile) bool { return a.Name < b.Name })
	return paginate(all, limit, offset), nil
}

func (r *CompanyRepository) Update(ctx context.Context, p company.Profile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.companies[p.ID]
	if !ok {
		return company.ErrNotFound
	}
	p.AccountID = cur.AccountID
	p.CreatedAt = cur.CreatedAt
	r.s.companies[p.ID] = p
	return nil
}

type CandidateRepository struct{ s *Store }

func (r *CandidateRepository) CreateProfile(ctx context.Context, p candidate.Profile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.candidates {
		if c.AccountID == p.AccountID {
			return candidate.ErrAlreadyExists
		}
	}
	p.Experiences, p.PersonalInfo = nil, nil
	r.s.candidates[p.ID] = p
	return nil
}

func (r *CandidateRepository) GetProfileByAccount(ctx context.Context, accountID uuid.UUID) (candidate.Profile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, p := range r.s.candidates {
		if p.AccountID != accountID {
			continue
		}
		p.Experiences = r.experiencesLocked(p.ID)
		p.PersonalInfo = r.infosLocked(p.ID)
		return p, nil
	}
	return candidate.Profile{}, candidate.ErrNotFound
}

func (r *CandidateRepository) UpdateProfile(ctx context.Context, p candidate.Profile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.candidates[p.ID]
	if !ok {
		return candidate.ErrNotFound
	}
	cur.Profession, cur.University, cur.Country = p.Profession, p.University, p.Country
	r.s.candidates[p.ID] = cur
	return nil
}

func (r *CandidateRepository) CreateExperience(ctx context.Context, e candidate.Experience) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.candidates[e.ProfileID]; !ok {
		return candidate.ErrNotFound
	}
	r.s.experiences[e.ID] = e
	return nil
}

func (r *CandidateRepository) GetExperience(ctx context.Context, id uuid.UUID) (candidate.Experience, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	e, ok := r.s.experiences[id]
	if !ok {
		return candidate.Experience{}, candidate.ErrExperienceNotFound
	}
	return e, nil
}

func (r *CandidateRepository) UpdateExperience(ctx context.Context, e candidate.Experience) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.experiences[e.ID]
	if !ok {
		return candidate.ErrExperienceNotFound
	}
	e.ProfileID = cur.ProfileID
	r.s.experiences[e.ID] = e
	return nil
}

func (r *CandidateRepository) DeleteExperience(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.experiences[id]; !ok {
		return candidate.ErrExperienceNotFound
	}
	delete(r.s.experiences, id)
	return nil
}

func (r *CandidateRepository) ListExperiences(ctx context.Context, profileID uuid.UUID) ([]candidate.Experience, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.experiencesLocked(profileID), nil
}

func (r *CandidateRepository) CreatePersonalInfo(ctx context.Context, p candidate.PersonalInfo) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.candidates[p.ProfileID]; !ok {
		return candidate.ErrNotFound
	}
	r.s.infos[p.ID] = p
	return nil
}

func (r *CandidateRepository) GetPersonalInfo(ctx context.Context, id uuid.UUID) (candidate.PersonalInfo, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.infos[id]
	if !ok {
		return candidate.PersonalInfo{}, candidate.ErrInfoNotFound
	}
	return p, nil
}

func (r *CandidateRepository) UpdatePersonalInfo(ctx context.Context, p candidate.PersonalInfo) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.infos[p.ID]
	if !ok {
		return candidate.ErrInfoNotFound
	}
	p.ProfileID = cur.ProfileID
	r.s.infos[p.ID] = p
	return nil
}

func (r *CandidateRepository) DeletePersonalInfo(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.infos[id]; !ok {
		return candidate.ErrInfoNotFound
	}
	delete(r.s.infos, id)
	return nil
}

func (r *CandidateRepository) ListPersonalInfo(ctx context.Context, profileID uuid.UUID) ([]candidate.PersonalInfo, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.infosLocked(profileID), nil
}

// experiencesLocked returns the newest job first.
func (r *CandidateRepository) experiencesLocked(profileID uuid.UUID) []candidate.Experience {
	out := []candidate.Experience{}
	for _, e := range r.s.experiences {
		if e.ProfileID == profileID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.After(out[j].StartDate) })
	return out
}

func (r *CandidateRepository) infosLocked(profileID uuid.UUID) []candidate.PersonalInfo {
	out := []candidate.PersonalInfo{}
	for _, p := range r.s.infos {
		if p.ProfileID == profileID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out
}
