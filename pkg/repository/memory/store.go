// Package memory keeps every repository in process memory. It backs
// STORAGE_DRIVER=memory for local runs and the use-case tests, and mirrors the
// constraints of the postgres schema (unique keys, cascades, restricts).
package memory

import (
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/artem13815/recruiting/pkg/account"
	"github.com/artem13815/recruiting/pkg/application"
	"github.com/artem13815/recruiting/pkg/auth"
	"github.com/artem13815/recruiting/pkg/candidate"
	"github.com/artem13815/recruiting/pkg/company"
	"github.com/artem13815/recruiting/pkg/hiring"
	"github.com/artem13815/recruiting/pkg/payroll"
	"github.com/artem13815/recruiting/pkg/posting"
)

type Store struct {
	mu           sync.RWMutex
	accounts     map[uuid.UUID]account.Account
	companies    map[uuid.UUID]company.Profile
	candidates   map[uuid.UUID]candidate.Profile
	experiences  map[uuid.UUID]candidate.Experience
	infos        map[uuid.UUID]candidate.PersonalInfo
	postings     map[uuid.UUID]posting.Posting
	applications map[uuid.UUID]application.Application
	banks        map[string]hiring.Bank
	hirings      map[uuid.UUID]hiring.Record
	payslips     map[uuid.UUID]payroll.Payslip
	refresh      map[string]auth.RefreshToken
}

func New() *Store {
	return &Store{
		accounts:     make(map[uuid.UUID]account.Account),
		companies:    make(map[uuid.UUID]company.Profile),
		candidates:   make(map[uuid.UUID]candidate.Profile),
		experiences:  make(map[uuid.UUID]candidate.Experience),
		infos:        make(map[uuid.UUID]candidate.PersonalInfo),
		postings:     make(map[uuid.UUID]posting.Posting),
		applications: make(map[uuid.UUID]application.Application),
		banks:        make(map[string]hiring.Bank),
		hirings:      make(map[uuid.UUID]hiring.Record),
		payslips:     make(map[uuid.UUID]payroll.Payslip),
		refresh:      make(map[string]auth.RefreshToken),
	}
}

func (s *Store) Accounts() *AccountRepository { return &AccountRepository{s} }
func (s *Store) Companies() *CompanyRepository { return &CompanyRepository{s} }
func (s *Store) Candidates() *CandidateRepository { return &CandidateRepository{s} }
func (s *Store) Postings() *PostingRepository { return &PostingRepository{s} }
func (s *Store) Applications() *ApplicationRepository { return &ApplicationRepository{s} }
func (s *Store) Hirings() *HiringRepository { return &HiringRepository{s} }
func (s *Store) Payslips() *PayslipRepository { return &PayslipRepository{s} }
func (s *Store) Stats() *StatsRepository { return &StatsRepository{s} }
func (s *Store) RefreshTokens() *RefreshTokenStore { return &RefreshTokenStore{s} }

func paginate[T any](items []T, limit, offset int) []T {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

func sortedValues[K comparable, V any](m map[K]V, less func(a, b V) bool) []V {
	out := make([]V, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// hasHiringLocked reports whether any of the applications has a hiring record.
func (s *Store) hasHiringLocked(appIDs map[uuid.UUID]struct{}) bool {
	for _, r := range s.hirings {
		if _, ok := appIDs[r.ApplicationID]; ok {
			return true
		}
	}
	return false
}

func (s *Store) deleteApplicationsLocked(appIDs map[uuid.UUID]struct{}) {
	for id := range appIDs {
		delete(s.applications, id)
	}
}
