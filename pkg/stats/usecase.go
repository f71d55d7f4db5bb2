package stats

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/artem13815/recruiting/pkg/account"
	"github.com/artem13815/recruiting/pkg/cache"
	"github.com/artem13815/recruiting/pkg/company"
	"github.com/artem13815/recruiting/pkg/posting"
)

type UseCase interface {
	CompanyStats(ctx context.Context, actor account.Actor, accountID uuid.UUID) (CompanyStats, error)
	Overview(ctx context.Context, actor account.Actor) (Overview, error)
	Forget(ctx context.Context, companyID uuid.UUID)
}

type service struct {
	repo      Repository
	companies company.Repository
	cache     cache.Cache
	ttl       time.Duration
	log       logrus.FieldLogger
}

// NewService builds the aggregator. A nil cache or a zero ttl disables caching.
func NewService(repo Repository, companies company.Repository, c cache.Cache, ttl time.Duration, log logrus.FieldLogger) UseCase {
	return &service{repo: repo, companies: companies, cache: c, ttl: ttl, log: log}
}

func (s *service) CompanyStats(ctx context.Context, actor account.Actor, accountID uuid.UUID) (CompanyStats, error) {
	if !actor.CanManage(accountID) {
		return CompanyStats{}, ErrForbidden
	}
	comp, err := s.companies.GetByAccount(ctx, accountID)
	if err != nil {
		return CompanyStats{}, err
	}

	key := companyKey(comp.ID)
	var out CompanyStats
	if s.cacheEnabled() {
		hit, err := s.cache.GetJSON(ctx, key, &out)
		if err != nil {
			s.log.WithError(err).Warn("stats cache read failed")
		} else if hit {
			return out, nil
		}
	}

	counts, err := s.repo.CompanyCounts(ctx, comp.ID, posting.StateOpen)
	if err != nil {
		return CompanyStats{}, err
	}
	out = CompanyStats{
		CompanyID:      comp.ID,
		OpenPostings:   counts.OpenPostings,
		Applications:   counts.Applications,
		Hirings:        counts.Hirings,
		EstimatedViews: counts.Applications * viewsPerApplication,
	}
	if s.cacheEnabled() {
		if err := s.cache.SetJSON(ctx, key, out, s.ttl); err != nil {
			s.log.WithError(err).Warn("stats cache write failed")
		}
	}
	return out, nil
}

func (s *service) Overview(ctx context.Context, actor account.Actor) (Overview, error) {
	if !actor.IsStaff() {
		return Overview{}, ErrForbidden
	}
	return s.repo.Overview(ctx)
}

// Forget drops the cached aggregate of one company. Failures are only logged.
func (s *service) Forget(ctx context.Context, companyID uuid.UUID) {
	if !s.cacheEnabled() {
		return
	}
	if err := s.cache.Del(ctx, companyKey(companyID)); err != nil {
		s.log.WithError(err).WithField("company_id", companyID).Warn("stats cache invalidation failed")
	}
}

func companyKey(id uuid.UUID) string { return "company:" + id.String() }

func (s *service) cacheEnabled() bool { return s.cache != nil && s.ttl > 0 }
