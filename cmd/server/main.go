// @title         recruiting-service API
// @version       1.0
// @description   Recruiting backend: accounts, company and candidate profiles, postings, the application workflow, hiring records, payroll and dashboard statistics.
// @BasePath      /api/v1
// @schemes       http
// @host          localhost:8080
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Authorization token. Accepted formats: "Bearer <JWT>" or "<JWT>".
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	swagger "github.com/gofiber/swagger"
	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	httpapi "github.com/artem13815/recruiting/api/http"
	"github.com/artem13815/recruiting/api/http/handlers"
	"github.com/artem13815/recruiting/api/http/middleware"
	"github.com/artem13815/recruiting/api/http/presenter"
	_ "github.com/artem13815/recruiting/docs"
	"github.com/artem13815/recruiting/pkg/account"
	"github.com/artem13815/recruiting/pkg/application"
	"github.com/artem13815/recruiting/pkg/auth"
	"github.com/artem13815/recruiting/pkg/cache"
	"github.com/artem13815/recruiting/pkg/candidate"
	"github.com/artem13815/recruiting/pkg/company"
	"github.com/artem13815/recruiting/pkg/config"
	"github.com/artem13815/recruiting/pkg/health"
	"github.com/artem13815/recruiting/pkg/health/checkers"
	"github.com/artem13815/recruiting/pkg/hiring"
	"github.com/artem13815/recruiting/pkg/logger"
	"github.com/artem13815/recruiting/pkg/payroll"
	"github.com/artem13815/recruiting/pkg/posting"
	"github.com/artem13815/recruiting/pkg/registration"
	"github.com/artem13815/recruiting/pkg/repository/memory"
	pgrepo "github.com/artem13815/recruiting/pkg/repository/postgres"
	redisrepo "github.com/artem13815/recruiting/pkg/repository/redis"
	"github.com/artem13815/recruiting/pkg/security/jwt"
	"github.com/artem13815/recruiting/pkg/stats"
	"github.com/artem13815/recruiting/pkg/storage/postgres"
	redisstore "github.com/artem13815/recruiting/pkg/storage/redis"
)

// repositories is the storage backend selected by STORAGE_DRIVER.
type repositories struct {
	accounts     account.Repository
	companies    company.Repository
	candidates   candidate.Repository
	postings     posting.Repository
	applications application.Repository
	hirings      hiring.Repository
	payslips     payroll.Repository
	stats        stats.Repository
	refresh      auth.RefreshTokenStore
}

func main() {
	// Load configuration from env/.env
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}
	log := logger.New(cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("invalid config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var checks []health.Checker
	var repos repositories

	switch cfg.StorageDriver {
	case "memory":
		log.Warn("using in-memory storage; data is lost on restart")
		store := memory.New()
		repos = repositories{
			accounts:     store.Accounts(),
			companies:    store.Companies(),
			candidates:   store.Candidates(),
			postings:     store.Postings(),
			applications: store.Applications(),
			hirings:      store.Hirings(),
			payslips:     store.Payslips(),
			stats:        store.Stats(),
			refresh:      store.RefreshTokens(),
		}
	default:
		pool, err := postgres.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			log.WithError(err).Fatal("postgres connect")
		}
		defer pool.Close()
		applied, err := postgres.Migrate(ctx, pool)
		if err != nil {
			log.WithError(err).Fatal("migrate")
		}
		log.WithField("versions", applied).Info("schema up to date")
		repos = repositories{
			accounts:     pgrepo.NewAccountRepository(pool),
			companies:    pgrepo.NewCompanyRepository(pool),
			candidates:   pgrepo.NewCandidateRepository(pool),
			postings:     pgrepo.NewPostingRepository(pool),
			applications: pgrepo.NewApplicationRepository(pool),
			hirings:      pgrepo.NewHiringRepository(pool),
			payslips:     pgrepo.NewPayslipRepository(pool),
			stats:        pgrepo.NewStatsRepository(pool),
			refresh:      memory.New().RefreshTokens(),
		}
		checks = append(checks, checkers.NewPostgresChecker(pool))
	}

	// Redis is optional: it backs refresh tokens, the stats cache and the apply limiter.
	var (
		rdb        *goredis.Client
		statsCache cache.Cache
		limiter    middleware.Limiter
	)
	if cfg.RedisURL != "" {
		rdb, err = redisstore.Connect(ctx, cfg.RedisURL)
		if err != nil {
			log.WithError(err).Fatal("redis connect")
		}
		defer rdb.Close()
		repos.refresh = redisrepo.NewRefreshTokenStore(rdb)
		statsCache = cache.NewRedisCache(rdb, "stats:")
		limiter = middleware.NewRedisLimiter(rdb)
		checks = append(checks, checkers.NewRedisChecker(rdb))
	} else {
		log.Warn("REDIS_URL not set: refresh tokens kept in memory, stats cache and rate limiting disabled")
	}

	// Use cases
	accountUC := account.NewService(repos.accounts)
	companyUC := company.NewService(repos.companies, repos.accounts)
	candidateUC := candidate.NewService(repos.candidates, repos.accounts)
	registrationUC := registration.NewService(accountUC, companyUC, candidateUC, log)
	statsUC := stats.NewService(repos.stats, repos.companies, statsCache, cfg.StatsCacheTTL(), log)
	postingUC := posting.NewService(repos.postings, repos.companies, posting.WithStats(statsUC))
	applicationUC := application.NewService(repos.applications, repos.postings, repos.companies, repos.accounts, application.WithStats(statsUC))
	hiringUC := hiring.NewService(repos.hirings, repos.applications, repos.accounts)
	payrollUC := payroll.NewService(repos.payslips, hiringUC)

	// Token generator
	jwtGen := jwt.NewGenerator(cfg.JWTSecret, cfg.JWTIssuer, cfg.AccessTTL())
	authUC := auth.NewAuthService(repos.accounts, repos.companies, jwtGen, repos.refresh, cfg.RefreshTTL())

	guards := httpapi.Guards{
		Auth:         jwt.NewAuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer),
		OptionalAuth: jwt.NewOptionalAuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer),
	}
	if limiter != nil {
		guards.ApplyLimit = middleware.RateLimit(limiter, "apply", cfg.ApplyRateLimit, cfg.ApplyWindow())
	}

	app := fiber.New(fiber.Config{
		AppName:      "recruiting-service",
		ErrorHandler: presenter.ErrorHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	})
	app.Use(middleware.RequestLogger(log))

	httpapi.Register(app, httpapi.Handlers{
		Health:       handlers.NewHealthHandler(health.NewService(checks...)),
		Auth:         handlers.NewAuthHandler(authUC),
		Accounts:     handlers.NewAccountHandler(accountUC, registrationUC),
		Companies:    handlers.NewCompanyHandler(companyUC),
		Candidates:   handlers.NewCandidateHandler(candidateUC),
		Postings:     handlers.NewPostingHandler(postingUC),
		Applications: handlers.NewApplicationHandler(applicationUC),
		Hirings:      handlers.NewHiringHandler(hiringUC),
		Payroll:      handlers.NewPayrollHandler(payrollUC),
		Stats:        handlers.NewStatsHandler(statsUC),
	}, guards)

	// Swagger UI
	app.Get("/swagger/*", swagger.HandlerDefault)

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.WithError(err).Error("shutdown")
		}
	}()

	log.WithFields(logrus.Fields{"port": cfg.Port, "storage": cfg.StorageDriver}).Info("HTTP server listening")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
