package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/recruiting/api/http/handlers"
	"github.com/artem13815/recruiting/api/http/middleware"
)

// Handlers groups every route handler.
type Handlers struct {
	Health       *handlers.HealthHandler
	Auth         *handlers.AuthHandler
	Accounts     *handlers.AccountHandler
	Companies    *handlers.CompanyHandler
	Candidates   *handlers.CandidateHandler
	Postings     *handlers.PostingHandler
	Applications *handlers.ApplicationHandler
	Hirings      *handlers.HiringHandler
	Payroll      *handlers.PayrollHandler
	Stats        *handlers.StatsHandler
}

// Guards are the middlewares shared by the routes.
type Guards struct {
	Auth         fiber.Handler
	OptionalAuth fiber.Handler
	// ApplyLimit throttles POST /applications; nil disables it.
	ApplyLimit fiber.Handler
}

// Register wires all HTTP routes onto given Fiber app.
func Register(app *fiber.App, h Handlers, g Guards) {
	v1 := app.Group("/api").Group("/v1")

	// Health and readiness endpoints for probes/monitoring
	v1.Get("/health", h.Health.Health)
	v1.Get("/ready", h.Health.Ready)

	v1.Post("/login", h.Auth.Login)
	v1.Post("/token/refresh", h.Auth.Refresh)
	v1.Post("/logout", h.Auth.Logout)

	// Sign-up is anonymous for companies and candidates; admins provision the rest.
	v1.Post("/accounts", g.OptionalAuth, h.Accounts.Register)
	v1.Get("/postings", g.OptionalAuth, h.Postings.List)
	v1.Get("/postings/:id", g.OptionalAuth, h.Postings.Get)

	priv := v1.Group("", g.Auth)

	acc := priv.Group("/accounts")
	acc.Get("/", middleware.RequireStaff(), h.Accounts.List)
	acc.Get("/:id", h.Accounts.Get)
	acc.Put("/:id", h.Accounts.Update)
	acc.Delete("/:id", h.Accounts.Delete)
	acc.Get("/:id/applications", h.Applications.ListByApplicant)
	acc.Get("/:id/hiring-status", h.Hirings.Status)

	comp := priv.Group("/companies")
	comp.Get("/", h.Companies.List)
	comp.Post("/", middleware.RequireStaff(), h.Companies.Create)
	comp.Get("/:accountId", h.Companies.Get)
	comp.Patch("/:accountId", h.Companies.Patch)
	comp.Get("/:accountId/stats", h.Stats.Company)

	cand := priv.Group("/candidates/:accountId")
	cand.Get("/profile", h.Candidates.GetProfile)
	cand.Put("/profile", h.Candidates.SaveProfile)
	cand.Get("/experiences", h.Candidates.ListExperiences)
	cand.Post("/experiences", h.Candidates.AddExperience)
	cand.Put("/experiences/:id", h.Candidates.UpdateExperience)
	cand.Delete("/experiences/:id", h.Candidates.DeleteExperience)
	cand.Get("/personal-info", h.Candidates.ListPersonalInfo)
	cand.Post("/personal-info", h.Candidates.AddPersonalInfo)
	cand.Put("/personal-info/:id", h.Candidates.UpdatePersonalInfo)
	cand.Delete("/personal-info/:id", h.Candidates.DeletePersonalInfo)

	post := priv.Group("/postings")
	post.Post("/", h.Postings.Create)
	post.Patch("/:id", h.Postings.Patch)
	post.Delete("/:id", h.Postings.Delete)
	post.Get("/:id/applications", h.Applications.ListByPosting)

	apps := priv.Group("/applications")
	if g.ApplyLimit != nil {
		apps.Post("/", g.ApplyLimit, h.Applications.Apply)
	} else {
		apps.Post("/", h.Applications.Apply)
	}
	apps.Get("/:id", h.Applications.Get)
	apps.Delete("/:id", h.Applications.Cancel)
	apps.Post("/:id/review", h.Applications.Review)
	apps.Post("/:id/hire", h.Applications.Hire)
	apps.Post("/:id/reject", h.Applications.Reject)

	hire := priv.Group("/hirings")
	hire.Post("/", h.Hirings.Create)
	hire.Get("/:id", h.Hirings.Get)
	hire.Post("/:id/payslips", h.Payroll.Issue)
	hire.Get("/:id/payslips", h.Payroll.List)

	priv.Get("/stats/overview", middleware.RequireStaff(), h.Stats.Overview)
}
