package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/recruiting/api/http/presenter"
	"github.com/artem13815/recruiting/pkg/stats"
)

type StatsHandler struct {
	uc stats.UseCase
}

func NewStatsHandler(uc stats.UseCase) *StatsHandler { return &StatsHandler{uc: uc} }

// Company returns the dashboard counters of one company.
// @Summary  Company statistics
// @Tags     stats
// @Produce  json
// @Param    accountId path string true "company account id (UUID)"
// @Security BearerAuth
// @Success  200 {object} stats.CompanyStats
// @Failure  403 {object} presenter.ErrorResponse
// @Failure  404 {object} presenter.ErrorResponse
// @Router   /companies/{accountId}/stats [get]
func (h *StatsHandler) Company(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return presenter.Fail(c, err)
	}
	accountID, err := uuidParam(c, "accountId")
	if err != nil {
		return presenter.Fail(c, err)
	}
	s, err := h.uc.CompanyStats(c.Context(), actor, accountID)
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, s)
}

// @Summary  Platform overview
// @Tags     stats
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} stats.Overview
// @Failure  403 {object} presenter.ErrorResponse
// @Router   /stats/overview [get]
func (h *StatsHandler) Overview(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return presenter.Fail(c, err)
	}
	o, err := h.uc.Overview(c.Context(), actor)
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, o)
}
