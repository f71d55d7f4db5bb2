package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/recruiting/api/http/presenter"
	"github.com/artem13815/recruiting/pkg/hiring"
)

type HiringHandler struct {
	uc hiring.UseCase
}

func NewHiringHandler(uc hiring.UseCase) *HiringHandler { return &HiringHandler{uc: uc} }

type createHiringRequest struct {
	ApplicationID    string  `json:"applicationId"`
	Term             string  `json:"term" example:"6 meses"`
	MonthlySalary    float64 `json:"monthlySalary"`
	StartDate        string  `json:"startDate" example:"2026-11-01"`
	Bank             string  `json:"bank"`
	AccountNumber    string  `json:"accountNumber"`
	BloodType        string  `json:"bloodType"`
	EmergencyContact string  `json:"emergencyContact"`
	EmergencyPhone   string  `json:"emergencyPhone"`
}

// Create records the employment terms of a hired application.
// @Summary  Create hiring record
// @Tags     hirings
// @Accept   json
// @Produce  json
// @Param    input body createHiringRequest true "hiring terms"
// @Security BearerAuth
// @Success  201 {object} hiring.Record
// @Failure  400 {object} presenter.ErrorResponse
// @Failure  404 {object} presenter.ErrorResponse
// @Failure  409 {object} presenter.ErrorResponse
// @Router   /hirings [post]
func (h *HiringHandler) Create(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return presenter.Fail(c, err)
	}
	var req createHiringRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Fail(c, errInvalidJSON)
	}
	appID, err := parseUUID(req.ApplicationID)
	if err != nil {
		return presenter.Fail(c, err)
	}
	var start time.Time
	if strings.TrimSpace(req.StartDate) != "" {
		if start, err = parseDate("startDate", req.StartDate); err != nil {
			return presenter.Fail(c, err)
		}
	}
	rec, err := h.uc.Create(c.Context(), actor, appID, hiring.Terms{
		Term:             hiring.Term(req.Term),
		MonthlySalary:    req.MonthlySalary,
		StartDate:        start,
		BankName:         req.Bank,
		AccountNumber:    req.AccountNumber,
		BloodType:        req.BloodType,
		EmergencyContact: req.EmergencyContact,
		EmergencyPhone:   req.EmergencyPhone,
	})
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusCreated, rec)
}

// @Summary  Get hiring record
// @Tags     hirings
// @Produce  json
// @Param    id path string true "hiring id (UUID)"
// @Security BearerAuth
// @Success  200 {object} hiring.Record
// @Failure  404 {object} presenter.ErrorResponse
// @Router   /hirings/{id} [get]
func (h *HiringHandler) Get(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return presenter.Fail(c, err)
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return presenter.Fail(c, err)
	}
	rec, err := h.uc.Get(c.Context(), actor, id)
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, rec)
}

// @Summary  Hiring status of an account
// @Tags     hirings
// @Produce  json
// @Param    id path string true "account id (UUID)"
// @Security BearerAuth
// @Success  200 {object} hiring.Status
// @Failure  403 {object} presenter.ErrorResponse
// @Router   /accounts/{id}/hiring-status [get]
func (h *HiringHandler) Status(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return presenter.Fail(c, err)
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return presenter.Fail(c, err)
	}
	st, err := h.uc.Status(c.Context(), actor, id)
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, st)
}
