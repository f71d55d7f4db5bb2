package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/recruiting/api/http/presenter"
	"github.com/artem13815/recruiting/pkg/payroll"
)

type PayrollHandler struct {
	uc payroll.UseCase
}

func NewPayrollHandler(uc payroll.UseCase) *PayrollHandler { return &PayrollHandler{uc: uc} }

type issuePayslipRequest struct {
	Period     string  `json:"period" example:"2026-09"`
	Deductions float64 `json:"deductions"`
}

// @Summary  Issue payslip
// @Tags     payroll
// @Accept   json
// @Produce  json
// @Param    id    path string true "hiring id (UUID)"
// @Param    input body issuePayslipRequest true "period and deductions"
// @Security BearerAuth
// @Success  201 {object} payroll.Payslip
// @Failure  400 {object} presenter.ErrorResponse
// @Failure  409 {object} presenter.ErrorResponse
// @Router   /hirings/{id}/payslips [post]
func (h *PayrollHandler) Issue(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return presenter.Fail(c, err)
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return presenter.Fail(c, err)
	}
	var req issuePayslipRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Fail(c, errInvalidJSON)
	}
	p, err := h.uc.Issue(c.Context(), actor, id, req.Period, req.Deductions)
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusCreated, p)
}

// @Summary  List payslips
// @Tags     payroll
// @Produce  json
// @Param    id path string true "hiring id (UUID)"
// @Security BearerAuth
// @Success  200 {array} payroll.Payslip
// @Failure  403 {object} presenter.ErrorResponse
// @Router   /hirings/{id}/payslips [get]
func (h *PayrollHandler) List(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return presenter.Fail(c, err)
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return presenter.Fail(c, err)
	}
	items, err := h.uc.List(c.Context(), actor, id)
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, items)
}
