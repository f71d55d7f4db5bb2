package handlers

import (
	"context"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/artem13815/recruiting/api/http/presenter"
	"github.com/artem13815/recruiting/pkg/account"
	"github.com/artem13815/recruiting/pkg/application"
)

type ApplicationHandler struct {
	uc application.UseCase
}

func NewApplicationHandler(uc application.UseCase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

type applyRequest struct {
	PostingID      string `json:"postingId"`
	ApplicantEmail string `json:"applicantEmail"`
}

// Apply files a pending application of the applicant against the posting.
// @Summary  Apply to a posting
// @Tags     applications
// @Accept   json
// @Produce  json
// @Param    input body applyRequest true "posting and applicant"
// @Security BearerAuth
// @Success  201 {object} application.Application
// @Failure  400 {object} presenter.ErrorResponse
// @Failure  404 {object} presenter.ErrorResponse
// @Failure  409 {object} presenter.ErrorResponse
// @Failure  429 {object} presenter.ErrorResponse
// @Router   /applications [post]
func (h *ApplicationHandler) Apply(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return presenter.Fail(c, err)
	}
	var req applyRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Fail(c, errInvalidJSON)
	}
	postingID, err := parseUUID(req.PostingID)
	if err != nil {
		return presenter.Fail(c, err)
	}
	a, err := h.uc.Apply(c.Context(), actor, postingID, req.ApplicantEmail)
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusCreated, a)
}

// @Summary  Get application
// @Tags     applications
// @Produce  json
// @Param    id path string true "application id (UUID)"
// @Security BearerAuth
// @Success  200 {object} application.Application
// @Failure  404 {object} presenter.ErrorResponse
// @Router   /applications/{id} [get]
func (h *ApplicationHandler) Get(c *fiber.Ctx) error {
	return h.withApplication(c, http.StatusOK, h.uc.Get)
}

// @Summary  List applications of a posting
// @Tags     applications
// @Produce  json
// @Param    id path string true "posting id (UUID)"
// @Security BearerAuth
// @Success  200 {array} application.Application
// @Failure  403 {object} presenter.ErrorResponse
// @Router   /postings/{id}/applications [get]
func (h *ApplicationHandler) ListByPosting(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return presenter.Fail(c, err)
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return presenter.Fail(c, err)
	}
	items, err := h.uc.ListByPosting(c.Context(), actor, id)
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, items)
}

// @Summary  List applications of an account
// @Tags     applications
// @Produce  json
// @Param    id path string true "account id (UUID)"
// @Security BearerAuth
// @Success  200 {array} application.Application
// @Failure  403 {object} presenter.ErrorResponse
// @Router   /accounts/{id}/applications [get]
func (h *ApplicationHandler) ListByApplicant(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return presenter.Fail(c, err)
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return presenter.Fail(c, err)
	}
	items, err := h.uc.ListByApplicant(c.Context(), actor, id)
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, items)
}

// @Summary  Mark application as reviewed
// @Tags     applications
// @Produce  json
// @Param    id path string true "application id (UUID)"
// @Security BearerAuth
// @Success  200 {object} application.Application
// @Failure  409 {object} presenter.ErrorResponse
// @Router   /applications/{id}/review [post]
func (h *ApplicationHandler) Review(c *fiber.Ctx) error {
	return h.withApplication(c, http.StatusOK, h.uc.Review)
}

// Hire finalizes the application, promotes the applicant to employee and
// closes the posting.
// @Summary  Hire applicant
// @Tags     applications
// @Produce  json
// @Param    id path string true "application id (UUID)"
// @Security BearerAuth
// @Success  200 {object} application.Application
// @Failure  403 {object} presenter.ErrorResponse
// @Failure  409 {object} presenter.ErrorResponse
// @Router   /applications/{id}/hire [post]
func (h *ApplicationHandler) Hire(c *fiber.Ctx) error {
	return h.withApplication(c, http.StatusOK, h.uc.Hire)
}

// @Summary  Reject application
// @Tags     applications
// @Produce  json
// @Param    id path string true "application id (UUID)"
// @Security BearerAuth
// @Success  200 {object} application.Application
// @Failure  409 {object} presenter.ErrorResponse
// @Router   /applications/{id}/reject [post]
func (h *ApplicationHandler) Reject(c *fiber.Ctx) error {
	return h.withApplication(c, http.StatusOK, h.uc.Reject)
}

// @Summary  Cancel application
// @Tags     applications
// @Param    id path string true "application id (UUID)"
// @Security BearerAuth
// @Success  204
// @Failure  409 {object} presenter.ErrorResponse
// @Router   /applications/{id} [delete]
func (h *ApplicationHandler) Cancel(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return presenter.Fail(c, err)
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return presenter.Fail(c, err)
	}
	if err := h.uc.Cancel(c.Context(), actor, id); err != nil {
		return presenter.Fail(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

type applicationAction func(ctx context.Context, actor account.Actor, id uuid.UUID) (application.Application, error)

func (h *ApplicationHandler) withApplication(c *fiber.Ctx, status int, action applicationAction) error {
	actor, err := actorFrom(c)
	if err != nil {
		return presenter.Fail(c, err)
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return presenter.Fail(c, err)
	}
	a, err := action(c.Context(), actor, id)
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, status, a)
}
