package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/artem13815/recruiting/api/http/presenter"
	"github.com/artem13815/recruiting/pkg/account"
	"github.com/artem13815/recruiting/pkg/posting"
)

type PostingHandler struct {
	uc posting.UseCase
}

func NewPostingHandler(uc posting.UseCase) *PostingHandler { return &PostingHandler{uc: uc} }

type createPostingRequest struct {
	// OwnerID is required for staff, optional for a company posting for itself.
	OwnerID     string  `json:"ownerId"`
	Profession  string  `json:"profession"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Salary      float64 `json:"salary"`
	State       string  `json:"state" example:"Abierta"`
}

type patchPostingRequest struct {
	Profession  *string  `json:"profession"`
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Salary      *float64 `json:"salary"`
	State       *string  `json:"state"`
	Active      *bool    `json:"active"`
}

// @Summary  Create posting
// @Tags     postings
// @Accept   json
// @Produce  json
// @Param    input body createPostingRequest true "posting"
// @Security BearerAuth
// @Success  201 {object} posting.Posting
// @Failure  400 {object} presenter.ErrorResponse
// @Failure  403 {object} presenter.ErrorResponse
// @Router   /postings [post]
func (h *PostingHandler) Create(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return presenter.Fail(c, err)
	}
	var req createPostingRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Fail(c, errInvalidJSON)
	}
	var owner uuid.UUID
	if strings.TrimSpace(req.OwnerID) != "" {
		if owner, err = parseUUID(req.OwnerID); err != nil {
			return presenter.Fail(c, err)
		}
	}
	p, err := h.uc.Create(c.Context(), actor, posting.CreateInput{
		OwnerID:     owner,
		Profession:  req.Profession,
		Title:       req.Title,
		Description: req.Description,
		Salary:      req.Salary,
		State:       req.State,
	})
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusCreated, p)
}

// List returns postings, optionally of one company account.
// @Summary  List postings
// @Tags     postings
// @Produce  json
// @Param    ownerId query string false "company account id (UUID)"
// @Param    limit   query int    false "page size"
// @Param    offset  query int    false "offset"
// @Success  200 {array} posting.Posting
// @Router   /postings [get]
func (h *PostingHandler) List(c *fiber.Ctx) error {
	var actor account.Actor
	if a := optionalActor(c); a != nil {
		actor = *a
	}
	q := posting.Query{}
	q.Limit, q.Offset = parseLimitOffset(c, defaultPageSize)
	if v := strings.TrimSpace(c.Query("ownerId")); v != "" {
		owner, err := parseUUID(v)
		if err != nil {
			return presenter.Fail(c, err)
		}
		q.OwnerID = &owner
	}
	items, err := h.uc.List(c.Context(), actor, q)
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, items)
}

// @Summary  Get posting
// @Tags     postings
// @Produce  json
// @Param    id path string true "posting id (UUID)"
// @Success  200 {object} posting.Posting
// @Failure  404 {object} presenter.ErrorResponse
// @Router   /postings/{id} [get]
func (h *PostingHandler) Get(c *fiber.Ctx) error {
	var actor account.Actor
	if a := optionalActor(c); a != nil {
		actor = *a
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return presenter.Fail(c, err)
	}
	p, err := h.uc.Get(c.Context(), actor, id)
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, p)
}

// @Summary  Update posting
// @Tags     postings
// @Accept   json
// @Produce  json
// @Param    id    path string true "posting id (UUID)"
// @Param    input body patchPostingRequest true "fields to change"
// @Security BearerAuth
// @Success  200 {object} posting.Posting
// @Failure  400 {object} presenter.ErrorResponse
// @Failure  403 {object} presenter.ErrorResponse
// @Router   /postings/{id} [patch]
func (h *PostingHandler) Patch(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return presenter.Fail(c, err)
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return presenter.Fail(c, err)
	}
	var req patchPostingRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Fail(c, errInvalidJSON)
	}
	p, err := h.uc.Update(c.Context(), actor, id, posting.Patch{
		Profession:  req.Profession,
		Title:       req.Title,
		Description: req.Description,
		Salary:      req.Salary,
		State:       req.State,
		Active:      req.Active,
	})
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, p)
}

// @Summary  Delete posting
// @Tags     postings
// @Param    id path string true "posting id (UUID)"
// @Security BearerAuth
// @Success  204
// @Failure  409 {object} presenter.ErrorResponse
// @Router   /postings/{id} [delete]
func (h *PostingHandler) Delete(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return presenter.Fail(c, err)
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return presenter.Fail(c, err)
	}
	if err := h.uc.Delete(c.Context(), actor, id); err != nil {
		return presenter.Fail(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}
