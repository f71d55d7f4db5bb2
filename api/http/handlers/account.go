package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/recruiting/api/http/presenter"
	"github.com/artem13815/recruiting/pkg/account"
	"github.com/artem13815/recruiting/pkg/registration"
)

type AccountHandler struct {
	uc  account.UseCase
	reg registration.UseCase
}

func NewAccountHandler(uc account.UseCase, reg registration.UseCase) *AccountHandler {
	return &AccountHandler{uc: uc, reg: reg}
}

type registerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	// Company fields apply to role company only.
	CompanyName   string `json:"companyName"`
	CompanySector string `json:"companySector"`
}

type updateAccountRequest struct {
	Email     *string `json:"email"`
	Password  *string `json:"password"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Phone     *string `json:"phone"`
}

// Register creates an account and its profile.
// @Summary     Register account
// @Description Company and candidate accounts can sign up anonymously; other roles need an admin token.
// @Tags        accounts
// @Accept      json
// @Produce     json
// @Param       input body registerRequest true "registration payload"
// @Success     201 {object} registration.Result
// @Failure     400 {object} presenter.ErrorResponse
// @Failure     403 {object} presenter.ErrorResponse
// @Failure     409 {object} presenter.ErrorResponse
// @Router      /accounts [post]
func (h *AccountHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Fail(c, errInvalidJSON)
	}
	role, err := account.ParseRole(req.Role)
	if err != nil {
		return presenter.Fail(c, err)
	}
	res, err := h.reg.Register(c.Context(), registration.Input{
		Actor: optionalActor(c),
		Account: account.CreateInput{
			Email:     req.Email,
			Password:  req.Password,
			Role:      role,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Phone:     req.Phone,
		},
		CompanyName:   req.CompanyName,
		CompanySector: req.CompanySector,
	})
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusCreated, res)
}

// List returns accounts, newest first.
// @Summary  List accounts
// @Tags     accounts
// @Produce  json
// @Param    limit  query int false "page size"
// @Param    offset query int false "offset"
// @Security BearerAuth
// @Success  200 {array} account.Account
// @Failure  403 {object} presenter.ErrorResponse
// @Router   /accounts [get]
func (h *AccountHandler) List(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return presenter.Fail(c, err)
	}
	limit, offset := parseLimitOffset(c, defaultPageSize)
	items, err := h.uc.List(c.Context(), actor, limit, offset)
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, items)
}

// @Summary  Get account
// @Tags     accounts
// @Produce  json
// @Param    id path string true "account id (UUID)"
// @Security BearerAuth
// @Success  200 {object} account.Account
// @Failure  404 {object} presenter.ErrorResponse
// @Router   /accounts/{id} [get]
func (h *AccountHandler) Get(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return presenter.Fail(c, err)
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return presenter.Fail(c, err)
	}
	a, err := h.uc.Get(c.Context(), actor, id)
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, a)
}

// Update changes contact data or credentials. The role is never editable.
// @Summary  Update account
// @Tags     accounts
// @Accept   json
// @Produce  json
// @Param    id    path string true "account id (UUID)"
// @Param    input body updateAccountRequest true "fields to change"
// @Security BearerAuth
// @Success  200 {object} account.Account
// @Failure  400 {object} presenter.ErrorResponse
// @Failure  403 {object} presenter.ErrorResponse
// @Failure  409 {object} presenter.ErrorResponse
// @Router   /accounts/{id} [put]
func (h *AccountHandler) Update(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return presenter.Fail(c, err)
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return presenter.Fail(c, err)
	}
	var req updateAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Fail(c, errInvalidJSON)
	}
	a, err := h.uc.Update(c.Context(), actor, id, account.UpdateInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, a)
}

// @Summary  Delete account
// @Tags     accounts
// @Param    id path string true "account id (UUID)"
// @Security BearerAuth
// @Success  204
// @Failure  403 {object} presenter.ErrorResponse
// @Failure  409 {object} presenter.ErrorResponse
// @Router   /accounts/{id} [delete]
func (h *AccountHandler) Delete(c *fiber.Ctx) error {
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
