package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/recruiting/api/http/presenter"
	"github.com/artem13815/recruiting/pkg/company"
)

type CompanyHandler struct {
	uc company.UseCase
}

func NewCompanyHandler(uc company.UseCase) *CompanyHandler { return &CompanyHandler{uc: uc} }

type createCompanyRequest struct {
	AccountID     string `json:"accountId"`
	Name          string `json:"name"`
	Sector        string `json:"sector"`
	ContactPerson string `json:"contactPerson"`
	ContactPhone  string `json:"contactPhone"`
	Address       string `json:"address"`
}

type patchCompanyRequest struct {
	Name          *string `json:"name"`
	Sector        *string `json:"sector"`
	ContactPerson *string `json:"contactPerson"`
	ContactPhone  *string `json:"contactPhone"`
	Address       *string `json:"address"`
}

// @Summary  List companies
// @Tags     companies
// @Produce  json
// @Param    limit  query int false "page size"
// @Param    offset query int false "offset"
// @Security BearerAuth
// @Success  200 {array} company.Profile
// @Router   /companies [get]
func (h *CompanyHandler) List(c *fiber.Ctx) error {
	limit, offset := parseLimitOffset(c, defaultPageSize)
	items, err := h.uc.List(c.Context(), limit, offset)
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, items)
}

// Create attaches a company profile to an existing company account.
// @Summary  Create company profile
// @Tags     companies
// @Accept   json
// @Produce  json
// @Param    input body createCompanyRequest true "company"
// @Security BearerAuth
// @Success  201 {object} company.Profile
// @Failure  400 {object} presenter.ErrorResponse
// @Failure  403 {object} presenter.ErrorResponse
// @Failure  409 {object} presenter.ErrorResponse
// @Router   /companies [post]
func (h *CompanyHandler) Create(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return presenter.Fail(c, err)
	}
	var req createCompanyRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Fail(c, errInvalidJSON)
	}
	accountID, err := parseUUID(req.AccountID)
	if err != nil {
		return presenter.Fail(c, err)
	}
	p, err := h.uc.Create(c.Context(), actor, company.Profile{
		AccountID:     accountID,
		Name:          req.Name,
		Sector:        req.Sector,
		ContactPerson: req.ContactPerson,
		ContactPhone:  req.ContactPhone,
		Address:       req.Address,
	})
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusCreated, p)
}

// @Summary  Get company by account
// @Tags     companies
// @Produce  json
// @Param    accountId path string true "company account id (UUID)"
// @Security BearerAuth
// @Success  200 {object} company.Profile
// @Failure  404 {object} presenter.ErrorResponse
// @Router   /companies/{accountId} [get]
func (h *CompanyHandler) Get(c *fiber.Ctx) error {
	accountID, err := uuidParam(c, "accountId")
	if err != nil {
		return presenter.Fail(c, err)
	}
	p, err := h.uc.GetByAccount(c.Context(), accountID)
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, p)
}

// @Summary  Update company profile
// @Tags     companies
// @Accept   json
// @Produce  json
// @Param    accountId path string true "company account id (UUID)"
// @Param    input     body patchCompanyRequest true "fields to change"
// @Security BearerAuth
// @Success  200 {object} company.Profile
// @Failure  400 {object} presenter.ErrorResponse
// @Failure  403 {object} presenter.ErrorResponse
// @Router   /companies/{accountId} [patch]
func (h *CompanyHandler) Patch(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return presenter.Fail(c, err)
	}
	accountID, err := uuidParam(c, "accountId")
	if err != nil {
		return presenter.Fail(c, err)
	}
	var req patchCompanyRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Fail(c, errInvalidJSON)
	}
	p, err := h.uc.UpdateByAccount(c.Context(), actor, accountID, company.Patch{
		Name:          req.Name,
		Sector:        req.Sector,
		ContactPerson: req.ContactPerson,
		ContactPhone:  req.ContactPhone,
		Address:       req.Address,
	})
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, p)
}
