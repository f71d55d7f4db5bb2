package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/recruiting/api/http/presenter"
	"github.com/artem13815/recruiting/pkg/candidate"
)

// CandidateHandler serves /candidates/{accountId}/...
type CandidateHandler struct {
	uc candidate.UseCase
}

func NewCandidateHandler(uc candidate.UseCase) *CandidateHandler { return &CandidateHandler{uc: uc} }

type profileRequest struct {
	Profession string `json:"profession"`
	University string `json:"university"`
	Country    string `json:"country"`
}

type experienceRequest struct {
	Employer  string  `json:"employer"`
	Title     string  `json:"title"`
	StartDate string  `json:"startDate" example:"2022-01-31"`
	EndDate   *string `json:"endDate" example:"2024-06-30"`
}

func (r experienceRequest) toExperience() (candidate.Experience, error) {
	start, err := parseDate("startDate", r.StartDate)
	if err != nil {
		return candidate.Experience{}, err
	}
	end, err := parseOptionalDate("endDate", r.EndDate)
	if err != nil {
		return candidate.Experience{}, err
	}
	return candidate.Experience{Employer: r.Employer, Title: r.Title, StartDate: start, EndDate: end}, nil
}

// @Summary  Get candidate profile
// @Tags     candidates
// @Produce  json
// @Param    accountId path string true "candidate account id (UUID)"
// @Security BearerAuth
// @Success  200 {object} candidate.Profile
// @Failure  403 {object} presenter.ErrorResponse
// @Failure  404 {object} presenter.ErrorResponse
// @Router   /candidates/{accountId}/profile [get]
func (h *CandidateHandler) GetProfile(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return presenter.Fail(c, err)
	}
	accountID, err := uuidParam(c, "accountId")
	if err != nil {
		return presenter.Fail(c, err)
	}
	p, err := h.uc.GetProfile(c.Context(), actor, accountID)
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, p)
}

// @Summary  Create or replace candidate profile
// @Tags     candidates
// @Accept   json
// @Produce  json
// @Param    accountId path string true "candidate account id (UUID)"
// @Param    input     body profileRequest true "profile"
// @Security BearerAuth
// @Success  200 {object} candidate.Profile
// @Failure  403 {object} presenter.ErrorResponse
// @Router   /candidates/{accountId}/profile [put]
func (h *CandidateHandler) SaveProfile(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return presenter.Fail(c, err)
	}
	accountID, err := uuidParam(c, "accountId")
	if err != nil {
		return presenter.Fail(c, err)
	}
	var req profileRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Fail(c, errInvalidJSON)
	}
	p, err := h.uc.SaveProfile(c.Context(), actor, accountID, candidate.ProfileInput{
		Profession: req.Profession,
		University: req.University,
		Country:    req.Country,
	})
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, p)
}

// @Summary  List work experience
// @Tags     candidates
// @Produce  json
// @Param    accountId path string true "candidate account id (UUID)"
// @Security BearerAuth
// @Success  200 {array} candidate.Experience
// @Router   /candidates/{accountId}/experiences [get]
func (h *CandidateHandler) ListExperiences(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return presenter.Fail(c, err)
	}
	accountID, err := uuidParam(c, "accountId")
	if err != nil {
		return presenter.Fail(c, err)
	}
	items, err := h.uc.ListExperiences(c.Context(), actor, accountID)
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, items)
}

// @Summary  Add work experience
// @Tags     candidates
// @Accept   json
// @Produce  json
// @Param    accountId path string true "candidate account id (UUID)"
// @Param    input     body experienceRequest true "experience"
// @Security BearerAuth
// @Success  201 {object} candidate.Experience
// @Failure  400 {object} presenter.ErrorResponse
// @Router   /candidates/{accountId}/experiences [post]
func (h *CandidateHandler) AddExperience(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return presenter.Fail(c, err)
	}
	accountID, err := uuidParam(c, "accountId")
	if err != nil {
		return presenter.Fail(c, err)
	}
	var req experienceRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Fail(c, errInvalidJSON)
	}
	e, err := req.toExperience()
	if err != nil {
		return presenter.Fail(c, err)
	}
	e, err = h.uc.AddExperience(c.Context(), actor, accountID, e)
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusCreated, e)
}

// @Summary  Replace work experience
// @Tags     candidates
// @Accept   json
// @Produce  json
// @Param    accountId path string true "candidate account id (UUID)"
// @Param    id        path string true "experience id (UUID)"
// @Param    input     body experienceRequest true "experience"
// @Security BearerAuth
// @Success  200 {object} candidate.Experience
// @Failure  404 {object} presenter.ErrorResponse
// @Router   /candidates/{accountId}/experiences/{id} [put]
func (h *CandidateHandler) UpdateExperience(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return presenter.Fail(c, err)
	}
	accountID, err := uuidParam(c, "accountId")
	if err != nil {
		return presenter.Fail(c, err)
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return presenter.Fail(c, err)
	}
	var req experienceRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Fail(c, errInvalidJSON)
	}
	e, err := req.toExperience()
	if err != nil {
		return presenter.Fail(c, err)
	}
	e, err = h.uc.UpdateExperience(c.Context(), actor, accountID, id, e)
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, e)
}

// @Summary  Delete work experience
// @Tags     candidates
// @Param    accountId path string true "candidate account id (UUID)"
// @Param    id        path string true "experience id (UUID)"
// @Security BearerAuth
// @Success  204
// @Router   /candidates/{accountId}/experiences/{id} [delete]
func (h *CandidateHandler) DeleteExperience(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return presenter.Fail(c, err)
	}
	accountID, err := uuidParam(c, "accountId")
	if err != nil {
		return presenter.Fail(c, err)
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return presenter.Fail(c, err)
	}
	if err := h.uc.DeleteExperience(c.Context(), actor, accountID, id); err != nil {
		return presenter.Fail(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// @Summary  List personal information
// @Tags     candidates
// @Produce  json
// @Param    accountId path string true "candidate account id (UUID)"
// @Security BearerAuth
// @Success  200 {array} candidate.PersonalInfo
// @Router   /candidates/{accountId}/personal-info [get]
func (h *CandidateHandler) ListPersonalInfo(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return presenter.Fail(c, err)
	}
	accountID, err := uuidParam(c, "accountId")
	if err != nil {
		return presenter.Fail(c, err)
	}
	items, err := h.uc.ListPersonalInfo(c.Context(), actor, accountID)
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, items)
}

// @Summary  Add personal information
// @Tags     candidates
// @Accept   json
// @Produce  json
// @Param    accountId path string true "candidate account id (UUID)"
// @Param    input     body profileRequest true "personal information"
// @Security BearerAuth
// @Success  201 {object} candidate.PersonalInfo
// @Failure  400 {object} presenter.ErrorResponse
// @Router   /candidates/{accountId}/personal-info [post]
func (h *CandidateHandler) AddPersonalInfo(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return presenter.Fail(c, err)
	}
	accountID, err := uuidParam(c, "accountId")
	if err != nil {
		return presenter.Fail(c, err)
	}
	var req profileRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Fail(c, errInvalidJSON)
	}
	p, err := h.uc.AddPersonalInfo(c.Context(), actor, accountID, candidate.PersonalInfo{
		Profession: req.Profession,
		University: req.University,
		Country:    req.Country,
	})
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusCreated, p)
}

// @Summary  Replace personal information
// @Tags     candidates
// @Accept   json
// @Produce  json
// @Param    accountId path string true "candidate account id (UUID)"
// @Param    id        path string true "entry id (UUID)"
// @Param    input     body profileRequest true "personal information"
// @Security BearerAuth
// @Success  200 {object} candidate.PersonalInfo
// @Failure  404 {object} presenter.ErrorResponse
// @Router   /candidates/{accountId}/personal-info/{id} [put]
func (h *CandidateHandler) UpdatePersonalInfo(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return presenter.Fail(c, err)
	}
	accountID, err := uuidParam(c, "accountId")
	if err != nil {
		return presenter.Fail(c, err)
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return presenter.Fail(c, err)
	}
	var req profileRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Fail(c, errInvalidJSON)
	}
	p, err := h.uc.UpdatePersonalInfo(c.Context(), actor, accountID, id, candidate.PersonalInfo{
		Profession: req.Profession,
		University: req.University,
		Country:    req.Country,
	})
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, p)
}

// @Summary  Delete personal information
// @Tags     candidates
// @Param    accountId path string true "candidate account id (UUID)"
// @Param    id        path string true "entry id (UUID)"
// @Security BearerAuth
// @Success  204
// @Router   /candidates/{accountId}/personal-info/{id} [delete]
func (h *CandidateHandler) DeletePersonalInfo(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return presenter.Fail(c, err)
	}
	accountID, err := uuidParam(c, "accountId")
	if err != nil {
		return presenter.Fail(c, err)
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return presenter.Fail(c, err)
	}
	if err := h.uc.DeletePersonalInfo(c.Context(), actor, accountID, id); err != nil {
		return presenter.Fail(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}
