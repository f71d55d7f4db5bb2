package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/recruiting/api/http/presenter"
	"github.com/artem13815/recruiting/pkg/apperror"
	"github.com/artem13815/recruiting/pkg/auth"
)

type AuthHandler struct {
	useCase auth.AuthUseCase
}

func NewAuthHandler(useCase auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{useCase: useCase}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	auth.TokenPair
	User auth.UserSummary `json:"user"`
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

// Login handles user login.
// @Summary Login
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body loginRequest true "login payload"
// @Success 200 {object} loginResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Fail(c, errInvalidJSON)
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return presenter.Fail(c, apperror.Validation("email and password are required"))
	}

	result, err := h.useCase.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, loginResponse{TokenPair: result.Tokens, User: result.User})
}

// Refresh rotates a refresh token.
// @Summary Refresh tokens
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body refreshRequest true "refresh token"
// @Success 200 {object} auth.TokenPair
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /token/refresh [post]
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req refreshRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Fail(c, errInvalidJSON)
	}
	if strings.TrimSpace(req.Refresh) == "" {
		return presenter.Fail(c, apperror.Validation("refresh is required"))
	}
	pair, err := h.useCase.Refresh(c.Context(), req.Refresh)
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, pair)
}

// Logout revokes a refresh token.
// @Summary Logout
// @Tags    auth
// @Accept  json
// @Param   input body refreshRequest true "refresh token"
// @Success 204
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var req refreshRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Fail(c, errInvalidJSON)
	}
	if strings.TrimSpace(req.Refresh) == "" {
		return presenter.Fail(c, apperror.Validation("refresh is required"))
	}
	if err := h.useCase.Logout(c.Context(), req.Refresh); err != nil {
		return presenter.Fail(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}
