package presenter

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/recruiting/pkg/apperror"
)

// LocalError is where Fail leaves the original error for the request logger.
const LocalError = "error"

type ErrorResponse struct {
	Message string `json:"message"`
}

func JSON(c *fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(v)
}

func Error(c *fiber.Ctx, status int, message string) error {
	return JSON(c, status, ErrorResponse{Message: message})
}

// Fail writes err using its apperror code. Internal causes stay in the logs.
func Fail(c *fiber.Ctx, err error) error {
	c.Locals(LocalError, err)
	return Error(c, apperror.HTTPStatus(err), apperror.PublicMessage(err))
}

// ErrorHandler renders errors that escape handlers, such as unknown routes.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return Error(c, fe.Code, fe.Message)
	}
	return Fail(c, err)
}
