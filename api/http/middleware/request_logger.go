package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/artem13815/recruiting/api/http/presenter"
	"github.com/artem13815/recruiting/pkg/security/jwt"
)

const LocalRequestID = "requestId"

func RequestLogger(l logrus.FieldLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		reqID := c.Get(fiber.HeaderXRequestID)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Set(fiber.HeaderXRequestID, reqID)
		c.Locals(LocalRequestID, reqID)

		chainErr := c.Next()
		if chainErr != nil {
			// let the app error handler write the response before we read the status
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		entry := l.WithFields(logrus.Fields{
			"request_id": reqID,
			"method":     c.Method(),
			"path":       c.Path(),
			"status":     status,
			"latency_ms": time.Since(start).Milliseconds(),
			"ip":         c.IP(),
		})
		if userID, ok := c.Locals(jwt.LocalUserID).(string); ok {
			entry = entry.WithField("user_id", userID)
		}
		if err, ok := c.Locals(presenter.LocalError).(error); ok {
			entry = entry.WithError(err)
		} else if chainErr != nil {
			entry = entry.WithError(chainErr)
		}

		switch {
		case status >= 500:
			entry.Error("request")
		case status >= 400:
			entry.Warn("request")
		default:
			entry.Info("request")
		}
		return nil
	}
}
