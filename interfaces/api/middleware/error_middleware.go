package middleware

import (
	"github.com/gofiber/fiber/v2"

	"todo-api/pkg/logger"
	"todo-api/pkg/utils"
)

// ErrorHandler translates errors that escape the handlers into the response
// envelope without leaking internal detail.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal server error"

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
			message = e.Message
		}

		logger.ErrorContext(c.UserContext(), "Unhandled error", "error", err, "status", code)

		return utils.StatusResponse(c, code, message)
	}
}
