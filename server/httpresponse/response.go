package httpresponse

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

// Envelope is the uniform response body for all JSON endpoints.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ApplySuccessToResponse writes a success envelope with the given payload.
func ApplySuccessToResponse(c *fiber.Ctx, data interface{}) error {
	return c.JSON(Envelope{
		Success: true,
		Data:    data,
	})
}

// ApplyErrorToResponse logs the cause and writes a 500 error envelope
// carrying the user-facing message.
func ApplyErrorToResponse(c *fiber.Ctx, message string, err error) error {
	if err != nil {
		log.Error(message, ": ", err)
	} else {
		log.Error(message)
	}

	return c.Status(fiber.StatusInternalServerError).JSON(Envelope{
		Success: false,
		Error:   message,
	})
}

// ApplyValidationErrorToResponse writes a 400 error envelope for a
// request the caller can correct. The cause is not logged as a server
// error.
func ApplyValidationErrorToResponse(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(Envelope{
		Success: false,
		Error:   message,
	})
}

// ApplyNotFoundToResponse writes a 404 error envelope.
func ApplyNotFoundToResponse(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(Envelope{
		Success: false,
		Error:   message,
	})
}
