package apperr

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

var statusByKind = map[Kind]int{
	Unauthorized:      fiber.StatusUnauthorized,
	InvalidInput:      fiber.StatusBadRequest,
	InsufficientFunds: fiber.StatusBadRequest,
	LimitExceeded:     fiber.StatusBadRequest,
	Conflict:          fiber.StatusConflict,
	NotFound:          fiber.StatusNotFound,
	Internal:          fiber.StatusInternalServerError,
}

// Respond translates an error into the JSON shape handlers return.
// Unknown errors are collapsed to a generic internal response so nothing
// leaks across the boundary.
func Respond(c *fiber.Ctx, err error) error {
	var ae *Error
	if !errors.As(err, &ae) {
		ae = ErrInternal
	}

	body := fiber.Map{"error": ae.Message, "code": ae.Code}
	for k, v := range ae.Fields {
		body[k] = v
	}

	status, ok := statusByKind[ae.Kind]
	if !ok {
		status = fiber.StatusInternalServerError
	}
	return c.Status(status).JSON(body)
}
