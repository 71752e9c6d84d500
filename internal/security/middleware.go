package security

import (
	"github.com/gofiber/fiber/v2"

	"github.com/22kyasue/adlottery/internal/apperr"
)

// Identity resolves an opaque session token to a user id. The real identity
// provider lives outside the core; TokenVerifier is the default wiring.
type Identity interface {
	Resolve(token string) (string, error)
}

// AuthGuard authenticates every /api request and stashes the opaque user id
// in locals for handlers.
func AuthGuard(idp Identity) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, err := idp.Resolve(c.Get("X-Session-Token"))
		if err != nil || uid == "" {
			return apperr.Respond(c, apperr.ErrUnauthorized)
		}
		c.Locals("uid", uid)
		return c.Next()
	}
}

// UserID returns the authenticated user id set by AuthGuard.
func UserID(c *fiber.Ctx) string {
	uid, _ := c.Locals("uid").(string)
	return uid
}
