package booster

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/22kyasue/adlottery/internal/apperr"
	"github.com/22kyasue/adlottery/internal/security"
)

// maxEvidenceBytes caps uploaded history exports.
const maxEvidenceBytes = 50 * 1024 * 1024

func RegisterRoutes(r fiber.Router, service *Service) {

	r.Post("/booster/activate", func(c *fiber.Ctx) error {
		fh, err := c.FormFile("historyFile")
		if err != nil {
			return apperr.Respond(c, apperr.New(apperr.InvalidInput, "no_file",
				"No file uploaded."))
		}
		if fh.Size > maxEvidenceBytes {
			return apperr.Respond(c, apperr.New(apperr.InvalidInput, "file_too_large",
				"File too large. Maximum 50MB."))
		}

		f, err := fh.Open()
		if err != nil {
			return apperr.Respond(c, err)
		}
		raw, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return apperr.Respond(c, err)
		}

		act, err := service.ActivateWithEvidence(security.UserID(c), raw, fh.Filename)
		if err != nil {
			return apperr.Respond(c, err)
		}
		return c.JSON(fiber.Map{"success": true, "expiresAt": act.ExpiresAt,
			"uniqueEntries": act.UniqueEntries, "recentEntries": act.RecentEntries})
	})

	r.Post("/booster/purchase", func(c *fiber.Ctx) error {
		act, err := service.ActivateWithPayment(security.UserID(c))
		if err != nil {
			return apperr.Respond(c, err)
		}
		return c.JSON(fiber.Map{"success": true, "expiresAt": act.ExpiresAt})
	})
}
