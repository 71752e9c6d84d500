package rewards

import (
	"github.com/gofiber/fiber/v2"

	"github.com/22kyasue/adlottery/internal/apperr"
	"github.com/22kyasue/adlottery/internal/security"
)

func RegisterRoutes(r fiber.Router, service *Service) {

	r.Post("/ads/verify", func(c *fiber.Ctx) error {
		res, err := service.VerifyAd(security.UserID(c))
		if err != nil {
			return apperr.Respond(c, err)
		}
		return c.JSON(res)
	})

	r.Get("/pool", func(c *fiber.Ctx) error {
		weekID, total := service.PoolTotal()
		return c.JSON(fiber.Map{"weekId": weekID, "total": total})
	})
}
