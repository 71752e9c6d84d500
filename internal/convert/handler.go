package convert

import (
	"github.com/gofiber/fiber/v2"

	"github.com/22kyasue/adlottery/internal/apperr"
	"github.com/22kyasue/adlottery/internal/security"
)

func RegisterRoutes(r fiber.Router, service *Service) {

	r.Post("/convert", func(c *fiber.Ctx) error {
		type Req struct {
			Amount int64 `json:"amount"`
		}
		var body Req
		if err := c.BodyParser(&body); err != nil {
			return apperr.Respond(c, apperr.New(apperr.InvalidInput, "invalid_amount",
				"Invalid amount. Must be a positive integer."))
		}

		res, err := service.Convert(security.UserID(c), body.Amount)
		if err != nil {
			return apperr.Respond(c, err)
		}
		return c.JSON(res)
	})

	r.Get("/convert/cap", func(c *fiber.Ctx) error {
		st, err := service.CapStatus()
		if err != nil {
			return apperr.Respond(c, err)
		}
		return c.JSON(st)
	})
}
