package casino

import (
	"github.com/gofiber/fiber/v2"

	"github.com/22kyasue/adlottery/internal/apperr"
	"github.com/22kyasue/adlottery/internal/security"
)

func RegisterRoutes(r fiber.Router, service *Service) {

	r.Post("/casino/blackjack/deal", func(c *fiber.Ctx) error {
		type Req struct {
			Bet int64 `json:"bet"`
		}
		var body Req
		if err := c.BodyParser(&body); err != nil {
			return apperr.Respond(c, apperr.ErrInvalidBet)
		}

		res, err := service.Deal(security.UserID(c), body.Bet)
		if err != nil {
			return apperr.Respond(c, err)
		}
		return c.JSON(res)
	})

	r.Post("/casino/blackjack/hit", func(c *fiber.Ctx) error {
		res, err := service.Hit(security.UserID(c))
		if err != nil {
			return apperr.Respond(c, err)
		}
		return c.JSON(res)
	})

	r.Post("/casino/blackjack/stand", func(c *fiber.Ctx) error {
		res, err := service.Stand(security.UserID(c))
		if err != nil {
			return apperr.Respond(c, err)
		}
		return c.JSON(res)
	})

	r.Post("/casino/blackjack/forfeit", func(c *fiber.Ctx) error {
		res, err := service.Forfeit(security.UserID(c))
		if err != nil {
			return apperr.Respond(c, err)
		}
		return c.JSON(res)
	})

	r.Get("/casino/blackjack/state", func(c *fiber.Ctx) error {
		res, err := service.State(security.UserID(c))
		if err != nil {
			return apperr.Respond(c, err)
		}
		return c.JSON(res)
	})

	r.Post("/casino/roulette", func(c *fiber.Ctx) error {
		type Req struct {
			Bets []SpinBet `json:"bets"`
		}
		var body Req
		if err := c.BodyParser(&body); err != nil {
			return apperr.Respond(c, apperr.ErrInvalidBets)
		}

		res, err := service.Spin(security.UserID(c), body.Bets)
		if err != nil {
			return apperr.Respond(c, err)
		}
		return c.JSON(res)
	})

	r.Post("/casino/hilo", func(c *fiber.Ctx) error {
		type Req struct {
			Bet   int64  `json:"bet"`
			Guess string `json:"guess"`
		}
		var body Req
		if err := c.BodyParser(&body); err != nil {
			return apperr.Respond(c, apperr.ErrInvalidBet)
		}

		res, err := service.HiLo(security.UserID(c), body.Bet, body.Guess)
		if err != nil {
			return apperr.Respond(c, err)
		}
		return c.JSON(res)
	})

	r.Post("/casino/scratch", func(c *fiber.Ctx) error {
		res, err := service.Scratch(security.UserID(c))
		if err != nil {
			return apperr.Respond(c, err)
		}
		return c.JSON(res)
	})

	r.Get("/casino/leaderboard", func(c *fiber.Ctx) error {
		n := c.QueryInt("n", 10)
		return c.JSON(fiber.Map{
			"top":   service.board.Top(n),
			"stats": service.stats.Snapshot(),
		})
	})
}
