package app

import (
	"context"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/websocket/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/22kyasue/adlottery/internal/audit"
	"github.com/22kyasue/adlottery/internal/booster"
	"github.com/22kyasue/adlottery/internal/cache"
	"github.com/22kyasue/adlottery/internal/casino"
	"github.com/22kyasue/adlottery/internal/config"
	"github.com/22kyasue/adlottery/internal/convert"
	"github.com/22kyasue/adlottery/internal/db"
	"github.com/22kyasue/adlottery/internal/event"
	"github.com/22kyasue/adlottery/internal/jobs"
	"github.com/22kyasue/adlottery/internal/ledger"
	"github.com/22kyasue/adlottery/internal/logger"
	"github.com/22kyasue/adlottery/internal/monitoring"
	"github.com/22kyasue/adlottery/internal/rewards"
	"github.com/22kyasue/adlottery/internal/security"
	"github.com/22kyasue/adlottery/internal/ws"
)

type Server struct {
	app  *fiber.App
	cfg  *config.Config
	jobs *jobs.Manager
}

func NewServer() *Server {
	cfg := config.Load()
	logger.Init()
	monitoring.Init()
	cache.Init(cfg.RedisAddr)
	database := db.Init(cfg.DBPath)

	bus := event.NewBus()
	hub := ws.NewHub()
	auditService := audit.New(database)
	ledgerService := ledger.New(database)

	rewardsService := rewards.New(database, ledgerService, bus)
	boosterService := booster.New(database, ledgerService, booster.AcceptAll{}, bus)
	casinoService := casino.NewService(database, ledgerService, bus)
	convertService := convert.New(database, ledgerService, bus)

	casino.RegisterConsumers(bus, auditService, hub)

	manager := jobs.New()
	manager.Register(&casino.RotationJob{Seeds: casinoService.Seeds()})

	app := fiber.New()

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", websocket.New(hub.Handler))

	verifier := security.NewTokenVerifier(os.Getenv("AUTH_SECRET"))
	api := app.Group("/api", security.AuthGuard(verifier))

	rewards.RegisterRoutes(api, rewardsService)
	booster.RegisterRoutes(api, boosterService)
	casino.RegisterRoutes(api, casinoService)
	convert.RegisterRoutes(api, convertService)

	return &Server{app: app, cfg: cfg, jobs: manager}
}

func (s *Server) Start() error {
	go s.jobs.Start(context.Background())
	return s.app.Listen(":" + s.cfg.Port)
}
