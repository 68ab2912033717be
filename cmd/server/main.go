package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/classpulse/classpulse/internal/api"
	"github.com/classpulse/classpulse/internal/config"
	"github.com/classpulse/classpulse/internal/db"
	"github.com/classpulse/classpulse/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if cfg.SecretKey == "" {
		log.Fatal("CLASSPULSE_SECRET_KEY must be set")
	}

	sqlDB, err := db.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer sqlDB.Close()

	if err := db.RunMigrations(sqlDB, cfg.MigrationsDir); err != nil {
		log.Fatalf("run migrations: %v", err)
	}
	store, err := db.NewSQLiteStore(sqlDB)
	if err != nil {
		log.Fatalf("init store: %v", err)
	}

	auth := services.NewAuthService(store, cfg.SecretKey, cfg.TokenTTL)
	if err := auth.EnsureAdmin(cfg.AdminEmail, cfg.AdminPassword, cfg.AdminName); err != nil {
		log.Fatalf("bootstrap admin: %v", err)
	}

	app := fiber.New(fiber.Config{
		AppName: "ClassPulse API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"message": err.Error()})
		},
	})
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.CORSOrigins}))

	api.Register(app, api.Deps{
		Auth:      auth,
		Responses: services.NewResponseService(store),
		Analytics: services.NewAnalyticsService(store),
		Rollups:   services.NewRollupService(store),
		Export:    services.NewExportService(store),
		Registry:  services.NewRegistryService(store),
	})

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Println("shutting down")
		if err := app.Shutdown(); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("ClassPulse listening on %s", cfg.Addr)
	if err := app.Listen(cfg.Addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
