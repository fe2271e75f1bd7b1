// Package main is the entry point of the settlement API.
// It connects storage, activates the fee schedule, sets up the HTTP server
// and starts the application.
package main

import (
	"context"
	"log"
	"time"

	"tixpay/internal/config"
	"tixpay/internal/repositories"
	"tixpay/internal/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	config.LoadEnv()

	// Initialize databases (PostgreSQL + Redis)
	if err := repositories.InitDB(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer repositories.Close()

	sqlDB, err := repositories.DB.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}
	if err := sqlDB.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	log.Println("✅ Successfully connected to database with connection pooling")

	// Periodic check of connection pool stats
	go func() {
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			stats := sqlDB.Stats()
			log.Printf("DB Stats: Open=%d, Idle=%d, InUse=%d, WaitCount=%d, WaitDuration=%s",
				stats.OpenConnections, stats.Idle, stats.InUse, stats.WaitCount, stats.WaitDuration)
		}
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(sqlDB, config.GetEnv("DB_NAME", "tixpay")),
	)

	svc := routes.NewServices(reg)

	fallback, err := config.DefaultScheduleConfig()
	if err != nil {
		log.Fatalf("Failed to load fee schedule configuration: %v", err)
	}
	refreshEvery, err := config.GetDurationEnv("FEE_SCHEDULE_REFRESH_INTERVAL", 30*time.Second)
	if err != nil {
		log.Fatalf("Failed to load fee schedule configuration: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	err = svc.Schedules.Bootstrap(ctx, fallback)
	cancel()
	if err != nil {
		log.Fatalf("Failed to activate fee schedule: %v", err)
	}
	log.Printf("✅ Fee schedule %s active", svc.Schedules.Active().Version())

	// Versions published by other replicas or by schedule_seed
	if refreshEvery > 0 {
		go func() {
			ticker := time.NewTicker(refreshEvery)
			defer ticker.Stop()
			for range ticker.C {
				ctx, cancel := context.WithTimeout(context.Background(), refreshEvery)
				if err := svc.Schedules.Refresh(ctx); err != nil {
					log.Printf("Failed to refresh fee schedule: %v", err)
				}
				cancel()
			}
		}()
	}

	app := fiber.New(fiber.Config{
		AppName: "tixpay",
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: config.GetEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173"),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,HEAD",
	}))

	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// Checkout pages request a quote on every cart change.
	app.Use("/api/settlements/quote", limiter.New(limiter.Config{
		Max:        config.GetIntEnv("QUOTE_RATE_LIMIT_PER_MINUTE", 120),
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests. Please try again later.",
			})
		},
	}))

	routes.SetupRoutes(app, svc, reg)

	log.Fatal(app.Listen(":" + config.GetEnv("PORT", "3000")))
}
