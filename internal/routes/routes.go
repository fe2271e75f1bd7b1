// Package routes defines the API routing configuration.
// It wires repositories, services and handlers and applies the authentication
// and permission requirements of each route group.
package routes

import (
	"context"

	"tixpay/internal/handlers"
	"tixpay/internal/middleware"
	"tixpay/internal/models"
	"tixpay/internal/repositories"
	"tixpay/internal/services/feeschedule"
	"tixpay/internal/services/sale"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Services are the long-lived services SetupRoutes serves.
type Services struct {
	Schedules feeschedule.Service
	Sales     sale.Service
}

// NewServices builds the services on top of the global database and cache.
// Metrics are registered with reg.
func NewServices(reg prometheus.Registerer) Services {
	var cache feeschedule.Cache
	if repositories.CacheService != nil {
		cache = repositories.CacheService
	}
	schedules := feeschedule.NewService(
		repositories.NewFeeScheduleRepository(repositories.DB),
		cache,
		feeschedule.NewStore(nil),
	)
	sales := sale.NewService(
		repositories.NewSettlementRepository(repositories.DB),
		schedules,
		sale.NewPrometheusMetrics(reg),
	)
	return Services{Schedules: schedules, Sales: sales}
}

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, svc Services, gatherer prometheus.Gatherer) {
	checks := map[string]handlers.HealthCheckFunc{
		"database": func(ctx context.Context) error {
			sqlDB, err := repositories.DB.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
	if repositories.CacheService != nil {
		checks["redis"] = repositories.CacheService.HealthCheck
	}
	healthHandler := handlers.NewHealthHandler(
		checks,
		repositories.CacheService,
		func() string {
			if active := svc.Schedules.Active(); active != nil {
				return active.Version()
			}
			return ""
		},
	)
	settlementHandler := handlers.NewSettlementHandler(svc.Sales)
	scheduleHandler := handlers.NewFeeScheduleHandler(svc.Schedules)

	// Public endpoints (no auth required)
	app.Get("/health", healthHandler.HealthCheck)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Welcome to TixPay settlement API",
			"version": "1.0.0",
			"docs":    "/api",
		})
	})

	api := app.Group("/api", middleware.AuthMiddleware)

	setupSettlementRoutes(api, settlementHandler)
	setupFeeScheduleRoutes(api, scheduleHandler)
	setupAdminRoutes(api, settlementHandler, scheduleHandler, healthHandler)
}

func setupSettlementRoutes(router fiber.Router, h *handlers.SettlementHandler) {
	settlements := router.Group("/settlements")

	settlements.Post("/quote", middleware.HasPermission(models.PermissionSettlementRead), h.Quote)
	settlements.Post("/", middleware.HasPermission(models.PermissionSettlementWrite), h.Settle)
	settlements.Get("/:id", middleware.HasPermission(models.PermissionSettlementRead), h.GetSettlement)
	settlements.Post("/:id/audit", middleware.HasPermission(models.PermissionAuditRead), h.AuditSettlement)
}

func setupFeeScheduleRoutes(router fiber.Router, h *handlers.FeeScheduleHandler) {
	schedules := router.Group("/fee-schedules", middleware.HasPermission(models.PermissionFeeScheduleRead))

	schedules.Get("/", h.ListVersions)
	schedules.Get("/active", h.GetActive)
	schedules.Get("/:version", h.GetVersion)
}

func setupAdminRoutes(
	router fiber.Router,
	settlementHandler *handlers.SettlementHandler,
	scheduleHandler *handlers.FeeScheduleHandler,
	healthHandler *handlers.HealthHandler,
) {
	admin := router.Group("/admin", middleware.AdminAuthMiddleware)

	admin.Post("/fee-schedules", middleware.HasPermission(models.PermissionFeeScheduleWrite), scheduleHandler.Publish)
	admin.Get("/settlements/audit", middleware.HasPermission(models.PermissionAuditRead), settlementHandler.AuditSettlements)
	admin.Get("/cache-stats", middleware.HasPermission(models.PermissionReadAdmin), healthHandler.CacheStats)
}
