package handlers

import (
	"context"
	"time"

	"tixpay/internal/repositories/cache"

	"github.com/gofiber/fiber/v2"
)

// HealthCheckFunc reports whether one dependency is reachable.
type HealthCheckFunc func(ctx context.Context) error

type HealthHandler struct {
	checks  map[string]HealthCheckFunc
	cache   *cache.CacheService
	version func() string
}

// NewHealthHandler builds the health endpoints. activeVersion reports the fee
// schedule in force, or "" when none is.
func NewHealthHandler(checks map[string]HealthCheckFunc, cacheService *cache.CacheService, activeVersion func() string) *HealthHandler {
	return &HealthHandler{
		checks:  checks,
		cache:   cacheService,
		version: activeVersion,
	}
}

func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	status := "ok"
	code := fiber.StatusOK
	services := fiber.Map{}
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			services[name] = err.Error()
			status = "degraded"
			code = fiber.StatusServiceUnavailable
			continue
		}
		services[name] = "connected"
	}

	scheduleVersion := h.version()
	if scheduleVersion == "" {
		status = "degraded"
		code = fiber.StatusServiceUnavailable
	}

	return c.Status(code).JSON(fiber.Map{
		"status":       status,
		"version":      "1.0.0",
		"fee_schedule": scheduleVersion,
		"services":     services,
	})
}

func (h *HealthHandler) CacheStats(c *fiber.Ctx) error {
	if h.cache == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "cache not configured"})
	}
	poolStats := h.cache.GetStats()

	return c.JSON(fiber.Map{
		"pool_stats": fiber.Map{
			"hits":        poolStats.Hits,
			"misses":      poolStats.Misses,
			"timeouts":    poolStats.Timeouts,
			"total_conns": poolStats.TotalConns,
			"idle_conns":  poolStats.IdleConns,
			"stale_conns": poolStats.StaleConns,
		},
	})
}
