package handlers

import (
	"tixpay/internal/middleware"
	"tixpay/internal/services/feeschedule"
	"tixpay/internal/settlement"
	"tixpay/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type FeeScheduleHandler struct {
	scheduleService feeschedule.Service
}

func NewFeeScheduleHandler(scheduleService feeschedule.Service) *FeeScheduleHandler {
	return &FeeScheduleHandler{
		scheduleService: scheduleService,
	}
}

func (h *FeeScheduleHandler) GetActive(c *fiber.Ctx) error {
	active := h.scheduleService.Active()
	if active == nil {
		return respondError(c, feeschedule.ErrNoActiveSchedule)
	}
	return utils.Success(c, fiber.Map{"schedule": active.Config()})
}

func (h *FeeScheduleHandler) GetVersion(c *fiber.Ctx) error {
	schedule, err := h.scheduleService.Version(c.Context(), c.Params("version"))
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.Map{"schedule": schedule.Config()})
}

func (h *FeeScheduleHandler) ListVersions(c *fiber.Ctx) error {
	versions, err := h.scheduleService.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.Map{"fee_schedules": versions})
}

// Publish stores a new schedule version and makes it active (Admin only).
func (h *FeeScheduleHandler) Publish(c *fiber.Ctx) error {
	claims := middleware.Claims(c)
	if claims == nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var cfg settlement.ScheduleConfig
	if err := c.BodyParser(&cfg); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	row, err := h.scheduleService.Publish(c.Context(), cfg, claims.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return utils.Created(c, fiber.Map{"fee_schedule": row})
}
