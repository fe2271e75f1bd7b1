package handlers

import (
	"errors"
	"log"

	apperrors "tixpay/internal/errors"
	"tixpay/internal/services/feeschedule"
	"tixpay/internal/services/sale"
	"tixpay/internal/settlement"
	"tixpay/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// respondError maps service and calculator errors onto client-safe responses.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, settlement.ErrNegativeAmount),
		errors.Is(err, settlement.ErrAmountOutOfRange),
		errors.Is(err, settlement.ErrInvalidInstallments),
		errors.Is(err, sale.ErrMissingSaleReference):
		return utils.DomainError(c, fiber.StatusBadRequest, apperrors.ErrInvalidSaleRequest, err.Error())
	case errors.Is(err, settlement.ErrInvalidDiscount):
		return utils.DomainError(c, fiber.StatusUnprocessableEntity, apperrors.ErrInvalidDiscount, err.Error())
	case errors.Is(err, settlement.ErrFeeExceedsValue):
		return utils.DomainError(c, fiber.StatusUnprocessableEntity, apperrors.ErrFeeExceedsValue, err.Error())
	case errors.Is(err, sale.ErrSaleReferenceConflict):
		return utils.DomainError(c, fiber.StatusConflict, apperrors.ErrSaleReferenceConflict, err.Error())
	case errors.Is(err, sale.ErrSettlementNotFound):
		return utils.DomainError(c, fiber.StatusNotFound, apperrors.ErrSettlementNotFound, "")
	case errors.Is(err, sale.ErrNoActiveSchedule), errors.Is(err, feeschedule.ErrNoActiveSchedule):
		return utils.DomainError(c, fiber.StatusServiceUnavailable, apperrors.ErrScheduleUnavailable, "")
	case errors.Is(err, settlement.ErrInvalidSchedule), errors.Is(err, feeschedule.ErrMissingVersion):
		return utils.DomainError(c, fiber.StatusBadRequest, apperrors.ErrInvalidFeeSchedule, err.Error())
	case errors.Is(err, feeschedule.ErrVersionExists):
		return utils.DomainError(c, fiber.StatusConflict, apperrors.ErrFeeScheduleExists, err.Error())
	case errors.Is(err, feeschedule.ErrVersionNotFound):
		return utils.DomainError(c, fiber.StatusNotFound, apperrors.ErrFeeScheduleNotFound, "")
	case errors.Is(err, settlement.ErrInternalInvariantViolation):
		log.Printf("%s %s: %v", c.Method(), c.Path(), err)
		return utils.DomainError(c, fiber.StatusInternalServerError, apperrors.ErrSettlementUnavailable, "")
	default:
		log.Printf("%s %s: %v", c.Method(), c.Path(), err)
		return utils.InternalError(c, "internal server error")
	}
}
