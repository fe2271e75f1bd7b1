package handlers

import (
	"tixpay/internal/services/sale"
	"tixpay/internal/settlement"
	"tixpay/internal/utils"
	"tixpay/internal/utils/pagination"
	"tixpay/internal/utils/validation"

	"github.com/gofiber/fiber/v2"
)

type SettlementHandler struct {
	saleService sale.Service
}

func NewSettlementHandler(saleService sale.Service) *SettlementHandler {
	return &SettlementHandler{
		saleService: saleService,
	}
}

type settleInput struct {
	SaleReference string `json:"sale_reference"`
	settlement.SaleRequest
	Metadata map[string]interface{} `json:"metadata"`
}

// Quote prices a sale without storing it.
func (h *SettlementHandler) Quote(c *fiber.Ctx) error {
	var req settlement.SaleRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	v := validation.New()
	v.SaleRequest(req)
	if !v.Valid() {
		return utils.Respond(c, fiber.StatusBadRequest, fiber.Map{"error": v.Summary(), "fields": v.Errors})
	}

	b, err := h.saleService.Quote(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.Map{"breakdown": b})
}

// Settle prices a sale and records it. Repeating a settle with the same sale
// reference and inputs returns the original settlement.
func (h *SettlementHandler) Settle(c *fiber.Ctx) error {
	var input settleInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	v := validation.New()
	v.SaleReference(input.SaleReference)
	v.SaleRequest(input.SaleRequest)
	if !v.Valid() {
		return utils.Respond(c, fiber.StatusBadRequest, fiber.Map{"error": v.Summary(), "fields": v.Errors})
	}

	rec, err := h.saleService.Settle(c.Context(), input.SaleReference, input.SaleRequest, input.Metadata)
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.Map{
		"settlement": rec,
		"breakdown":  rec.Breakdown(),
	})
}

func (h *SettlementHandler) GetSettlement(c *fiber.Ctx) error {
	rec, err := h.saleService.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.Map{
		"settlement": rec,
		"breakdown":  rec.Breakdown(),
	})
}

// AuditSettlement re-checks one stored settlement.
func (h *SettlementHandler) AuditSettlement(c *fiber.Ctx) error {
	result, err := h.saleService.Audit(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.Map{"audit": result})
}

// AuditSettlements audits a page of stored settlements (Admin only).
func (h *SettlementHandler) AuditSettlements(c *fiber.Ctx) error {
	p := pagination.ParseFromRequest(c)

	report, err := h.saleService.AuditPage(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}

	p.Total = report.Total
	resp := pagination.Response(p, report.Failures)
	resp["summary"] = fiber.Map{
		"checked": report.Checked,
		"passed":  report.Passed,
		"failed":  len(report.Failures),
	}
	return utils.Success(c, resp)
}
