package sale

import (
	"context"
	"time"

	"tixpay/internal/models"
	"tixpay/internal/settlement"
)

// Service defines the checkout settlement workflow
type Service interface {
	// Quote prices a sale against the active schedule without storing anything.
	Quote(ctx context.Context, req settlement.SaleRequest) (settlement.Breakdown, error)
	// Settle prices a sale and stores the result under its sale reference.
	Settle(ctx context.Context, saleReference string, req settlement.SaleRequest, metadata map[string]interface{}) (*models.SettlementRecord, error)
	Get(ctx context.Context, id string) (*models.SettlementRecord, error)

	// Audit re-checks a stored settlement.
	Audit(ctx context.Context, id string) (*AuditResult, error)
	AuditPage(ctx context.Context, limit, offset int) (*AuditReport, error)
}

type Repository interface {
	Create(ctx context.Context, rec *models.SettlementRecord) error
	GetByID(ctx context.Context, id string) (*models.SettlementRecord, error)
	GetBySaleReference(ctx context.Context, ref string) (*models.SettlementRecord, error)
	List(ctx context.Context, limit, offset int) ([]models.SettlementRecord, int64, error)
}

// ScheduleProvider is the part of the fee schedule service the workflow needs.
type ScheduleProvider interface {
	Active() *settlement.FeeSchedule
	Version(ctx context.Context, version string) (*settlement.FeeSchedule, error)
}

// MetricsCollector defines the interface for collecting settlement metrics
type MetricsCollector interface {
	RecordOperationDuration(operation string, duration time.Duration)
	RecordSettlement(method settlement.PaymentMethod, outcome string)
	RecordVolume(b settlement.Breakdown)
	RecordAudit(status AuditStatus)
	RecordReconciliationFailure(check settlement.Check)
}
