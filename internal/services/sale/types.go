package sale

import "tixpay/internal/settlement"

// Default configuration values
const (
	DefaultAuditPageSize = 100
	MaxAuditPageSize     = 1000
)

// Settlement outcomes for metrics
const (
	OutcomeSettled  = "settled"
	OutcomeReplayed = "replayed"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

type AuditStatus string

const (
	AuditOK                 AuditStatus = "ok"
	AuditInvariantViolation AuditStatus = "invariant_violation"
	AuditDrift              AuditStatus = "drift"
	AuditScheduleMissing    AuditStatus = "schedule_missing"
	AuditRecomputeFailed    AuditStatus = "recompute_failed"
)

// FieldDrift is a stored value that differs from a fresh recomputation.
type FieldDrift struct {
	Field      string `json:"field"`
	Stored     string `json:"stored"`
	Recomputed string `json:"recomputed"`
}

// AuditResult is the outcome of auditing one stored settlement.
type AuditResult struct {
	RecordID        string                          `json:"record_id"`
	SaleReference   string                          `json:"sale_reference"`
	ScheduleVersion string                          `json:"schedule_version"`
	Status          AuditStatus                     `json:"status"`
	Reason          string                          `json:"reason,omitempty"`
	Reconciliation  *settlement.ReconciliationError `json:"reconciliation,omitempty"`
	Drift           []FieldDrift                    `json:"drift,omitempty"`
}

func (r *AuditResult) OK() bool {
	return r.Status == AuditOK
}

// AuditReport summarizes a page of audits. Only failing records are listed.
type AuditReport struct {
	Total    int64         `json:"total"`
	Checked  int           `json:"checked"`
	Passed   int           `json:"passed"`
	Failures []AuditResult `json:"failures"`
}
