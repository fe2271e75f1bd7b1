package sale

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"tixpay/internal/models"
	"tixpay/internal/repositories"
	"tixpay/internal/services/feeschedule"
	"tixpay/internal/settlement"

	"github.com/google/uuid"
)

type service struct {
	repo      Repository
	schedules ScheduleProvider
	metrics   MetricsCollector
	newID     func() string
}

// NewService creates a new settlement workflow service
func NewService(repo Repository, schedules ScheduleProvider, metrics MetricsCollector) Service {
	if metrics == nil {
		metrics = &NoopMetricsCollector{}
	}
	return &service{
		repo:      repo,
		schedules: schedules,
		metrics:   metrics,
		newID:     uuid.NewString,
	}
}

func (s *service) Quote(ctx context.Context, req settlement.SaleRequest) (settlement.Breakdown, error) {
	defer s.observe("quote", time.Now())

	schedule := s.schedules.Active()
	if schedule == nil {
		return settlement.Breakdown{}, ErrNoActiveSchedule
	}
	return settlement.Compute(req, schedule)
}

func (s *service) Settle(
	ctx context.Context,
	saleReference string,
	req settlement.SaleRequest,
	metadata map[string]interface{},
) (*models.SettlementRecord, error) {
	defer s.observe("settle", time.Now())

	if saleReference == "" {
		return nil, ErrMissingSaleReference
	}

	existing, err := s.replay(ctx, saleReference, req)
	if err != nil || existing != nil {
		return existing, err
	}

	schedule := s.schedules.Active()
	if schedule == nil {
		return nil, ErrNoActiveSchedule
	}

	b, err := settlement.Compute(req, schedule)
	if err != nil {
		if errors.Is(err, settlement.ErrInternalInvariantViolation) {
			s.metrics.RecordSettlement(req.PaymentMethod, OutcomeFailed)
		} else {
			s.metrics.RecordSettlement(req.PaymentMethod, OutcomeRejected)
		}
		return nil, err
	}

	rec := models.NewSettlementRecord(s.newID(), saleReference, req, b, models.NewJSON(metadata))
	if err := s.repo.Create(ctx, rec); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			// Lost a race with a concurrent settle of the same sale.
			existing, err := s.replay(ctx, saleReference, req)
			if err == nil && existing == nil {
				err = fmt.Errorf("sale %s reported as duplicate but not found", saleReference)
			}
			return existing, err
		}
		s.metrics.RecordSettlement(req.PaymentMethod, OutcomeFailed)
		return nil, fmt.Errorf("failed to store settlement %s: %w", saleReference, err)
	}

	s.metrics.RecordSettlement(req.PaymentMethod, OutcomeSettled)
	s.metrics.RecordVolume(b)
	log.Printf("settled %s as %s: customer=%d organizer=%d platform=%d (schedule %s)",
		saleReference, rec.ID, b.TotalPaidByCustomerCents, b.OrganizerPayoutCents, b.NetPlatformGainCents, b.ScheduleVersion)
	return rec, nil
}

// replay returns the stored settlement of saleReference, if any. A stored settlement
// is only reused when it was computed from the same inputs.
func (s *service) replay(ctx context.Context, saleReference string, req settlement.SaleRequest) (*models.SettlementRecord, error) {
	existing, err := s.repo.GetBySaleReference(ctx, saleReference)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up sale %s: %w", saleReference, err)
	}

	stored := existing.SaleRequest()
	if req.PaymentMethod != settlement.PaymentMethodCreditCard {
		req.CreditCardInstallments = 0
	}
	if stored != req {
		return nil, fmt.Errorf("%w: %s", ErrSaleReferenceConflict, saleReference)
	}
	s.metrics.RecordSettlement(req.PaymentMethod, OutcomeReplayed)
	return existing, nil
}

func (s *service) Get(ctx context.Context, id string) (*models.SettlementRecord, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSettlementNotFound, id)
	}
	rec, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrSettlementNotFound, id)
	}
	return rec, err
}

func (s *service) Audit(ctx context.Context, id string) (*AuditResult, error) {
	defer s.observe("audit", time.Now())

	rec, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.audit(ctx, rec)
}

func (s *service) AuditPage(ctx context.Context, limit, offset int) (*AuditReport, error) {
	defer s.observe("audit_page", time.Now())

	if limit <= 0 {
		limit = DefaultAuditPageSize
	}
	limit = min(limit, MaxAuditPageSize)
	offset = max(offset, 0)

	records, total, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}

	report := &AuditReport{Total: total, Failures: []AuditResult{}}
	for i := range records {
		result, err := s.audit(ctx, &records[i])
		if err != nil {
			return nil, err
		}
		report.Checked++
		if result.OK() {
			report.Passed++
		} else {
			report.Failures = append(report.Failures, *result)
		}
	}
	return report, nil
}

// audit verifies the stored breakdown on its own, then recomputes it from the stored
// inputs against the schedule version that produced it.
func (s *service) audit(ctx context.Context, rec *models.SettlementRecord) (*AuditResult, error) {
	result := &AuditResult{
		RecordID:        rec.ID,
		SaleReference:   rec.SaleReference,
		ScheduleVersion: rec.ScheduleVersion,
		Status:          AuditOK,
	}
	stored := rec.Breakdown()

	if err := settlement.Verify(stored); err != nil {
		var rerr *settlement.ReconciliationError
		if errors.As(err, &rerr) {
			result.Reconciliation = rerr
			s.metrics.RecordReconciliationFailure(rerr.Check)
		}
		result.Status = AuditInvariantViolation
		result.Reason = err.Error()
		log.Printf("audit: settlement %s (%s) failed reconciliation: %v [%s]", rec.ID, rec.SaleReference, err, stored)
	}

	schedule, err := s.schedules.Version(ctx, rec.ScheduleVersion)
	switch {
	case errors.Is(err, feeschedule.ErrVersionNotFound):
		s.fail(result, AuditScheduleMissing, err.Error())
	case err != nil:
		return nil, fmt.Errorf("failed to load fee schedule %s: %w", rec.ScheduleVersion, err)
	default:
		recomputed, err := settlement.Compute(rec.SaleRequest(), schedule)
		if err != nil {
			s.fail(result, AuditRecomputeFailed, err.Error())
			break
		}
		if drift := diff(stored, recomputed); len(drift) > 0 {
			result.Drift = drift
			s.fail(result, AuditDrift, fmt.Sprintf("%d field(s) differ from recomputation", len(drift)))
			log.Printf("audit: settlement %s (%s) drifted from schedule %s: %+v", rec.ID, rec.SaleReference, rec.ScheduleVersion, drift)
		}
	}

	s.metrics.RecordAudit(result.Status)
	return result, nil
}

// fail records status unless an earlier, more severe status is already set.
func (s *service) fail(result *AuditResult, status AuditStatus, reason string) {
	if result.Status != AuditOK {
		return
	}
	result.Status = status
	result.Reason = reason
}

func diff(stored, recomputed settlement.Breakdown) []FieldDrift {
	var drift []FieldDrift
	recomputedAmounts := recomputed.Amounts()
	for i, a := range stored.Amounts() {
		if a.Cents != recomputedAmounts[i].Cents {
			drift = append(drift, FieldDrift{
				Field:      a.Name,
				Stored:     strconv.FormatInt(a.Cents, 10),
				Recomputed: strconv.FormatInt(recomputedAmounts[i].Cents, 10),
			})
		}
	}
	if stored.ScheduleVersion != recomputed.ScheduleVersion {
		drift = append(drift, FieldDrift{
			Field:      "schedule_version",
			Stored:     stored.ScheduleVersion,
			Recomputed: recomputed.ScheduleVersion,
		})
	}
	return drift
}

func (s *service) observe(operation string, start time.Time) {
	s.metrics.RecordOperationDuration(operation, time.Since(start))
}
