package settlement

import "fmt"

// Check names one reconciliation invariant.
type Check string

const (
	CheckAmountRange     Check = "amount_range"
	CheckConservation    Check = "conservation"
	CheckNonNegative     Check = "non_negative"
	CheckOrganizerPayout Check = "organizer_payout"
	CheckPlatformGain    Check = "platform_gain"
)

// maxBreakdownCents bounds every amount Verify will sum. Compute never produces an
// amount near it, and summing a handful of in-range amounts cannot overflow int64.
const maxBreakdownCents = 16 * MaxAmountCents

// ReconciliationError reports the first invariant a breakdown fails.
// For CheckPlatformGain, Expected is the minimum the platform must net.
// For CheckAmountRange, Expected is the magnitude bound that was exceeded.
type ReconciliationError struct {
	Check    Check  `json:"check"`
	Field    string `json:"field"`
	Expected int64  `json:"expected"`
	Actual   int64  `json:"actual"`
}

func (e *ReconciliationError) Error() string {
	switch e.Check {
	case CheckNonNegative:
		return fmt.Sprintf("reconciliation %s: %s is %d", e.Check, e.Field, e.Actual)
	case CheckAmountRange:
		return fmt.Sprintf("reconciliation %s: %s is %d, outside [-%d, %d]",
			e.Check, e.Field, e.Actual, e.Expected, e.Expected)
	case CheckPlatformGain:
		return fmt.Sprintf("reconciliation %s: %s is %d, below processing margin %d",
			e.Check, e.Field, e.Actual, e.Expected)
	default:
		return fmt.Sprintf("reconciliation %s: %s is %d, expected %d (off by %d)",
			e.Check, e.Field, e.Actual, e.Expected, e.Delta())
	}
}

// Delta is Actual minus Expected.
func (e *ReconciliationError) Delta() int64 {
	return e.Actual - e.Expected
}

func (e *ReconciliationError) Is(target error) bool {
	return target == ErrReconciliation
}

// Verify re-derives the invariants of b from its own fields. Amounts too large to
// sum safely are rejected first; the invariants then run in order: conservation,
// non-negativity, organizer payout, platform gain.
func Verify(b Breakdown) error {
	for _, a := range b.Amounts() {
		if a.Cents > maxBreakdownCents || a.Cents < -maxBreakdownCents {
			return &ReconciliationError{
				Check:    CheckAmountRange,
				Field:    a.Name,
				Expected: maxBreakdownCents,
				Actual:   a.Cents,
			}
		}
	}

	expectedTotal := b.DiscountedValueCents + b.CustomerFeeCents + b.CustomerPaymentFeeCents + b.passthroughCents()
	if b.TotalPaidByCustomerCents != expectedTotal {
		return &ReconciliationError{
			Check:    CheckConservation,
			Field:    "total_paid_by_customer_cents",
			Expected: expectedTotal,
			Actual:   b.TotalPaidByCustomerCents,
		}
	}

	for _, a := range b.Amounts() {
		if a.Cents < 0 {
			return &ReconciliationError{Check: CheckNonNegative, Field: a.Name, Actual: a.Cents}
		}
	}

	if b.OrganizerPayoutCents+b.OrganizerFeeCents != b.DiscountedValueCents {
		return &ReconciliationError{
			Check:    CheckOrganizerPayout,
			Field:    "organizer_payout_cents",
			Expected: b.DiscountedValueCents - b.OrganizerFeeCents,
			Actual:   b.OrganizerPayoutCents,
		}
	}

	margin := b.PlatformPaymentFeeCents + b.GatewayFeeGainCents
	if b.NetPlatformGainCents < margin {
		return &ReconciliationError{
			Check:    CheckPlatformGain,
			Field:    "net_platform_gain_cents",
			Expected: margin,
			Actual:   b.NetPlatformGainCents,
		}
	}
	return nil
}
