/*
Package settlement computes the cent-exact money breakdown of a ticket sale.

A sale is priced against an immutable FeeSchedule. Compute turns a SaleRequest into a
Breakdown describing what the customer pays and how that money is split between the
organizer, the payment gateway and the platform. Every breakdown Compute returns has
already passed Verify; Verify can also be run on its own over breakdowns loaded from
storage.

Usage:

	schedule, err := settlement.NewFeeSchedule(settlement.ScheduleConfig{
	    Version:                 "2024-06",
	    CustomerFixedFeeCents:   199,
	    OrganizerPercentageBps:  1000,
	    OrganizerFixedFeeCents:  399,
	    OrganizerThresholdCents: 3990,
	})

	b, err := settlement.Compute(settlement.SaleRequest{
	    GrossValueCents: 5000,
	    PaymentMethod:   settlement.PaymentMethodPix,
	}, schedule)

	// later, over a stored record
	if err := settlement.Verify(b); err != nil {
	    var rerr *settlement.ReconciliationError
	    errors.As(err, &rerr)
	}

Money:

All amounts are int64 cents. Percentages are basis points (1% = 100 bps) and are applied
through RoundHalfUpBps only, which rounds ties away from zero. Negative inputs are
rejected, never clamped.

Errors:

  - ErrNegativeAmount, ErrAmountOutOfRange, ErrInvalidDiscount, ErrInvalidInstallments:
    the request is wrong and can be corrected by the caller
  - ErrFeeExceedsValue: the schedule uses FeeOverflowReject and a fixed organizer fee is
    larger than the price it is levied on
  - ErrInvalidSchedule: the schedule configuration is out of range
  - ErrInternalInvariantViolation: the computed breakdown failed Verify; it wraps the
    *ReconciliationError

Concurrency:

FeeSchedule and Breakdown are values that are never mutated after construction, so
Compute and Verify can be called from any number of goroutines without locking.
*/
package settlement
