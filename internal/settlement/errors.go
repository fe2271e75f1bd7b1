package settlement

import "errors"

// Input errors
var (
	ErrNegativeAmount      = errors.New("amount must not be negative")
	ErrAmountOutOfRange    = errors.New("amount exceeds supported range")
	ErrInvalidDiscount     = errors.New("discount exceeds gross value")
	ErrInvalidInstallments = errors.New("credit card installments must be at least 1")
)

// Policy and configuration errors
var (
	ErrFeeExceedsValue = errors.New("organizer fee exceeds discounted value")
	ErrInvalidSchedule = errors.New("invalid fee schedule")
)

// Invariant errors
var (
	ErrInternalInvariantViolation = errors.New("internal settlement invariant violated")
	ErrReconciliation             = errors.New("settlement reconciliation failed")
)
