package sale

import "errors"

// Service errors
var (
	ErrMissingSaleReference  = errors.New("sale reference is required")
	ErrSaleReferenceConflict = errors.New("sale reference already settled with different inputs")
	ErrSettlementNotFound    = errors.New("settlement not found")
	ErrNoActiveSchedule      = errors.New("no active fee schedule")
)
