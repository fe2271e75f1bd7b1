package errors

var (
	ErrInvalidSaleRequest = &DomainError{
		Code:    "INVALID_SALE_REQUEST",
		Message: "invalid sale request",
	}
	ErrInvalidDiscount = &DomainError{
		Code:    "INVALID_DISCOUNT",
		Message: "discount exceeds ticket value",
	}
	ErrFeeExceedsValue = &DomainError{
		Code:    "FEE_EXCEEDS_VALUE",
		Message: "organizer fee exceeds ticket value",
	}
	ErrSettlementNotFound = &DomainError{
		Code:    "SETTLEMENT_NOT_FOUND",
		Message: "settlement not found",
	}
	ErrSettlementUnavailable = &DomainError{
		Code:    "SETTLEMENT_UNAVAILABLE",
		Message: "settlement could not be computed",
	}
)

var (
	ErrSaleReferenceConflict = &DomainError{
		Code:    "SALE_REFERENCE_CONFLICT",
		Message: "sale reference already settled with different inputs",
	}
	ErrScheduleUnavailable = &DomainError{
		Code:    "SCHEDULE_UNAVAILABLE",
		Message: "no fee schedule is active",
	}
)
