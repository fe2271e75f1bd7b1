package errors

var (
	ErrInvalidFeeSchedule = &DomainError{
		Code:    "INVALID_FEE_SCHEDULE",
		Message: "invalid fee schedule",
	}
	ErrFeeScheduleNotFound = &DomainError{
		Code:    "FEE_SCHEDULE_NOT_FOUND",
		Message: "fee schedule version not found",
	}
	ErrFeeScheduleExists = &DomainError{
		Code:    "FEE_SCHEDULE_EXISTS",
		Message: "fee schedule version already published",
	}
)
