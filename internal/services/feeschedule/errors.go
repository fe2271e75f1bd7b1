package feeschedule

import "errors"

var (
	ErrNoActiveSchedule = errors.New("no active fee schedule")
	ErrMissingVersion   = errors.New("fee schedule version label is required")
	ErrVersionExists    = errors.New("fee schedule version already published")
	ErrVersionNotFound  = errors.New("fee schedule version not found")
)
