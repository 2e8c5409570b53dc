package leave

import "errors"

// Leave domain errors
var (
	ErrInvalidDateRange    = errors.New("start date must not be after end date")
	ErrNoWorkdaysInRange   = errors.New("the date range contains no business days")
	ErrDateHasActivity     = errors.New("a date in the range already has clock activity or a final status")
	ErrInsufficientBalance = errors.New("insufficient annual leave balance")
)
