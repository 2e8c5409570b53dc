package clarification

import "errors"

// Clarification domain errors
var (
	ErrNoSuperior            = errors.New("no superior is configured for this user")
	ErrDuplicateSubmission   = errors.New("a selected date is already waiting for approval")
	ErrClarificationNotFound = errors.New("clarification not found")
	ErrAlreadyDecided        = errors.New("clarification has already been decided")
	ErrNoRecordsSelected     = errors.New("no attendance records selected")
	ErrInvalidAction         = errors.New("action must be approve or reject")
)
