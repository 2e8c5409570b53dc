package user

import "errors"

// User domain errors
var (
	ErrUserNotFound           = errors.New("user not found")
	ErrNIPExists              = errors.New("NIP is already registered")
	ErrInvalidRole            = errors.New("unknown role")
	ErrSuperiorNotFound       = errors.New("superior not found")
	ErrInvalidSuperior        = errors.New("assigned superior cannot approve requests")
	ErrSuperiorCycle          = errors.New("superior assignment would create a reporting cycle")
	ErrAdminAccessRequired    = errors.New("admin access required")
	ErrApproverAccessRequired = errors.New("approver access required")
)
