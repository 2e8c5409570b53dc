package response

import (
	"errors"
	"net/http"

	"github.com/presensi-kampus/presensi-backend-go/internal/domain/attendance"
	"github.com/presensi-kampus/presensi-backend-go/internal/domain/auth"
	"github.com/presensi-kampus/presensi-backend-go/internal/domain/clarification"
	"github.com/presensi-kampus/presensi-backend-go/internal/domain/leave"
	"github.com/presensi-kampus/presensi-backend-go/internal/domain/user"
	"github.com/presensi-kampus/presensi-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid NIP or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrNIPExists):
		Conflict(w, "NIP already registered")
	case errors.Is(err, user.ErrInvalidRole):
		BadRequest(w, "Unknown role", nil)
	case errors.Is(err, user.ErrSuperiorNotFound):
		BadRequest(w, "Superior not found", nil)
	case errors.Is(err, user.ErrInvalidSuperior):
		BadRequest(w, "The chosen superior cannot approve requests", nil)
	case errors.Is(err, user.ErrSuperiorCycle):
		BadRequest(w, "Superior assignment would create a reporting cycle", nil)
	case errors.Is(err, user.ErrAdminAccessRequired):
		Forbidden(w, "Admin access required")
	case errors.Is(err, user.ErrApproverAccessRequired):
		Forbidden(w, "Approver access required")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrAlreadyPending):
		Conflict(w, "A clarification for this date is already pending")

	// Clarification domain errors
	case errors.Is(err, clarification.ErrClarificationNotFound):
		NotFound(w, "Clarification not found")
	case errors.Is(err, clarification.ErrNoSuperior):
		BadRequest(w, "No superior assigned; contact the administrator", nil)
	case errors.Is(err, clarification.ErrDuplicateSubmission):
		Conflict(w, "One of the selected dates already has a pending clarification")
	case errors.Is(err, clarification.ErrAlreadyDecided):
		Conflict(w, "Clarification has already been decided")
	case errors.Is(err, clarification.ErrNoRecordsSelected):
		BadRequest(w, "Select at least one date", nil)
	case errors.Is(err, clarification.ErrInvalidAction):
		BadRequest(w, "Action must be approve or reject", nil)

	// Leave domain errors
	case errors.Is(err, leave.ErrInvalidDateRange):
		BadRequest(w, "Start date must not be after end date", nil)
	case errors.Is(err, leave.ErrNoWorkdaysInRange):
		BadRequest(w, "The date range contains no business days", nil)
	case errors.Is(err, leave.ErrDateHasActivity):
		Conflict(w, "A date in the range already has clock activity or a final status")
	case errors.Is(err, leave.ErrInsufficientBalance):
		BadRequest(w, "Insufficient annual leave balance", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
