package leave

import (
	"io"

	"github.com/presensi-kampus/presensi-backend-go/internal/pkg/validator"
)

// CreateGrantRequest is the admin leave-entry form.
type CreateGrantRequest struct {
	NIP        string
	LetterDate string
	StartDate  string
	EndDate    string
	LeaveType  string
	Reason     string
	EnteredBy  string

	// Optional leave-letter file; persisted before any database write.
	Letter     io.Reader
	LetterName string
}

func (r CreateGrantRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.NIP) {
		errs = append(errs, validator.ValidationError{Field: "nip", Message: "is required"})
	}
	if !validator.IsValidDate(r.StartDate) {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be YYYY-MM-DD"})
	}
	if !validator.IsValidDate(r.EndDate) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be YYYY-MM-DD"})
	}
	if validator.IsEmpty(r.LeaveType) {
		errs = append(errs, validator.ValidationError{Field: "leave_type", Message: "is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// GrantResponse is the JSON shape of one grant.
type GrantResponse struct {
	ID         string  `json:"id"`
	NIP        string  `json:"nip"`
	OwnerName  string  `json:"owner_name"`
	LetterDate string  `json:"letter_date"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	LeaveType  string  `json:"leave_type"`
	Reason     string  `json:"reason"`
	LetterFile *string `json:"letter_file"`
	EnteredBy  string  `json:"entered_by"`
	Workdays   int     `json:"workdays,omitempty"`
}
