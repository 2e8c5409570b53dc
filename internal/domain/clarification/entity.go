package clarification

import (
	"fmt"
	"time"

	"github.com/presensi-kampus/presensi-backend-go/internal/domain/user"
)

// Letter categories and their export short-codes.
const (
	CategoryFlexible    = "Flexible"
	CategoryNonFlexible = "Non-Flexible"

	LetterCodeFlexible    = "FL"
	LetterCodeNonFlexible = "NF"
)

// Reason types the portal's submission form offers. The column is free text;
// these two feed the dashboard counters.
const (
	ReasonForgotClockIn  = "Forgot Clock-In"
	ReasonForgotClockOut = "Forgot Clock-Out"
)

// StatusSubmitted is the single non-terminal request state. While a request
// holds it, CurrentApproverNIP names exactly one reviewer; resolution writes
// a terminal "Approved by <role>" / "Rejected by <role>" status and clears
// the approver.
const StatusSubmitted = "Submitted"

// ApprovedByStatus builds the terminal status for an approval.
func ApprovedByStatus(role user.Role) string {
	return fmt.Sprintf("Approved by %s", role)
}

// RejectedByStatus builds the terminal status for a rejection.
func RejectedByStatus(role user.Role) string {
	return fmt.Sprintf("Rejected by %s", role)
}

// LetterCode maps a category to its export short-code. Anything that is not
// flexible is treated as non-flexible.
func LetterCode(category string) string {
	if category == CategoryFlexible {
		return LetterCodeFlexible
	}
	return LetterCodeNonFlexible
}

// Clarification is one submitted explanation for an attendance anomaly.
// AttendanceID pins the request to its source row; the submitter identity
// and date columns are kept alongside for history views and the export
// grid's (owner, date) lookup.
type Clarification struct {
	ID                 string
	AttendanceID       string
	SubmitterNIP       string
	SubmitterName      string
	Department         string
	Date               time.Time
	Category           string
	ReasonType         string
	CurrentApproverNIP *string
	Status             string
	RevisionNote       *string
	EvidenceFile       *string
	SubmittedAt        time.Time
}

// IsOpen reports whether the request still awaits a decision.
func (c Clarification) IsOpen() bool {
	return c.CurrentApproverNIP != nil
}
