package clarification

import (
	"io"

	"github.com/presensi-kampus/presensi-backend-go/internal/domain/user"
	"github.com/presensi-kampus/presensi-backend-go/internal/pkg/validator"
)

// SubmitRequest carries one clarification submission covering one or more
// anomalous attendance rows. Identity fields are threaded in explicitly by
// the handler from the verified token.
type SubmitRequest struct {
	SubmitterNIP  string
	SubmitterName string
	Department    string

	RecordIDs  []string
	Category   string
	ReasonType string

	// Optional evidence file; persisted before any database write.
	Evidence     io.Reader
	EvidenceName string
}

func (r SubmitRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.SubmitterNIP) {
		errs = append(errs, validator.ValidationError{Field: "submitter_nip", Message: "is required"})
	}
	if len(r.RecordIDs) == 0 {
		errs = append(errs, validator.ValidationError{Field: "record_ids", Message: "select at least one date"})
	}
	if validator.IsEmpty(r.Category) {
		errs = append(errs, validator.ValidationError{Field: "category", Message: "is required"})
	}
	if validator.IsEmpty(r.ReasonType) {
		errs = append(errs, validator.ValidationError{Field: "reason_type", Message: "is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Action is an approval decision.
type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
)

// DecideRequest carries one approval decision.
type DecideRequest struct {
	ClarificationID string
	Action          Action
	RejectionNote   string
	ActorNIP        string
	ActorRole       user.Role
}

func (r DecideRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.ClarificationID) {
		errs = append(errs, validator.ValidationError{Field: "clarification_id", Message: "is required"})
	}
	if r.Action != ActionApprove && r.Action != ActionReject {
		errs = append(errs, validator.ValidationError{Field: "action", Message: "must be approve or reject"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ClarificationResponse is the JSON shape of one request.
type ClarificationResponse struct {
	ID                 string  `json:"id"`
	AttendanceID       string  `json:"attendance_id"`
	SubmitterNIP       string  `json:"submitter_nip"`
	SubmitterName      string  `json:"submitter_name"`
	Department         string  `json:"department"`
	Date               string  `json:"date"`
	Category           string  `json:"category"`
	ReasonType         string  `json:"reason_type"`
	CurrentApproverNIP *string `json:"current_approver_nip"`
	Status             string  `json:"status"`
	RevisionNote       *string `json:"revision_note"`
	EvidenceFile       *string `json:"evidence_file"`
	SubmittedAt        string  `json:"submitted_at"`
}
