package leave

import "time"

// Leave types offered by the admin entry form. The column is free text; only
// the annual type is checked against the yearly balance.
const (
	TypeAnnual = "Annual Leave"
	TypeSick   = "Sick Leave"
	TypeOther  = "Other Leave"
)

// AnnualLeaveMarker is the remark substring that makes an approved
// attendance row count against the annual balance.
const AnnualLeaveMarker = "Annual Leave"

// Grant is one admin-entered leave covering a date range. Every business day
// in the range maps to one attendance row force-set to an approved status.
type Grant struct {
	ID         string
	NIP        string
	OwnerName  string
	LetterDate time.Time
	StartDate  time.Time
	EndDate    time.Time
	LeaveType  string
	Reason     string
	LetterFile *string
	EnteredBy  string
	EnteredAt  time.Time
}
