package attendance

import (
	"time"
)

// Attendance mirrors one row of the attendance table. Clock times and the
// stored status/remark are nullable: the time-clock feed writes rows with
// missing punches, and status stays NULL until a clarification or an admin
// leave entry resolves the day.
type Attendance struct {
	ID        string
	NIP       string
	Date      time.Time
	ClockIn   *time.Time
	ClockOut  *time.Time
	Status    *string
	Remark    *string
	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	OwnerName *string
}

// StatusText returns the stored status or "" when the row has none.
func (a Attendance) StatusText() string {
	if a.Status == nil {
		return ""
	}
	return *a.Status
}

// RemarkText returns the stored remark or "" when the row has none.
func (a Attendance) RemarkText() string {
	if a.Remark == nil {
		return ""
	}
	return *a.Remark
}

// HasClockActivity reports whether either punch is recorded.
func (a Attendance) HasClockActivity() bool {
	return a.ClockIn != nil || a.ClockOut != nil
}
