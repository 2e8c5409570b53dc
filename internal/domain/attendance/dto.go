package attendance

// AttendanceView is one classified row as shown on a dashboard.
type AttendanceView struct {
	ID                   string  `json:"id"`
	Date                 string  `json:"date"`
	ClockIn              *string `json:"clock_in"`
	ClockOut             *string `json:"clock_out"`
	StatusText           string  `json:"status_text"`
	StatusColor          string  `json:"status_color"`
	ClarificationAllowed bool    `json:"clarification_allowed"`
}

// LeaveBalance is the annual-leave triple shown next to the record list.
type LeaveBalance struct {
	Allowance int `json:"allowance"`
	Used      int `json:"used"`
	Remaining int `json:"remaining"`
}

// DashboardResponse is the staff member's own attendance dashboard.
type DashboardResponse struct {
	Records             []AttendanceView `json:"records"`
	SummaryMessage      string           `json:"summary_message"`
	SummaryColor        string           `json:"summary_color"`
	LeaveBalance        LeaveBalance     `json:"leave_balance"`
	ForgotClockInCount  int              `json:"forgot_clock_in_count"`
	ForgotClockOutCount int              `json:"forgot_clock_out_count"`
}

// StaffSummaryResponse is the per-staff view an approver opens from their
// dashboard: the target's most recent month plus the leave balance.
type StaffSummaryResponse struct {
	NIP          string           `json:"nip"`
	Name         string           `json:"name"`
	Records      []AttendanceView `json:"records"`
	LeaveBalance LeaveBalance     `json:"leave_balance"`
}
