package attendance

import (
	"strings"
	"time"
)

// Stored status values written by this system. Legacy rows imported from the
// old portal carry Indonesian labels instead; TagOf understands both.
const (
	StatusPendingApproval = "Pending Approval"
	StatusRejected        = "Rejected"
	StatusApprovedAdmin   = "Approved (Admin Input)"
)

// ApprovedLetterStatus builds the terminal status written by an approval
// decision, e.g. "Approved — Letter FL".
func ApprovedLetterStatus(letterCode string) string {
	return "Approved — Letter " + letterCode
}

// MinWorkDuration is the daily presence threshold. Exactly four hours counts
// as fulfilled.
const MinWorkDuration = 4 * time.Hour

// StatusTag is the tagged classification of a stored status value.
type StatusTag int

const (
	TagNone StatusTag = iota
	TagPending
	TagApproved
	TagRejected
)

// Substring markers used by the legacy portal's free-form status column.
var (
	pendingMarkers  = []string{"Pending", "Menunggu"}
	approvedMarkers = []string{"Approved", "Disetujui"}
	rejectedMarkers = []string{"Rejected", "Ditolak"}
)

// TagOf translates a stored status value, including legacy substring-tagged
// ones, into a StatusTag. Precedence is pending over approved over rejected,
// matching how the classifier must tie-break.
func TagOf(status string) StatusTag {
	if status == "" {
		return TagNone
	}
	if containsAny(status, pendingMarkers) {
		return TagPending
	}
	if containsAny(status, approvedMarkers) {
		return TagApproved
	}
	if containsAny(status, rejectedMarkers) {
		return TagRejected
	}
	return TagNone
}

// IsFinal reports whether a stored status blocks admin leave entry for the
// day: an approved day, a fulfilled day, or an open clarification.
func IsFinal(status string) bool {
	if status == "" {
		return false
	}
	switch TagOf(status) {
	case TagPending, TagApproved:
		return true
	}
	return containsAny(status, []string{"Hours Fulfilled", "Kehadiran Terpenuhi"})
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

// Color is the display classification color of a derived status.
type Color string

const (
	ColorGreen  Color = "green"
	ColorYellow Color = "yellow"
	ColorRed    Color = "red"
	ColorGrey   Color = "grey"
)

// DerivedStatus is the display classification of one attendance row.
type DerivedStatus struct {
	Text                 string
	Color                Color
	ClarificationAllowed bool
}

// Derive classifies a single attendance row for display. Pure and
// deterministic; first match wins:
//
//  1. pending status   -> yellow, locked
//  2. approved status  -> green, locked; remark appended when present
//  3. rejected status  -> red, the remark holds the rejection explanation
//     and the row may be clarified again
//  4. both punches     -> duration threshold, locked either way
//  5. anything else    -> red "Needs Clarification", may be clarified
func Derive(rec Attendance) DerivedStatus {
	status := rec.StatusText()
	remark := rec.RemarkText()

	switch TagOf(status) {
	case TagPending:
		return DerivedStatus{Text: StatusPendingApproval, Color: ColorYellow}
	case TagApproved:
		if remark != "" {
			return DerivedStatus{Text: "Approved — " + remark, Color: ColorGreen}
		}
		return DerivedStatus{Text: status, Color: ColorGreen}
	case TagRejected:
		return DerivedStatus{Text: remark, Color: ColorRed, ClarificationAllowed: true}
	}

	if rec.ClockIn != nil && rec.ClockOut != nil {
		if rec.ClockOut.Sub(*rec.ClockIn) >= MinWorkDuration {
			return DerivedStatus{Text: "Hours Fulfilled", Color: ColorGreen}
		}
		return DerivedStatus{Text: "Below 4 Hours", Color: ColorRed}
	}

	return DerivedStatus{Text: "Needs Clarification", Color: ColorRed, ClarificationAllowed: true}
}

// Summary is the dashboard banner aggregated over a record set.
type Summary struct {
	Message string
	Color   Color
}

// Summarize aggregates derived rows into the dashboard banner.
func Summarize(statuses []DerivedStatus) Summary {
	if len(statuses) == 0 {
		return Summary{Message: "No attendance history to display yet.", Color: ColorGrey}
	}
	for _, st := range statuses {
		if st.Color == ColorRed {
			return Summary{Message: "You have dates that need clarification.", Color: ColorRed}
		}
	}
	return Summary{Message: "All of your attendance is fulfilled.", Color: ColorGreen}
}
