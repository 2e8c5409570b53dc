package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func timePtr(t time.Time) *time.Time { return &t }
func strPtr(s string) *string        { return &s }

func TestTagOf(t *testing.T) {
	cases := []struct {
		status string
		want   StatusTag
	}{
		{"", TagNone},
		{"Pending Approval", TagPending},
		{"Menunggu Persetujuan", TagPending},
		{"Approved — Letter FL", TagApproved},
		{"Approved (Admin Input)", TagApproved},
		{"Disetujui - Surat NF", TagApproved},
		{"Rejected", TagRejected},
		{"Ditolak oleh Kajur", TagRejected},
		{"something else", TagNone},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, TagOf(c.status), "TagOf(%q)", c.status)
	}
}

// A status carrying several markers resolves pending first, then approved.
func TestTagOf_Precedence(t *testing.T) {
	assert.Equal(t, TagPending, TagOf("Approved then Pending again"))
	assert.Equal(t, TagApproved, TagOf("Approved after Rejected"))
}

func TestIsFinal(t *testing.T) {
	assert.False(t, IsFinal(""))
	assert.False(t, IsFinal("Rejected"))
	assert.True(t, IsFinal("Pending Approval"))
	assert.True(t, IsFinal("Approved — Letter NF"))
	assert.True(t, IsFinal("Hours Fulfilled"))
	assert.True(t, IsFinal("Kehadiran Terpenuhi"))
}

func TestDerive_PendingLocksRow(t *testing.T) {
	got := Derive(Attendance{Status: strPtr("Pending Approval")})

	assert.Equal(t, StatusPendingApproval, got.Text)
	assert.Equal(t, ColorYellow, got.Color)
	assert.False(t, got.ClarificationAllowed)
}

func TestDerive_ApprovedWithRemark(t *testing.T) {
	got := Derive(Attendance{
		Status: strPtr("Approved — Letter FL"),
		Remark: strPtr("Forgot Clock-Out"),
	})

	assert.Equal(t, "Approved — Forgot Clock-Out", got.Text)
	assert.Equal(t, ColorGreen, got.Color)
	assert.False(t, got.ClarificationAllowed)
}

func TestDerive_ApprovedWithoutRemark(t *testing.T) {
	got := Derive(Attendance{Status: strPtr("Approved (Admin Input)")})

	assert.Equal(t, "Approved (Admin Input)", got.Text)
	assert.Equal(t, ColorGreen, got.Color)
}

func TestDerive_RejectedShowsRemarkAndAllowsResubmit(t *testing.T) {
	got := Derive(Attendance{
		Status: strPtr("Rejected"),
		Remark: strPtr("No evidence attached — please resubmit"),
	})

	assert.Equal(t, "No evidence attached — please resubmit", got.Text)
	assert.Equal(t, ColorRed, got.Color)
	assert.True(t, got.ClarificationAllowed)
}

// A pending status wins even when both punches are present.
func TestDerive_PendingBeatsDuration(t *testing.T) {
	day := time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC)
	got := Derive(Attendance{
		Status:   strPtr("Pending Approval"),
		ClockIn:  timePtr(day.Add(8 * time.Hour)),
		ClockOut: timePtr(day.Add(16 * time.Hour)),
	})

	assert.Equal(t, ColorYellow, got.Color)
}

func TestDerive_DurationThreshold(t *testing.T) {
	day := time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		name      string
		clockOut  time.Time
		wantText  string
		wantColor Color
	}{
		{"well over", day.Add(16*time.Hour + 30*time.Minute), "Hours Fulfilled", ColorGreen},
		{"exactly four hours", day.Add(12 * time.Hour), "Hours Fulfilled", ColorGreen},
		{"one second short", day.Add(12*time.Hour - time.Second), "Below 4 Hours", ColorRed},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Derive(Attendance{
				ClockIn:  timePtr(day.Add(8 * time.Hour)),
				ClockOut: timePtr(c.clockOut),
			})
			assert.Equal(t, c.wantText, got.Text)
			assert.Equal(t, c.wantColor, got.Color)
		})
	}
}

func TestDerive_MissingPunchNeedsClarification(t *testing.T) {
	day := time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC)
	cases := []Attendance{
		{},
		{ClockIn: timePtr(day.Add(8 * time.Hour))},
		{ClockOut: timePtr(day.Add(16 * time.Hour))},
	}
	for _, rec := range cases {
		got := Derive(rec)
		assert.Equal(t, "Needs Clarification", got.Text)
		assert.Equal(t, ColorRed, got.Color)
		assert.True(t, got.ClarificationAllowed)
	}
}

func TestSummarize(t *testing.T) {
	empty := Summarize(nil)
	assert.Equal(t, ColorGrey, empty.Color)

	allGreen := Summarize([]DerivedStatus{
		{Color: ColorGreen},
		{Color: ColorYellow},
	})
	assert.Equal(t, ColorGreen, allGreen.Color)
	assert.Equal(t, "All of your attendance is fulfilled.", allGreen.Message)

	withRed := Summarize([]DerivedStatus{
		{Color: ColorGreen},
		{Color: ColorRed},
	})
	assert.Equal(t, ColorRed, withRed.Color)
	assert.Equal(t, "You have dates that need clarification.", withRed.Message)
}
