package report

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/presensi-kampus/presensi-backend-go/internal/domain/attendance"
	"github.com/presensi-kampus/presensi-backend-go/internal/domain/clarification"
	"github.com/presensi-kampus/presensi-backend-go/internal/domain/report"
	"github.com/presensi-kampus/presensi-backend-go/internal/domain/user"
)

type fakeUserRepo struct {
	users []user.User
}

func (f *fakeUserRepo) GetByNIP(_ context.Context, nip string) (user.User, error) {
	for _, u := range f.users {
		if u.NIP == nip {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) Create(_ context.Context, _ user.User) error { return nil }

func (f *fakeUserRepo) ListSubordinates(_ context.Context, _ string) ([]user.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) ListByRoles(_ context.Context, _ []user.Role) ([]user.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) ListStaff(_ context.Context) ([]user.User, error) {
	var out []user.User
	for _, u := range f.users {
		if u.Role != user.RoleAdmin {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NIP < out[j].NIP })
	return out, nil
}

func (f *fakeUserRepo) SetPushSubscription(_ context.Context, _ string, _ *string) error {
	return nil
}

type fakeAttendanceRepo struct {
	records []attendance.Attendance
}

func (f *fakeAttendanceRepo) GetByID(_ context.Context, _ string) (attendance.Attendance, error) {
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) GetByOwnerAndDate(_ context.Context, _ string, _ time.Time) (attendance.Attendance, error) {
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) Create(_ context.Context, rec attendance.Attendance) (attendance.Attendance, error) {
	return rec, nil
}

func (f *fakeAttendanceRepo) ListByOwner(_ context.Context, _ string) ([]attendance.Attendance, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) ListByOwnerAndMonth(_ context.Context, _ string, _ time.Time) ([]attendance.Attendance, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) ListByMonth(_ context.Context, month time.Time) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, rec := range f.records {
		if rec.Date.Year() == month.Year() && rec.Date.Month() == month.Month() {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) LatestMonthOf(_ context.Context, _ string) (time.Time, error) {
	return time.Time{}, attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) MarkPendingApproval(_ context.Context, _ string) error { return nil }

func (f *fakeAttendanceRepo) SetResolution(_ context.Context, _ string, _ string, _ string) error {
	return nil
}

func (f *fakeAttendanceRepo) CountApprovedAnnualLeave(_ context.Context, _ string, _ int) (int, error) {
	return 0, nil
}

type fakeClarificationRepo struct {
	items []clarification.Clarification
}

func (f *fakeClarificationRepo) GetByID(_ context.Context, _ string) (clarification.Clarification, error) {
	return clarification.Clarification{}, clarification.ErrClarificationNotFound
}

func (f *fakeClarificationRepo) Create(_ context.Context, _ clarification.Clarification) error {
	return nil
}

func (f *fakeClarificationRepo) Resolve(_ context.Context, _ string, _ string, _ *string) error {
	return nil
}

func (f *fakeClarificationRepo) ListByApprovers(_ context.Context, _ []string, _ string) ([]clarification.Clarification, error) {
	return nil, nil
}

func (f *fakeClarificationRepo) ListBySubmitters(_ context.Context, _ []string) ([]clarification.Clarification, error) {
	return nil, nil
}

func (f *fakeClarificationRepo) ListApprovedByMonth(_ context.Context, month time.Time) ([]clarification.Clarification, error) {
	var out []clarification.Clarification
	for _, c := range f.items {
		if strings.HasPrefix(c.Status, "Approved") &&
			c.Date.Year() == month.Year() && c.Date.Month() == month.Month() {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeClarificationRepo) CountByReasonType(_ context.Context, _ string, _ string, _ time.Time) (int, error) {
	return 0, nil
}

func strPtr(s string) *string { return &s }

func july(day int) time.Time {
	return time.Date(2025, time.July, day, 0, 0, 0, 0, time.UTC)
}

func rec(nip string, day int, status string, remark string, hours int) attendance.Attendance {
	a := attendance.Attendance{ID: nip + "-" + time.Now().String(), NIP: nip, Date: july(day)}
	if status != "" {
		a.Status = strPtr(status)
	}
	if remark != "" {
		a.Remark = strPtr(remark)
	}
	if hours > 0 {
		in := july(day).Add(8 * time.Hour)
		out := in.Add(time.Duration(hours) * time.Hour)
		a.ClockIn = &in
		a.ClockOut = &out
	}
	return a
}

func newFixture() (report.ReportService, *fakeAttendanceRepo, *fakeClarificationRepo) {
	users := &fakeUserRepo{users: []user.User{
		{NIP: "20", FullName: "Lecturer A", Department: "TI", DepartmentDetail: "Teknik Informatika", Role: user.RoleDosen},
		{NIP: "30", FullName: "Lecturer B", Department: "ME", DepartmentDetail: "Teknik Mesin", Role: user.RoleDosen},
		{NIP: "99", FullName: "Admin", Role: user.RoleAdmin},
	}}
	records := &fakeAttendanceRepo{}
	items := &fakeClarificationRepo{}
	return NewReportService(records, items, users), records, items
}

func TestMonthlyGrid_CodeMapping(t *testing.T) {
	ctx := context.Background()
	svc, records, items := newFixture()

	records.records = []attendance.Attendance{
		rec("20", 1, "", "", 8),                                                // KT
		rec("20", 2, "", "", 3),                                                // PK: under four hours
		rec("20", 3, attendance.StatusPendingApproval, "", 0),                  // PK
		rec("20", 4, "Approved — Letter FL", "Forgot Clock-Out", 0),            // FL via clarification
		rec("20", 7, "Approved — Letter NF", "Forgot Clock-In", 0),             // NF via clarification
		rec("20", 8, attendance.StatusApprovedAdmin, "Annual Leave — Rest", 0), // CT
		rec("20", 9, "Approved (Admin Input)", "Special permit", 0),            // IZ: no matching clarification
		rec("20", 10, attendance.StatusRejected, "No evidence", 0),             // PK
	}
	items.items = []clarification.Clarification{
		{SubmitterNIP: "20", Date: july(4), Category: clarification.CategoryFlexible, Status: "Approved by Kajur"},
		{SubmitterNIP: "20", Date: july(7), Category: clarification.CategoryNonFlexible, Status: "Approved by Kajur"},
	}

	grid, err := svc.MonthlyGrid(ctx, july(1))
	require.NoError(t, err)

	assert.Equal(t, "2025-07", grid.Month)
	assert.Equal(t, 31, grid.DaysInMonth)
	require.Len(t, grid.Departments, 2)

	// Sorted by department name: ME before TI.
	assert.Equal(t, "ME", grid.Departments[0].Department)
	ti := grid.Departments[1]
	assert.Equal(t, "TI", ti.Department)
	assert.Equal(t, "Teknik Informatika", ti.DepartmentName)
	require.Len(t, ti.Staff, 1)

	row := ti.Staff[0]
	assert.Equal(t, report.CodeFulfilled, row.Codes[1])
	assert.Equal(t, report.CodePending, row.Codes[2])
	assert.Equal(t, report.CodePending, row.Codes[3])
	assert.Equal(t, report.CodeFlexible, row.Codes[4])
	assert.Equal(t, report.CodeNonFlexible, row.Codes[7])
	assert.Equal(t, report.CodeAnnualLeave, row.Codes[8])
	assert.Equal(t, report.CodeOtherApproved, row.Codes[9])
	assert.Equal(t, report.CodePending, row.Codes[10])

	assert.Equal(t, 1, row.Totals[report.CodeFulfilled])
	assert.Equal(t, 3, row.Totals[report.CodePending])
	assert.Equal(t, 1, row.Totals[report.CodeFlexible])
	assert.Equal(t, 1, row.Totals[report.CodeNonFlexible])
	assert.Equal(t, 1, row.Totals[report.CodeAnnualLeave])
	assert.Equal(t, 1, row.Totals[report.CodeOtherApproved])
}

// The same month over the same data yields the same grid.
func TestMonthlyGrid_Deterministic(t *testing.T) {
	ctx := context.Background()
	svc, records, _ := newFixture()
	records.records = []attendance.Attendance{
		rec("20", 1, "", "", 8),
		rec("30", 1, "", "", 2),
	}

	first, err := svc.MonthlyGrid(ctx, july(1))
	require.NoError(t, err)
	second, err := svc.MonthlyGrid(ctx, july(1))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestExportXLSX_ProducesWorkbook(t *testing.T) {
	ctx := context.Background()
	svc, records, _ := newFixture()
	records.records = []attendance.Attendance{
		rec("20", 1, "", "", 8),
		rec("30", 2, attendance.StatusPendingApproval, "", 0),
	}

	data, err := svc.ExportXLSX(ctx, july(1))
	require.NoError(t, err)
	require.NotEmpty(t, data)

	// XLSX files are zip archives.
	assert.Equal(t, []byte{'P', 'K'}, data[:2])
}

func TestSheetName(t *testing.T) {
	assert.Equal(t, "TeknikInformatika", sheetName("Teknik Informatika"))
	assert.Equal(t, "Department", sheetName("!!!"))
	assert.LessOrEqual(t, len(sheetName(strings.Repeat("Engineering", 10))), 31)
}
