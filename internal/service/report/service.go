package report

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/presensi-kampus/presensi-backend-go/internal/domain/attendance"
	"github.com/presensi-kampus/presensi-backend-go/internal/domain/clarification"
	"github.com/presensi-kampus/presensi-backend-go/internal/domain/report"
	"github.com/presensi-kampus/presensi-backend-go/internal/domain/user"
)

type ReportServiceImpl struct {
	attendance.AttendanceRepository
	clarification.ClarificationRepository
	user.UserRepository
}

func NewReportService(
	attendanceRepo attendance.AttendanceRepository,
	clarificationRepo clarification.ClarificationRepository,
	userRepo user.UserRepository,
) report.ReportService {
	return &ReportServiceImpl{
		AttendanceRepository:    attendanceRepo,
		ClarificationRepository: clarificationRepo,
		UserRepository:          userRepo,
	}
}

// leaveMarkers are the remark substrings that classify an approved day as
// leave. Legacy rows keep the Indonesian word.
var leaveMarkers = []string{"Annual Leave", "Leave", "Cuti"}

// dayKey identifies one (owner, calendar day) cell.
func dayKey(nip string, date time.Time) string {
	return nip + "|" + date.Format("2006-01-02")
}

// codeFor classifies one attendance row into its grid code.
func codeFor(rec attendance.Attendance, categories map[string]string) string {
	status := rec.StatusText()

	switch attendance.TagOf(status) {
	case attendance.TagApproved:
		remark := rec.RemarkText()
		for _, m := range leaveMarkers {
			if strings.Contains(remark, m) || strings.Contains(status, m) {
				return report.CodeAnnualLeave
			}
		}
		switch categories[dayKey(rec.NIP, rec.Date)] {
		case clarification.CategoryFlexible:
			return report.CodeFlexible
		case clarification.CategoryNonFlexible:
			return report.CodeNonFlexible
		}
		return report.CodeOtherApproved
	case attendance.TagPending:
		return report.CodePending
	}

	if rec.ClockIn != nil && rec.ClockOut != nil &&
		rec.ClockOut.Sub(*rec.ClockIn) >= attendance.MinWorkDuration {
		return report.CodeFulfilled
	}
	return report.CodePending
}

// MonthlyGrid implements report.ReportService.
func (s *ReportServiceImpl) MonthlyGrid(ctx context.Context, month time.Time) (report.MonthlyReport, error) {
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	staff, err := s.UserRepository.ListStaff(ctx)
	if err != nil {
		return report.MonthlyReport{}, fmt.Errorf("failed to list staff: %w", err)
	}

	records, err := s.AttendanceRepository.ListByMonth(ctx, first)
	if err != nil {
		return report.MonthlyReport{}, fmt.Errorf("failed to list attendance for month: %w", err)
	}

	approved, err := s.ClarificationRepository.ListApprovedByMonth(ctx, first)
	if err != nil {
		return report.MonthlyReport{}, fmt.Errorf("failed to list approved clarifications: %w", err)
	}

	// Letter categories of approved clarifications keyed by (owner, day).
	categories := make(map[string]string, len(approved))
	for _, c := range approved {
		categories[dayKey(c.SubmitterNIP, c.Date)] = c.Category
	}

	recordsByOwner := make(map[string][]attendance.Attendance)
	for _, rec := range records {
		recordsByOwner[rec.NIP] = append(recordsByOwner[rec.NIP], rec)
	}

	grids := make(map[string]*report.DepartmentGrid)
	for _, u := range staff {
		row := report.StaffRow{
			NIP:    u.NIP,
			Name:   u.FullName,
			Codes:  make(map[int]string),
			Totals: make(map[string]int),
		}
		for _, rec := range recordsByOwner[u.NIP] {
			code := codeFor(rec, categories)
			row.Codes[rec.Date.Day()] = code
			row.Totals[code]++
		}

		parts := make([]string, 0, len(report.AllCodes))
		for _, code := range report.AllCodes {
			if row.Totals[code] > 0 {
				parts = append(parts, fmt.Sprintf("%s: %d", code, row.Totals[code]))
			}
		}
		row.Summary = strings.Join(parts, ", ")

		grid, ok := grids[u.Department]
		if !ok {
			grid = &report.DepartmentGrid{
				Department:     u.Department,
				DepartmentName: u.DepartmentDetail,
			}
			grids[u.Department] = grid
		}
		grid.Staff = append(grid.Staff, row)
	}

	departments := make([]report.DepartmentGrid, 0, len(grids))
	for _, grid := range grids {
		sort.Slice(grid.Staff, func(i, j int) bool { return grid.Staff[i].Name < grid.Staff[j].Name })
		departments = append(departments, *grid)
	}
	sort.Slice(departments, func(i, j int) bool { return departments[i].Department < departments[j].Department })

	return report.MonthlyReport{
		Month:       first.Format("2006-01"),
		MonthLabel:  first.Format("January 2006"),
		DaysInMonth: daysInMonth,
		Departments: departments,
	}, nil
}
