package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/presensi-kampus/presensi-backend-go/internal/domain/attendance"
	"github.com/presensi-kampus/presensi-backend-go/internal/domain/clarification"
	"github.com/presensi-kampus/presensi-backend-go/internal/domain/leave"
	"github.com/presensi-kampus/presensi-backend-go/internal/domain/user"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	clarification.ClarificationRepository
	user.UserRepository
	leaveService leave.LeaveService
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	clarificationRepo clarification.ClarificationRepository,
	userRepo user.UserRepository,
	leaveService leave.LeaveService,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository:    attendanceRepo,
		ClarificationRepository: clarificationRepo,
		UserRepository:          userRepo,
		leaveService:            leaveService,
	}
}

// timePtrToClock formats a punch as HH:MM:SS.
func timePtrToClock(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("15:04:05")
	return &s
}

func toViews(records []attendance.Attendance) ([]attendance.AttendanceView, []attendance.DerivedStatus) {
	views := make([]attendance.AttendanceView, 0, len(records))
	derived := make([]attendance.DerivedStatus, 0, len(records))
	for _, rec := range records {
		st := attendance.Derive(rec)
		derived = append(derived, st)
		views = append(views, attendance.AttendanceView{
			ID:                   rec.ID,
			Date:                 rec.Date.Format("2006-01-02"),
			ClockIn:              timePtrToClock(rec.ClockIn),
			ClockOut:             timePtrToClock(rec.ClockOut),
			StatusText:           st.Text,
			StatusColor:          string(st.Color),
			ClarificationAllowed: st.ClarificationAllowed,
		})
	}
	return views, derived
}

// GetDashboard implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetDashboard(ctx context.Context, nip string) (attendance.DashboardResponse, error) {
	records, err := s.AttendanceRepository.ListByOwner(ctx, nip)
	if err != nil {
		return attendance.DashboardResponse{}, fmt.Errorf("failed to list attendance records: %w", err)
	}

	views, derived := toViews(records)
	summary := attendance.Summarize(derived)

	balance, err := s.leaveService.RemainingLeave(ctx, nip)
	if err != nil {
		return attendance.DashboardResponse{}, fmt.Errorf("failed to compute leave balance: %w", err)
	}

	month := time.Now()
	forgotIn, err := s.ClarificationRepository.CountByReasonType(ctx, nip, clarification.ReasonForgotClockIn, month)
	if err != nil {
		return attendance.DashboardResponse{}, fmt.Errorf("failed to count forgot clock-in requests: %w", err)
	}
	forgotOut, err := s.ClarificationRepository.CountByReasonType(ctx, nip, clarification.ReasonForgotClockOut, month)
	if err != nil {
		return attendance.DashboardResponse{}, fmt.Errorf("failed to count forgot clock-out requests: %w", err)
	}

	return attendance.DashboardResponse{
		Records:             views,
		SummaryMessage:      summary.Message,
		SummaryColor:        string(summary.Color),
		LeaveBalance:        balance,
		ForgotClockInCount:  forgotIn,
		ForgotClockOutCount: forgotOut,
	}, nil
}

// GetStaffSummary implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetStaffSummary(ctx context.Context, nip string) (attendance.StaffSummaryResponse, error) {
	target, err := s.UserRepository.GetByNIP(ctx, nip)
	if err != nil {
		return attendance.StaffSummaryResponse{}, err
	}

	// The summary covers the month of the staff member's most recent row.
	var records []attendance.Attendance
	month, err := s.AttendanceRepository.LatestMonthOf(ctx, nip)
	if err != nil && !errors.Is(err, attendance.ErrAttendanceNotFound) {
		return attendance.StaffSummaryResponse{}, fmt.Errorf("failed to find latest attendance month: %w", err)
	}
	if err == nil {
		records, err = s.AttendanceRepository.ListByOwnerAndMonth(ctx, nip, month)
		if err != nil {
			return attendance.StaffSummaryResponse{}, fmt.Errorf("failed to list attendance records: %w", err)
		}
	}

	views, _ := toViews(records)

	balance, err := s.leaveService.RemainingLeave(ctx, nip)
	if err != nil {
		return attendance.StaffSummaryResponse{}, fmt.Errorf("failed to compute leave balance: %w", err)
	}

	return attendance.StaffSummaryResponse{
		NIP:          target.NIP,
		Name:         target.FullName,
		Records:      views,
		LeaveBalance: balance,
	}, nil
}
