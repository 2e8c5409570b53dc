package leave

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/presensi-kampus/presensi-backend-go/internal/domain/attendance"
	"github.com/presensi-kampus/presensi-backend-go/internal/domain/leave"
	"github.com/presensi-kampus/presensi-backend-go/internal/domain/notification"
	"github.com/presensi-kampus/presensi-backend-go/internal/domain/user"
	"github.com/presensi-kampus/presensi-backend-go/internal/pkg/database"
	"github.com/presensi-kampus/presensi-backend-go/internal/service/file"
)

type LeaveServiceImpl struct {
	tx database.Transactor
	leave.GrantRepository
	attendance.AttendanceRepository
	user.UserRepository
	fileService file.FileService
	notifier    notification.Notifier
}

func NewLeaveService(
	tx database.Transactor,
	grantRepo leave.GrantRepository,
	attendanceRepo attendance.AttendanceRepository,
	userRepo user.UserRepository,
	fileService file.FileService,
	notifier notification.Notifier,
) leave.LeaveService {
	return &LeaveServiceImpl{
		tx:                   tx,
		GrantRepository:      grantRepo,
		AttendanceRepository: attendanceRepo,
		UserRepository:       userRepo,
		fileService:          fileService,
		notifier:             notifier,
	}
}

// workdaysBetween expands [start, end] to its Monday through Friday dates.
func workdaysBetween(start, end time.Time) []time.Time {
	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		switch d.Weekday() {
		case time.Saturday, time.Sunday:
			continue
		}
		days = append(days, d)
	}
	return days
}

// CreateGrant implements leave.LeaveService.
func (s *LeaveServiceImpl) CreateGrant(ctx context.Context, req leave.CreateGrantRequest) (leave.GrantResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.GrantResponse{}, err
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return leave.GrantResponse{}, fmt.Errorf("invalid start date: %w", err)
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return leave.GrantResponse{}, fmt.Errorf("invalid end date: %w", err)
	}
	if start.After(end) {
		return leave.GrantResponse{}, leave.ErrInvalidDateRange
	}

	letterDate := start
	if req.LetterDate != "" {
		if letterDate, err = time.Parse("2006-01-02", req.LetterDate); err != nil {
			return leave.GrantResponse{}, fmt.Errorf("invalid letter date: %w", err)
		}
	}

	owner, err := s.UserRepository.GetByNIP(ctx, req.NIP)
	if err != nil {
		return leave.GrantResponse{}, err
	}

	workdays := workdaysBetween(start, end)
	if len(workdays) == 0 {
		return leave.GrantResponse{}, leave.ErrNoWorkdaysInRange
	}

	// Every target day must still be undecided before anything is written.
	for _, day := range workdays {
		rec, err := s.AttendanceRepository.GetByOwnerAndDate(ctx, req.NIP, day)
		if err != nil {
			if errors.Is(err, attendance.ErrAttendanceNotFound) {
				continue
			}
			return leave.GrantResponse{}, fmt.Errorf("failed to check attendance for %s: %w", day.Format("2006-01-02"), err)
		}
		if rec.HasClockActivity() || attendance.IsFinal(rec.StatusText()) {
			return leave.GrantResponse{}, leave.ErrDateHasActivity
		}
	}

	if req.LeaveType == leave.TypeAnnual {
		balance, err := s.RemainingLeave(ctx, req.NIP)
		if err != nil {
			return leave.GrantResponse{}, err
		}
		if len(workdays) > balance.Remaining {
			return leave.GrantResponse{}, leave.ErrInsufficientBalance
		}
	}

	var letterPath *string
	if req.Letter != nil && req.LetterName != "" {
		path, err := s.fileService.UploadLeaveLetter(ctx, req.NIP, start, req.Letter, req.LetterName)
		if err != nil {
			return leave.GrantResponse{}, fmt.Errorf("failed to store leave letter: %w", err)
		}
		letterPath = &path
	}

	remark := req.LeaveType
	if req.Reason != "" {
		remark = req.LeaveType + " — " + req.Reason
	}

	grant := leave.Grant{
		ID:         uuid.New().String(),
		NIP:        req.NIP,
		OwnerName:  owner.FullName,
		LetterDate: letterDate,
		StartDate:  start,
		EndDate:    end,
		LeaveType:  req.LeaveType,
		Reason:     req.Reason,
		LetterFile: letterPath,
		EnteredBy:  req.EnteredBy,
		EnteredAt:  time.Now(),
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.GrantRepository.Create(ctx, grant); err != nil {
			return err
		}
		for _, day := range workdays {
			rec, err := s.AttendanceRepository.GetByOwnerAndDate(ctx, req.NIP, day)
			if err != nil {
				if !errors.Is(err, attendance.ErrAttendanceNotFound) {
					return fmt.Errorf("failed to load attendance for %s: %w", day.Format("2006-01-02"), err)
				}
				rec, err = s.AttendanceRepository.Create(ctx, attendance.Attendance{
					ID:   uuid.New().String(),
					NIP:  req.NIP,
					Date: day,
				})
				if err != nil {
					return fmt.Errorf("failed to create attendance for %s: %w", day.Format("2006-01-02"), err)
				}
			}
			if err := s.AttendanceRepository.SetResolution(ctx, rec.ID, attendance.StatusApprovedAdmin, remark); err != nil {
				return fmt.Errorf("failed to mark attendance for %s: %w", day.Format("2006-01-02"), err)
			}
		}
		return nil
	})
	if err != nil {
		return leave.GrantResponse{}, err
	}

	s.notifier.Notify(ctx, req.NIP,
		"Leave Entered",
		fmt.Sprintf("A %s covering %s to %s has been entered for you.", req.LeaveType, req.StartDate, req.EndDate),
		"/dashboard")

	resp := toGrantResponse(grant)
	resp.Workdays = len(workdays)
	return resp, nil
}

// RemainingLeave implements leave.LeaveService.
func (s *LeaveServiceImpl) RemainingLeave(ctx context.Context, nip string) (attendance.LeaveBalance, error) {
	owner, err := s.UserRepository.GetByNIP(ctx, nip)
	if err != nil {
		return attendance.LeaveBalance{}, err
	}

	used, err := s.AttendanceRepository.CountApprovedAnnualLeave(ctx, nip, time.Now().Year())
	if err != nil {
		return attendance.LeaveBalance{}, fmt.Errorf("failed to count used annual leave: %w", err)
	}

	return attendance.LeaveBalance{
		Allowance: owner.AnnualLeaveDays,
		Used:      used,
		Remaining: owner.AnnualLeaveDays - used,
	}, nil
}

// ListGrants implements leave.LeaveService.
func (s *LeaveServiceImpl) ListGrants(ctx context.Context, nip string) ([]leave.GrantResponse, error) {
	grants, err := s.GrantRepository.ListByOwner(ctx, nip)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave grants: %w", err)
	}
	return toGrantResponses(grants), nil
}

// ListAllGrants implements leave.LeaveService.
func (s *LeaveServiceImpl) ListAllGrants(ctx context.Context) ([]leave.GrantResponse, error) {
	grants, err := s.GrantRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave grants: %w", err)
	}
	return toGrantResponses(grants), nil
}

func toGrantResponse(g leave.Grant) leave.GrantResponse {
	return leave.GrantResponse{
		ID:         g.ID,
		NIP:        g.NIP,
		OwnerName:  g.OwnerName,
		LetterDate: g.LetterDate.Format("2006-01-02"),
		StartDate:  g.StartDate.Format("2006-01-02"),
		EndDate:    g.EndDate.Format("2006-01-02"),
		LeaveType:  g.LeaveType,
		Reason:     g.Reason,
		LetterFile: g.LetterFile,
		EnteredBy:  g.EnteredBy,
	}
}

func toGrantResponses(grants []leave.Grant) []leave.GrantResponse {
	responses := make([]leave.GrantResponse, 0, len(grants))
	for _, g := range grants {
		responses = append(responses, toGrantResponse(g))
	}
	return responses
}
