package clarification

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/presensi-kampus/presensi-backend-go/internal/domain/attendance"
	"github.com/presensi-kampus/presensi-backend-go/internal/domain/clarification"
	"github.com/presensi-kampus/presensi-backend-go/internal/domain/notification"
	"github.com/presensi-kampus/presensi-backend-go/internal/domain/user"
	"github.com/presensi-kampus/presensi-backend-go/internal/pkg/database"
	"github.com/presensi-kampus/presensi-backend-go/internal/service/file"
)

type ClarificationServiceImpl struct {
	tx database.Transactor
	clarification.ClarificationRepository
	attendance.AttendanceRepository
	user.UserRepository
	fileService file.FileService
	notifier    notification.Notifier
}

func NewClarificationService(
	tx database.Transactor,
	clarificationRepo clarification.ClarificationRepository,
	attendanceRepo attendance.AttendanceRepository,
	userRepo user.UserRepository,
	fileService file.FileService,
	notifier notification.Notifier,
) clarification.ClarificationService {
	return &ClarificationServiceImpl{
		tx:                      tx,
		ClarificationRepository: clarificationRepo,
		AttendanceRepository:    attendanceRepo,
		UserRepository:          userRepo,
		fileService:             fileService,
		notifier:                notifier,
	}
}

// Submit implements clarification.ClarificationService.
func (s *ClarificationServiceImpl) Submit(ctx context.Context, req clarification.SubmitRequest) ([]clarification.ClarificationResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	submitter, err := s.UserRepository.GetByNIP(ctx, req.SubmitterNIP)
	if err != nil {
		return nil, fmt.Errorf("failed to get submitter: %w", err)
	}
	if submitter.SuperiorNIP == nil {
		return nil, clarification.ErrNoSuperior
	}

	superior, err := s.UserRepository.GetByNIP(ctx, *submitter.SuperiorNIP)
	if err != nil {
		return nil, clarification.ErrNoSuperior
	}

	// Duplicate check over every target before anything is written.
	records := make([]attendance.Attendance, 0, len(req.RecordIDs))
	for _, id := range req.RecordIDs {
		rec, err := s.AttendanceRepository.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to get attendance record: %w", err)
		}
		if rec.NIP != req.SubmitterNIP {
			return nil, attendance.ErrAttendanceNotFound
		}
		if attendance.TagOf(rec.StatusText()) == attendance.TagPending {
			return nil, clarification.ErrDuplicateSubmission
		}
		records = append(records, rec)
	}

	// Evidence goes to storage before any database write; an upload failure
	// aborts the whole submission.
	var evidencePath *string
	if req.Evidence != nil && req.EvidenceName != "" {
		path, err := s.fileService.UploadEvidence(ctx, req.SubmitterNIP, req.Evidence, req.EvidenceName)
		if err != nil {
			return nil, fmt.Errorf("failed to store evidence file: %w", err)
		}
		evidencePath = &path
	}

	now := time.Now()
	created := make([]clarification.Clarification, 0, len(records))

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		for _, rec := range records {
			// Re-checked inside the transaction: the row flips only if it is
			// not already pending.
			if err := s.AttendanceRepository.MarkPendingApproval(ctx, rec.ID); err != nil {
				return err
			}

			c := clarification.Clarification{
				ID:                 uuid.New().String(),
				AttendanceID:       rec.ID,
				SubmitterNIP:       req.SubmitterNIP,
				SubmitterName:      req.SubmitterName,
				Department:         req.Department,
				Date:               rec.Date,
				Category:           req.Category,
				ReasonType:         req.ReasonType,
				CurrentApproverNIP: &superior.NIP,
				Status:             clarification.StatusSubmitted,
				RevisionNote:       nil,
				EvidenceFile:       evidencePath,
				SubmittedAt:        now,
			}
			if err := s.ClarificationRepository.Create(ctx, c); err != nil {
				return fmt.Errorf("failed to create clarification: %w", err)
			}
			created = append(created, c)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, superior.NIP,
		"New Clarification Request",
		fmt.Sprintf("%s submitted %d clarification request(s) awaiting your review.", req.SubmitterName, len(created)),
		"/approvals")

	responses := make([]clarification.ClarificationResponse, 0, len(created))
	for _, c := range created {
		responses = append(responses, toResponse(c))
	}
	return responses, nil
}

// Decide implements clarification.ClarificationService.
func (s *ClarificationServiceImpl) Decide(ctx context.Context, req clarification.DecideRequest) (clarification.ClarificationResponse, error) {
	if err := req.Validate(); err != nil {
		return clarification.ClarificationResponse{}, err
	}

	c, err := s.ClarificationRepository.GetByID(ctx, req.ClarificationID)
	if err != nil {
		return clarification.ClarificationResponse{}, err
	}
	if !c.IsOpen() {
		return clarification.ClarificationResponse{}, clarification.ErrAlreadyDecided
	}

	if err := s.authorizeDecision(ctx, c, req); err != nil {
		return clarification.ClarificationResponse{}, err
	}

	var (
		finalStatus      string
		attendanceStatus string
		attendanceRemark string
		revisionNote     *string
	)

	switch req.Action {
	case clarification.ActionApprove:
		code := clarification.LetterCode(c.Category)
		finalStatus = clarification.ApprovedByStatus(req.ActorRole)
		attendanceStatus = attendance.ApprovedLetterStatus(code)
		attendanceRemark = c.ReasonType
	case clarification.ActionReject:
		note := req.RejectionNote
		if note == "" {
			note = "Rejected"
		}
		finalStatus = clarification.RejectedByStatus(req.ActorRole)
		attendanceStatus = attendance.StatusRejected
		attendanceRemark = note + " — please resubmit"
		revisionNote = &note
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.ClarificationRepository.Resolve(ctx, c.ID, finalStatus, revisionNote); err != nil {
			return fmt.Errorf("failed to resolve clarification: %w", err)
		}
		if err := s.AttendanceRepository.SetResolution(ctx, c.AttendanceID, attendanceStatus, attendanceRemark); err != nil {
			return fmt.Errorf("failed to update attendance row: %w", err)
		}
		return nil
	})
	if err != nil {
		return clarification.ClarificationResponse{}, err
	}

	dateLabel := c.Date.Format("2006-01-02")
	if req.Action == clarification.ActionApprove {
		s.notifier.Notify(ctx, c.SubmitterNIP,
			"Clarification Approved",
			fmt.Sprintf("Your clarification for %s was approved.", dateLabel),
			"/dashboard")
	} else {
		s.notifier.Notify(ctx, c.SubmitterNIP,
			"Clarification Rejected",
			fmt.Sprintf("Your clarification for %s was rejected. Please resubmit.", dateLabel),
			"/dashboard")
	}

	c.Status = finalStatus
	c.RevisionNote = revisionNote
	c.CurrentApproverNIP = nil
	return toResponse(c), nil
}

// authorizeDecision allows the addressed approver, a department secretary
// acting for the department head, and the admin.
func (s *ClarificationServiceImpl) authorizeDecision(ctx context.Context, c clarification.Clarification, req clarification.DecideRequest) error {
	if req.ActorRole == user.RoleAdmin {
		return nil
	}
	if !req.ActorRole.IsApprover() {
		return user.ErrApproverAccessRequired
	}
	if c.CurrentApproverNIP != nil && *c.CurrentApproverNIP == req.ActorNIP {
		return nil
	}
	if req.ActorRole == user.RoleSekjur {
		actor, err := s.UserRepository.GetByNIP(ctx, req.ActorNIP)
		if err != nil {
			return fmt.Errorf("failed to get acting user: %w", err)
		}
		if actor.SuperiorNIP != nil && c.CurrentApproverNIP != nil &&
			*actor.SuperiorNIP == *c.CurrentApproverNIP && actor.Department == c.Department {
			return nil
		}
	}
	return user.ErrApproverAccessRequired
}

// ListQueue implements clarification.ClarificationService.
func (s *ClarificationServiceImpl) ListQueue(ctx context.Context, nip string, role user.Role, department string) ([]clarification.ClarificationResponse, error) {
	if !role.IsApprover() {
		return nil, user.ErrApproverAccessRequired
	}

	approvers := []string{nip}
	filterDepartment := ""

	// A department secretary also reviews requests addressed to the
	// department head, limited to their own department.
	if role == user.RoleSekjur {
		caller, err := s.UserRepository.GetByNIP(ctx, nip)
		if err != nil {
			return nil, fmt.Errorf("failed to get caller: %w", err)
		}
		if caller.SuperiorNIP != nil {
			approvers = append(approvers, *caller.SuperiorNIP)
		}
		filterDepartment = department
	}

	items, err := s.ClarificationRepository.ListByApprovers(ctx, approvers, filterDepartment)
	if err != nil {
		return nil, fmt.Errorf("failed to list clarification queue: %w", err)
	}

	return toResponses(items), nil
}

// ListHistory implements clarification.ClarificationService.
func (s *ClarificationServiceImpl) ListHistory(ctx context.Context, nip string, role user.Role) ([]clarification.ClarificationResponse, error) {
	submitters := []string{nip}

	if role.IsApprover() && role != user.RoleAdmin {
		scopeNIP := nip
		if role == user.RoleSekjur {
			caller, err := s.UserRepository.GetByNIP(ctx, nip)
			if err != nil {
				return nil, fmt.Errorf("failed to get caller: %w", err)
			}
			if caller.SuperiorNIP != nil {
				scopeNIP = *caller.SuperiorNIP
			}
		}
		subordinates, err := s.UserRepository.ListSubordinates(ctx, scopeNIP)
		if err != nil {
			return nil, fmt.Errorf("failed to list subordinates: %w", err)
		}
		submitters = submitters[:0]
		for _, sub := range subordinates {
			submitters = append(submitters, sub.NIP)
		}
		if len(submitters) == 0 {
			return []clarification.ClarificationResponse{}, nil
		}
	}

	items, err := s.ClarificationRepository.ListBySubmitters(ctx, submitters)
	if err != nil {
		return nil, fmt.Errorf("failed to list clarification history: %w", err)
	}

	return toResponses(items), nil
}

func toResponse(c clarification.Clarification) clarification.ClarificationResponse {
	return clarification.ClarificationResponse{
		ID:                 c.ID,
		AttendanceID:       c.AttendanceID,
		SubmitterNIP:       c.SubmitterNIP,
		SubmitterName:      c.SubmitterName,
		Department:         c.Department,
		Date:               c.Date.Format("2006-01-02"),
		Category:           c.Category,
		ReasonType:         c.ReasonType,
		CurrentApproverNIP: c.CurrentApproverNIP,
		Status:             c.Status,
		RevisionNote:       c.RevisionNote,
		EvidenceFile:       c.EvidenceFile,
		SubmittedAt:        c.SubmittedAt.Format("2006-01-02 15:04:05"),
	}
}

func toResponses(items []clarification.Clarification) []clarification.ClarificationResponse {
	responses := make([]clarification.ClarificationResponse, 0, len(items))
	for _, c := range items {
		responses = append(responses, toResponse(c))
	}
	return responses
}
