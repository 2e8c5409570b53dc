package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	// GetByID returns one attendance row.
	GetByID(ctx context.Context, id string) (Attendance, error)

	// GetByOwnerAndDate returns the row for an owner on a calendar day, or
	// ErrAttendanceNotFound.
	GetByOwnerAndDate(ctx context.Context, nip string, date time.Time) (Attendance, error)

	// Create inserts a bare row (owner and date; punches and status empty).
	Create(ctx context.Context, rec Attendance) (Attendance, error)

	// ListByOwner returns all rows for an owner, newest date first.
	ListByOwner(ctx context.Context, nip string) ([]Attendance, error)

	// ListByOwnerAndMonth returns an owner's rows within one calendar month,
	// newest date first.
	ListByOwnerAndMonth(ctx context.Context, nip string, month time.Time) ([]Attendance, error)

	// ListByMonth returns every row within one calendar month.
	ListByMonth(ctx context.Context, month time.Time) ([]Attendance, error)

	// LatestMonthOf returns the month of the owner's most recent row, or
	// ErrAttendanceNotFound when the owner has none.
	LatestMonthOf(ctx context.Context, nip string) (time.Time, error)

	// MarkPendingApproval flips a row to "Pending Approval" only if it is not
	// already pending; returns ErrAlreadyPending otherwise.
	MarkPendingApproval(ctx context.Context, id string) error

	// SetResolution overwrites a row's status and remark.
	SetResolution(ctx context.Context, id string, status string, remark string) error

	// CountApprovedAnnualLeave counts rows in the given year whose status
	// starts with "Approved" and whose remark mentions annual leave.
	CountApprovedAnnualLeave(ctx context.Context, nip string, year int) (int, error)
}
