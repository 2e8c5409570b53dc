package leave

import (
	"context"

	"github.com/presensi-kampus/presensi-backend-go/internal/domain/attendance"
)

type LeaveService interface {
	// CreateGrant enters a leave for a staff member and force-approves the
	// attendance rows of every business day in the range. Fails without
	// mutating anything when a day already has activity or the annual
	// balance is exceeded.
	CreateGrant(ctx context.Context, req CreateGrantRequest) (GrantResponse, error)

	// RemainingLeave recomputes the annual balance from the attendance
	// table; never cached.
	RemainingLeave(ctx context.Context, nip string) (attendance.LeaveBalance, error)

	// ListGrants returns one owner's leave history.
	ListGrants(ctx context.Context, nip string) ([]GrantResponse, error)

	// ListAllGrants returns the admin's full grant history.
	ListAllGrants(ctx context.Context) ([]GrantResponse, error)
}
