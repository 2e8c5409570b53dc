package clarification

import (
	"context"

	"github.com/presensi-kampus/presensi-backend-go/internal/domain/user"
)

// ClarificationService is the approval chain: a submission opens one request
// per selected attendance row and routes it to the submitter's immediate
// superior; a decision resolves it and writes the terminal attendance
// status back.
type ClarificationService interface {
	// Submit opens clarifications for the selected rows. All-or-nothing:
	// if any row is already pending, no row is touched.
	Submit(ctx context.Context, req SubmitRequest) ([]ClarificationResponse, error)

	// Decide resolves one request with an approval or rejection.
	Decide(ctx context.Context, req DecideRequest) (ClarificationResponse, error)

	// ListQueue returns the open requests the caller may review. A
	// department secretary also sees requests addressed to the department
	// head, filtered to the secretary's own department.
	ListQueue(ctx context.Context, nip string, role user.Role, department string) ([]ClarificationResponse, error)

	// ListHistory returns past requests: an approver sees their
	// subordinates' requests, staff see their own.
	ListHistory(ctx context.Context, nip string, role user.Role) ([]ClarificationResponse, error)
}
