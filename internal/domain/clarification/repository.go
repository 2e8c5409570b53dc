package clarification

import (
	"context"
	"time"
)

type ClarificationRepository interface {
	// GetByID returns one clarification or ErrClarificationNotFound.
	GetByID(ctx context.Context, id string) (Clarification, error)

	// Create inserts a new clarification row.
	Create(ctx context.Context, c Clarification) error

	// Resolve writes the terminal status and optional revision note and
	// clears the current approver.
	Resolve(ctx context.Context, id string, finalStatus string, revisionNote *string) error

	// ListByApprovers returns the open queue for a set of approver NIPs,
	// optionally filtered to one department ("" disables the filter).
	ListByApprovers(ctx context.Context, approverNIPs []string, department string) ([]Clarification, error)

	// ListBySubmitters returns all requests of the given submitters, newest
	// submission first.
	ListBySubmitters(ctx context.Context, nips []string) ([]Clarification, error)

	// ListApprovedByMonth returns requests resolved as approved whose target
	// date falls in the given month.
	ListApprovedByMonth(ctx context.Context, month time.Time) ([]Clarification, error)

	// CountByReasonType counts a submitter's requests of one reason type
	// submitted within the given month.
	CountByReasonType(ctx context.Context, nip string, reasonType string, month time.Time) (int, error)
}
