package leave

import "context"

type GrantRepository interface {
	// Create inserts a new leave grant.
	Create(ctx context.Context, g Grant) error

	// ListByOwner returns an owner's grants, newest start date first.
	ListByOwner(ctx context.Context, nip string) ([]Grant, error)

	// List returns every grant, newest entry first.
	List(ctx context.Context) ([]Grant, error)
}
