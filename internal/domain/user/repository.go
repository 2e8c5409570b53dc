package user

import "context"

type UserRepository interface {
	// GetByNIP returns one user or ErrUserNotFound.
	GetByNIP(ctx context.Context, nip string) (User, error)

	// Create inserts a new user; ErrNIPExists on a duplicate key.
	Create(ctx context.Context, u User) error

	// ListSubordinates returns the direct reports of a superior, ordered by
	// full name.
	ListSubordinates(ctx context.Context, superiorNIP string) ([]User, error)

	// ListByRoles returns users whose role is in the given set, ordered by
	// full name.
	ListByRoles(ctx context.Context, roles []Role) ([]User, error)

	// ListStaff returns every non-admin user ordered by department then
	// full name.
	ListStaff(ctx context.Context) ([]User, error)

	// SetPushSubscription stores (or clears, with nil) the Web Push
	// subscription JSON of a user.
	SetPushSubscription(ctx context.Context, nip string, subscription *string) error
}
