package user

import "context"

type UserService interface {
	// Create registers a new user. The superior, when given, must exist,
	// must hold a role that can approve, and must not close a reporting
	// cycle.
	Create(ctx context.Context, req CreateUserRequest) (UserResponse, error)

	// Get returns one user by NIP.
	Get(ctx context.Context, nip string) (UserResponse, error)

	// ListSubordinates returns the users whose requests the caller may
	// browse. A department secretary resolves through the department head.
	ListSubordinates(ctx context.Context, nip string, role Role) ([]UserResponse, error)

	// ListPotentialSuperiors returns the users assignable as a superior.
	ListPotentialSuperiors(ctx context.Context) ([]UserResponse, error)
}
