package auth

import "context"

type AuthService interface {
	// Login verifies NIP + password and issues an access token carrying the
	// identity and role the handlers thread into every core call.
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
}
