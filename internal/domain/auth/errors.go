package auth

import "errors"

// Auth domain errors
var (
	ErrInvalidCredentials = errors.New("invalid NIP or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)
