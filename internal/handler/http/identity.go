package http

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/presensi-kampus/presensi-backend-go/internal/domain/auth"
	"github.com/presensi-kampus/presensi-backend-go/internal/domain/user"
)

// Identity is the verified caller pulled out of the access token. Handlers
// thread it explicitly into every service call; nothing below the handler
// layer reads the token.
type Identity struct {
	NIP        string
	FullName   string
	Role       user.Role
	Department string
}

func identityFromRequest(r *http.Request) (Identity, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return Identity{}, auth.ErrInvalidToken
	}

	nip, ok := claims["nip"].(string)
	if !ok || nip == "" {
		return Identity{}, auth.ErrInvalidToken
	}
	fullName, _ := claims["full_name"].(string)
	roleStr, _ := claims["role"].(string)
	department, _ := claims["department"].(string)

	return Identity{
		NIP:        nip,
		FullName:   fullName,
		Role:       user.Role(roleStr),
		Department: department,
	}, nil
}
