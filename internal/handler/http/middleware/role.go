package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/presensi-kampus/presensi-backend-go/internal/domain/auth"
	"github.com/presensi-kampus/presensi-backend-go/internal/domain/user"
	"github.com/presensi-kampus/presensi-backend-go/internal/handler/http/response"
)

func roleFromClaims(r *http.Request) (user.Role, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", auth.ErrInvalidToken
	}
	roleStr, ok := claims["role"].(string)
	if !ok {
		return "", auth.ErrInvalidToken
	}
	return user.Role(roleStr), nil
}

func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, err := roleFromClaims(r)
		if err != nil {
			response.HandleError(w, err)
			return
		}

		if role != user.RoleAdmin {
			response.HandleError(w, user.ErrAdminAccessRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func ApproverOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, err := roleFromClaims(r)
		if err != nil {
			response.HandleError(w, err)
			return
		}

		if !role.IsApprover() {
			response.HandleError(w, user.ErrApproverAccessRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
