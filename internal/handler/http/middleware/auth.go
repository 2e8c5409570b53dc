package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/presensi-kampus/presensi-backend-go/internal/domain/auth"
	"github.com/presensi-kampus/presensi-backend-go/internal/handler/http/response"
)

// AuthRequired rejects requests whose context carries no verified access
// token. It must run after jwtauth.Verifier, which parses the Authorization
// header and stores the token in the request context.
func AuthRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil || token == nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		// Only access tokens grant entry; any other claimed type is refused.
		if typ, ok := claims["type"].(string); !ok || typ != "access" {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		next.ServeHTTP(w, r)
	})
}
