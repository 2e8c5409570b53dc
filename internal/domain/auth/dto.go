package auth

import "github.com/presensi-kampus/presensi-backend-go/internal/pkg/validator"

// LoginRequest is the NIP + password login form.
type LoginRequest struct {
	NIP      string `json:"nip"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.NIP) {
		errs = append(errs, validator.ValidationError{Field: "nip", Message: "is required"})
	}
	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// LoginResponse carries the access token and the identity the frontend
// routes dashboards by.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresAt   int64  `json:"expires_at"`
	NIP         string `json:"nip"`
	FullName    string `json:"full_name"`
	Role        string `json:"role"`
	Department  string `json:"department"`
}
