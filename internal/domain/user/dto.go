package user

// CreateUserRequest is the admin user-creation form.
type CreateUserRequest struct {
	NIP              string `json:"nip"`
	Password         string `json:"password"`
	FullName         string `json:"full_name"`
	Department       string `json:"department"`
	DepartmentDetail string `json:"department_detail"`
	Role             string `json:"role"`
	SuperiorNIP      string `json:"superior_nip"`
	AnnualLeaveDays  *int   `json:"annual_leave_days"`
}

// UserResponse is the JSON shape of a user without credentials.
type UserResponse struct {
	NIP              string  `json:"nip"`
	FullName         string  `json:"full_name"`
	Department       string  `json:"department"`
	DepartmentDetail string  `json:"department_detail"`
	Role             string  `json:"role"`
	SuperiorNIP      *string `json:"superior_nip"`
	AnnualLeaveDays  int     `json:"annual_leave_days"`
}
