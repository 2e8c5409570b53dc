package user

import "time"

// User mirrors one row of the users table. SuperiorNIP forms the approval
// routing forest: each user points to at most one immediate superior, and a
// clarification is always routed to the submitter's immediate superior.
type User struct {
	NIP              string
	Password         string
	FullName         string
	Department       string
	DepartmentDetail string
	Role             Role
	SuperiorNIP      *string
	AnnualLeaveDays  int
	PushSubscription *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
