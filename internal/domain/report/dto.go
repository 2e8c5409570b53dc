package report

// Status codes of the monthly export grid.
const (
	CodeFulfilled     = "KT" // hours fulfilled
	CodePending       = "PK" // pending / incomplete
	CodeNonFlexible   = "NF" // approved, non-flexible letter
	CodeFlexible      = "FL" // approved, flexible letter
	CodeAnnualLeave   = "CT" // leave
	CodeOtherApproved = "IZ" // approved without a matching letter
)

// AllCodes lists the codes in the order totals are rendered.
var AllCodes = []string{
	CodeFulfilled,
	CodePending,
	CodeNonFlexible,
	CodeFlexible,
	CodeAnnualLeave,
	CodeOtherApproved,
}

// StaffRow is one staff member's month in the grid: a code per day that has
// an attendance row, and per-code totals.
type StaffRow struct {
	NIP     string         `json:"nip"`
	Name    string         `json:"name"`
	Codes   map[int]string `json:"codes"`
	Totals  map[string]int `json:"totals"`
	Summary string         `json:"summary"`
}

// DepartmentGrid groups staff rows of one department.
type DepartmentGrid struct {
	Department     string     `json:"department"`
	DepartmentName string     `json:"department_name"`
	Staff          []StaffRow `json:"staff"`
}

// MonthlyReport is the finalized per-department, per-day status-code grid
// for one month.
type MonthlyReport struct {
	Month       string           `json:"month"`
	MonthLabel  string           `json:"month_label"`
	DaysInMonth int              `json:"days_in_month"`
	Departments []DepartmentGrid `json:"departments"`
}
