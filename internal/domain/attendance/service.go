package attendance

import (
	"context"
)

// AttendanceService defines read-side attendance operations. Rows are
// produced by the external time-clock feed; mutation happens through the
// clarification and leave services.
type AttendanceService interface {
	// GetDashboard classifies every row of the authenticated staff member
	// and aggregates the banner, leave balance and forgot-punch counters.
	GetDashboard(ctx context.Context, nip string) (DashboardResponse, error)

	// GetStaffSummary builds the per-staff view for approver dashboards:
	// the target's most recent attendance month, classified, plus balance.
	GetStaffSummary(ctx context.Context, nip string) (StaffSummaryResponse, error)
}
