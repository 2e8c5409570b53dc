package report

import (
	"context"
	"time"
)

type ReportService interface {
	// MonthlyGrid rebuilds the status-code grid for the given month.
	// Deterministic: the same month over the same data yields the same grid.
	MonthlyGrid(ctx context.Context, month time.Time) (MonthlyReport, error)

	// ExportXLSX renders the grid as a workbook, one sheet per department.
	ExportXLSX(ctx context.Context, month time.Time) ([]byte, error)
}
