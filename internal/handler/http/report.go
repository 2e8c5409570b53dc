package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/presensi-kampus/presensi-backend-go/internal/domain/report"
	"github.com/presensi-kampus/presensi-backend-go/internal/handler/http/response"
	"github.com/presensi-kampus/presensi-backend-go/internal/pkg/validator"
)

type ReportHandler interface {
	MonthlyGrid(w http.ResponseWriter, r *http.Request)
	ExportXLSX(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// monthParam reads ?month=YYYY-MM, defaulting to the current month.
func monthParam(r *http.Request) (time.Time, error) {
	raw := r.URL.Query().Get("month")
	if raw == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC), nil
	}
	if !validator.IsValidMonth(raw) {
		return time.Time{}, fmt.Errorf("month must be YYYY-MM")
	}
	return time.Parse("2006-01", raw)
}

// MonthlyGrid implements ReportHandler.
func (h *reportHandlerImpl) MonthlyGrid(w http.ResponseWriter, r *http.Request) {
	month, err := monthParam(r)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	resp, err := h.reportService.MonthlyGrid(r.Context(), month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// ExportXLSX implements ReportHandler.
func (h *reportHandlerImpl) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	month, err := monthParam(r)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	data, err := h.reportService.ExportXLSX(r.Context(), month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filename := fmt.Sprintf("attendance-report-%s.xlsx", month.Format("2006-01"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	_, _ = w.Write(data)
}
