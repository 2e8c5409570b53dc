package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/presensi-kampus/presensi-backend-go/internal/domain/attendance"
	"github.com/presensi-kampus/presensi-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	GetMyDashboard(w http.ResponseWriter, r *http.Request)
	GetStaffSummary(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// GetMyDashboard implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetMyDashboard(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := h.attendanceService.GetDashboard(r.Context(), identity.NIP)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// GetStaffSummary implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetStaffSummary(w http.ResponseWriter, r *http.Request) {
	nip := chi.URLParam(r, "nip")
	if nip == "" {
		response.BadRequest(w, "NIP is required", nil)
		return
	}

	resp, err := h.attendanceService.GetStaffSummary(r.Context(), nip)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}
