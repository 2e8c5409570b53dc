package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/presensi-kampus/presensi-backend-go/internal/domain/leave"
	"github.com/presensi-kampus/presensi-backend-go/internal/handler/http/response"
)

type LeaveHandler interface {
	CreateGrant(w http.ResponseWriter, r *http.Request)
	ListAllGrants(w http.ResponseWriter, r *http.Request)
	ListMyGrants(w http.ResponseWriter, r *http.Request)
	MyBalance(w http.ResponseWriter, r *http.Request)
}

type leaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &leaveHandlerImpl{
		leaveService: leaveService,
	}
}

type grantPayload struct {
	NIP        string `json:"nip"`
	LetterDate string `json:"letter_date"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	LeaveType  string `json:"leave_type"`
	Reason     string `json:"reason"`
}

// CreateGrant implements LeaveHandler.
func (h *leaveHandlerImpl) CreateGrant(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	// Parse multipart form (max 10MB)
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	dataJSON := r.FormValue("data")
	if dataJSON == "" {
		response.BadRequest(w, "Field 'data' is required", nil)
		return
	}

	var payload grantPayload
	if err := json.Unmarshal([]byte(dataJSON), &payload); err != nil {
		slog.Error("Failed to unmarshal JSON data", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	req := leave.CreateGrantRequest{
		NIP:        payload.NIP,
		LetterDate: payload.LetterDate,
		StartDate:  payload.StartDate,
		EndDate:    payload.EndDate,
		LeaveType:  payload.LeaveType,
		Reason:     payload.Reason,
		EnteredBy:  identity.NIP,
	}

	// Leave letter is optional.
	letter, header, err := r.FormFile("letter")
	if err == nil {
		defer letter.Close()
		req.Letter = letter
		req.LetterName = header.Filename
	} else if err != http.ErrMissingFile {
		response.BadRequest(w, "Invalid file upload", nil)
		return
	}

	resp, err := h.leaveService.CreateGrant(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave entered", resp)
}

// ListAllGrants implements LeaveHandler.
func (h *leaveHandlerImpl) ListAllGrants(w http.ResponseWriter, r *http.Request) {
	resp, err := h.leaveService.ListAllGrants(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// ListMyGrants implements LeaveHandler.
func (h *leaveHandlerImpl) ListMyGrants(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := h.leaveService.ListGrants(r.Context(), identity.NIP)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// MyBalance implements LeaveHandler.
func (h *leaveHandlerImpl) MyBalance(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := h.leaveService.RemainingLeave(r.Context(), identity.NIP)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}
