package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"github.com/presensi-kampus/presensi-backend-go/internal/domain/clarification"
	"github.com/presensi-kampus/presensi-backend-go/internal/handler/http/response"
	"github.com/presensi-kampus/presensi-backend-go/internal/service/file"
)

type ClarificationHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	Decide(w http.ResponseWriter, r *http.Request)
	Queue(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
	Evidence(w http.ResponseWriter, r *http.Request)
}

type clarificationHandlerImpl struct {
	clarificationService clarification.ClarificationService
	fileService          file.FileService
}

func NewClarificationHandler(clarificationService clarification.ClarificationService, fileService file.FileService) ClarificationHandler {
	return &clarificationHandlerImpl{
		clarificationService: clarificationService,
		fileService:          fileService,
	}
}

type submitPayload struct {
	RecordIDs  []string `json:"record_ids"`
	Category   string   `json:"category"`
	ReasonType string   `json:"reason_type"`
}

// Submit implements ClarificationHandler.
func (h *clarificationHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
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

	var payload submitPayload
	if err := json.Unmarshal([]byte(dataJSON), &payload); err != nil {
		slog.Error("Failed to unmarshal JSON data", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	req := clarification.SubmitRequest{
		SubmitterNIP:  identity.NIP,
		SubmitterName: identity.FullName,
		Department:    identity.Department,
		RecordIDs:     payload.RecordIDs,
		Category:      payload.Category,
		ReasonType:    payload.ReasonType,
	}

	// Evidence is optional.
	evidence, header, err := r.FormFile("evidence")
	if err == nil {
		defer evidence.Close()
		req.Evidence = evidence
		req.EvidenceName = header.Filename
	} else if err != http.ErrMissingFile {
		response.BadRequest(w, "Invalid file upload", nil)
		return
	}

	resp, err := h.clarificationService.Submit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Clarification submitted", resp)
}

type decidePayload struct {
	Action        string `json:"action"`
	RejectionNote string `json:"rejection_note"`
}

// Decide implements ClarificationHandler.
func (h *clarificationHandlerImpl) Decide(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var payload decidePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.clarificationService.Decide(r.Context(), clarification.DecideRequest{
		ClarificationID: chi.URLParam(r, "id"),
		Action:          clarification.Action(payload.Action),
		RejectionNote:   payload.RejectionNote,
		ActorNIP:        identity.NIP,
		ActorRole:       identity.Role,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Clarification decided", resp)
}

// Queue implements ClarificationHandler.
func (h *clarificationHandlerImpl) Queue(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := h.clarificationService.ListQueue(r.Context(), identity.NIP, identity.Role, identity.Department)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// History implements ClarificationHandler.
func (h *clarificationHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := h.clarificationService.ListHistory(r.Context(), identity.NIP, identity.Role)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// Evidence implements ClarificationHandler. Serves a stored file inline, or
// as a download when ?download=1.
func (h *clarificationHandlerImpl) Evidence(w http.ResponseWriter, r *http.Request) {
	path := chi.URLParam(r, "*")
	if path == "" {
		response.BadRequest(w, "File path is required", nil)
		return
	}

	f, err := h.fileService.OpenFile(r.Context(), path)
	if err != nil {
		response.NotFound(w, "File not found")
		return
	}
	defer f.Close()

	name := filepath.Base(path)
	if r.URL.Query().Get("download") == "1" {
		w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	} else {
		w.Header().Set("Content-Disposition", `inline; filename="`+name+`"`)
	}

	switch filepath.Ext(name) {
	case ".pdf":
		w.Header().Set("Content-Type", "application/pdf")
	case ".png":
		w.Header().Set("Content-Type", "image/png")
	case ".jpg", ".jpeg":
		w.Header().Set("Content-Type", "image/jpeg")
	default:
		w.Header().Set("Content-Type", "application/octet-stream")
	}

	if _, err := io.Copy(w, f); err != nil {
		slog.Error("Failed to stream file", "path", path, "error", err)
	}
}
