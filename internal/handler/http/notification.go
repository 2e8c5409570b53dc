package http

import (
	"encoding/json"
	"net/http"

	"github.com/presensi-kampus/presensi-backend-go/internal/domain/notification"
	"github.com/presensi-kampus/presensi-backend-go/internal/handler/http/response"
)

type NotificationHandler interface {
	Subscribe(w http.ResponseWriter, r *http.Request)
	PublicKey(w http.ResponseWriter, r *http.Request)
}

type notificationHandlerImpl struct {
	notificationService notification.Service
}

func NewNotificationHandler(notificationService notification.Service) NotificationHandler {
	return &notificationHandlerImpl{
		notificationService: notificationService,
	}
}

// Subscribe implements NotificationHandler. The body is the browser's
// PushSubscription JSON, stored as-is.
func (h *notificationHandlerImpl) Subscribe(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var raw json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		response.BadRequest(w, "Invalid subscription format", nil)
		return
	}

	if err := h.notificationService.Subscribe(r.Context(), identity.NIP, string(raw)); err != nil {
		response.BadRequest(w, "Invalid subscription", nil)
		return
	}

	response.SuccessWithMessage(w, "Subscription stored", nil)
}

// PublicKey implements NotificationHandler.
func (h *notificationHandlerImpl) PublicKey(w http.ResponseWriter, r *http.Request) {
	response.Success(w, map[string]string{
		"public_key": h.notificationService.PublicKey(),
	})
}
