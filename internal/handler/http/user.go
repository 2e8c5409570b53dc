package http

import (
	"encoding/json"
	"net/http"

	"github.com/presensi-kampus/presensi-backend-go/internal/domain/user"
	"github.com/presensi-kampus/presensi-backend-go/internal/handler/http/response"
)

type UserHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)
	Subordinates(w http.ResponseWriter, r *http.Request)
	PotentialSuperiors(w http.ResponseWriter, r *http.Request)
}

type userHandlerImpl struct {
	userService user.UserService
}

func NewUserHandler(userService user.UserService) UserHandler {
	return &userHandlerImpl{
		userService: userService,
	}
}

// Create implements UserHandler.
func (h *userHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req user.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.userService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "User created", resp)
}

// Me implements UserHandler.
func (h *userHandlerImpl) Me(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := h.userService.Get(r.Context(), identity.NIP)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// Subordinates implements UserHandler.
func (h *userHandlerImpl) Subordinates(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := h.userService.ListSubordinates(r.Context(), identity.NIP, identity.Role)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// PotentialSuperiors implements UserHandler.
func (h *userHandlerImpl) PotentialSuperiors(w http.ResponseWriter, r *http.Request) {
	resp, err := h.userService.ListPotentialSuperiors(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}
