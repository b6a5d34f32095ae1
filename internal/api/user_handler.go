package api

import (
	"net/http"

	"diabcar/internal/auth"
	"diabcar/internal/db"
	"diabcar/internal/entities"
	"diabcar/internal/service"
)

type UserHandler struct {
	Service *service.UserService
}

func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{Service: svc}
}

// canAccess allows admins everything and customers only their own record.
func canAccess(r *http.Request, userID int) bool {
	claims := auth.ClaimsFromContext(r.Context())
	return claims == nil || claims.Role == db.RoleAdmin || claims.UserID == userID
}

func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Service.ListUsers(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, envelope{
		"success": true,
		"message": "Users fetched successfully!",
		"users":   users,
	})
}

func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if !canAccess(r, id) {
		respond(w, http.StatusForbidden, envelope{"success": false, "message": "Access denied."})
		return
	}
	user, err := h.Service.GetUser(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, envelope{
		"success": true,
		"message": "User fetched successfully!",
		"user":    user,
	})
}

func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if !canAccess(r, id) {
		respond(w, http.StatusForbidden, envelope{"success": false, "message": "Access denied."})
		return
	}
	var req entities.UserUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.Service.UpdateUser(r.Context(), id, &req); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "User updated successfully")
}

func (h *UserHandler) UpdateUserStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.Service.UpdateUserStatus(r.Context(), id, req.Status); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "User status updated successfully")
}

func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.Service.DeleteUser(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "User deleted successfully")
}
