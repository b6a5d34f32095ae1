package api

import (
	"net/http"

	"diabcar/internal/entities"
	"diabcar/internal/service"
)

type AuthHandler struct {
	Service *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{Service: svc}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req entities.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := h.Service.Register(r.Context(), &req)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusCreated, envelope{
		"success": true,
		"message": "User registered successfully!",
		"token":   resp.Token,
		"user":    resp.User,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req entities.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := h.Service.Login(r.Context(), &req)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, envelope{
		"success": true,
		"message": "Logged in successfully!",
		"token":   resp.Token,
		"user":    resp.User,
	})
}

// Logout exists for API symmetry: tokens are stateless, so the client
// simply discards its copy.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	respondMessage(w, http.StatusOK, "Logged out successfully.")
}
