package api

import (
	"net/http"

	"diabcar/internal/entities"
	"diabcar/internal/service"
)

type ContactHandler struct {
	Service *service.ContactService
}

func NewContactHandler(svc *service.ContactService) *ContactHandler {
	return &ContactHandler{Service: svc}
}

func (h *ContactHandler) SubmitMessage(w http.ResponseWriter, r *http.Request) {
	var req entities.ContactRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.Service.SubmitMessage(r.Context(), &req); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusCreated, "Your message has been submitted successfully!")
}
