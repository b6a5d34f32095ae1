package api

import (
	"net/http"

	"diabcar/internal/entities"
	"diabcar/internal/service"
)

type ReviewHandler struct {
	Service *service.ReviewService
}

func NewReviewHandler(svc *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{Service: svc}
}

func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var req entities.ReviewRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if _, err := h.Service.CreateReview(r.Context(), &req); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusCreated, "Review submitted successfully! Pending admin approval.")
}

func (h *ReviewHandler) ListApprovedReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.Service.ListApprovedReviews(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, envelope{
		"success": true,
		"message": "Reviews fetched successfully!",
		"reviews": reviews,
	})
}

func (h *ReviewHandler) ApproveReview(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.Service.ApproveReview(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "Review approved successfully!")
}

func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.Service.DeleteReview(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "Review deleted successfully.")
}
