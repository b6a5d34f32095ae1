package api

import (
	"net/http"

	"diabcar/internal/auth"
	"diabcar/internal/db"
	"diabcar/internal/entities"
	"diabcar/internal/service"
)

type BookingHandler struct {
	Service *service.BookingService
}

func NewBookingHandler(svc *service.BookingService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

func (h *BookingHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	var req entities.AvailabilityRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := h.Service.CheckAvailability(r.Context(), &req)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, envelope{
		"success":      true,
		"message":      "Availability checked successfully!",
		"availability": resp,
	})
}

func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req entities.BookingRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	// A customer can only book for themselves; admins can book on behalf
	// of any renter.
	claims := auth.ClaimsFromContext(r.Context())
	if claims != nil && claims.Role != db.RoleAdmin && claims.UserID != req.UserID {
		respond(w, http.StatusForbidden, envelope{
			"success": false,
			"message": "Cannot create a booking for another user.",
		})
		return
	}

	booking, err := h.Service.CreateBooking(r.Context(), &req)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusCreated, envelope{
		"success":    true,
		"message":    "Booking created successfully!",
		"booking_id": booking.ID,
	})
}

func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.Service.ListBookings(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, envelope{
		"success":  true,
		"message":  "Bookings fetched successfully!",
		"bookings": bookings,
	})
}

func (h *BookingHandler) ListBookingsForUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}

	claims := auth.ClaimsFromContext(r.Context())
	if claims != nil && claims.Role != db.RoleAdmin && claims.UserID != userID {
		respond(w, http.StatusForbidden, envelope{
			"success": false,
			"message": "Cannot view another user's bookings.",
		})
		return
	}

	bookings, err := h.Service.ListBookingsForUser(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, envelope{
		"success":  true,
		"message":  "Bookings fetched successfully!",
		"bookings": bookings,
	})
}

func (h *BookingHandler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req entities.BookingUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if _, err := h.Service.UpdateBooking(r.Context(), id, &req); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "Booking updated successfully!")
}

func (h *BookingHandler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.Service.DeleteBooking(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "Booking deleted successfully!")
}
