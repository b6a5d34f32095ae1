package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"diabcar/internal/db"
	"diabcar/internal/entities"
	"diabcar/internal/service"
	"diabcar/internal/upload"
)

type CarHandler struct {
	Service *service.CarService
	Images  *upload.Store
}

func NewCarHandler(svc *service.CarService, images *upload.Store) *CarHandler {
	return &CarHandler{Service: svc, Images: images}
}

// pathID parses the numeric {id} path variable shared by most routes.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil || id <= 0 {
		respond(w, http.StatusBadRequest, envelope{
			"success": false,
			"message": "ID must be a valid number.",
		})
		return 0, false
	}
	return id, true
}

// carForm reads the multipart fields and stores the optional image,
// returning its public URL. Numeric fields that fail to parse come back
// as zero values and are caught by the service's validator.
func (h *CarHandler) carForm(w http.ResponseWriter, r *http.Request, defaultAvailability bool) (*entities.CarRequest, string, bool) {
	// Cap the body before parsing so an oversized upload is cut off on
	// the wire instead of being spooled to disk first.
	r.Body = http.MaxBytesReader(w, r.Body, upload.MaxImageSize+1<<20)
	if err := r.ParseMultipartForm(upload.MaxImageSize + 1<<20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond(w, http.StatusRequestEntityTooLarge, envelope{
				"success": false,
				"message": "Request body exceeds the upload size limit.",
			})
			return nil, "", false
		}
		respond(w, http.StatusBadRequest, envelope{"success": false, "message": "Invalid multipart form"})
		return nil, "", false
	}

	req := &entities.CarRequest{
		Name:         r.FormValue("name"),
		Model:        r.FormValue("model"),
		FuelType:     r.FormValue("fuel"),
		Transmission: r.FormValue("transmission"),
		Location:     r.FormValue("location"),
		Availability: defaultAvailability,
	}
	req.Year, _ = strconv.Atoi(r.FormValue("year"))
	req.PricePerDay, _ = strconv.ParseFloat(r.FormValue("price"), 64)
	req.Seats, _ = strconv.Atoi(r.FormValue("seats"))
	if v := r.FormValue("availability"); v != "" {
		req.Availability, _ = strconv.ParseBool(v)
	}

	imageURL := ""
	file, header, err := r.FormFile("image")
	switch {
	case err == nil:
		defer file.Close()
		imageURL, err = h.Images.Save(file, header)
		if err != nil {
			respondError(w, err)
			return nil, "", false
		}
	case errors.Is(err, http.ErrMissingFile):
		// image is optional
	default:
		respond(w, http.StatusBadRequest, envelope{"success": false, "message": "File upload failed."})
		return nil, "", false
	}

	return req, imageURL, true
}

func (h *CarHandler) CreateCar(w http.ResponseWriter, r *http.Request) {
	req, imageURL, ok := h.carForm(w, r, true)
	if !ok {
		return
	}
	car, err := h.Service.CreateCar(r.Context(), req, imageURL)
	if err != nil {
		// Don't leave an orphaned file when the row was rejected.
		if imageURL != "" {
			h.Images.Remove(imageURL)
		}
		respondError(w, err)
		return
	}
	respond(w, http.StatusCreated, envelope{
		"success": true,
		"message": "Car added successfully!",
		"car":     carResponse(car),
	})
}

func (h *CarHandler) ListCars(w http.ResponseWriter, r *http.Request) {
	cars, err := h.Service.ListCars(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	responses := make([]entities.CarResponse, 0, len(cars))
	for i := range cars {
		responses = append(responses, carResponse(&cars[i]))
	}
	respond(w, http.StatusOK, envelope{
		"success": true,
		"message": "Cars fetched successfully!",
		"cars":    responses,
	})
}

func (h *CarHandler) GetCar(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	car, err := h.Service.GetCar(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, envelope{
		"success": true,
		"message": "Car fetched successfully!",
		"car":     carResponse(car),
	})
}

func (h *CarHandler) UpdateCar(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	current, err := h.Service.GetCar(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	// An omitted availability field keeps the car's current flag instead
	// of silently re-enabling a car an admin marked unavailable.
	req, imageURL, ok := h.carForm(w, r, current.Availability)
	if !ok {
		return
	}
	car, err := h.Service.UpdateCar(r.Context(), id, req, imageURL)
	if err != nil {
		if imageURL != "" {
			h.Images.Remove(imageURL)
		}
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, envelope{
		"success": true,
		"message": "Car updated successfully!",
		"car":     carResponse(car),
	})
}

func (h *CarHandler) UpdateAvailability(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req struct {
		Availability *bool `json:"availability"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Availability == nil {
		respond(w, http.StatusBadRequest, envelope{
			"success": false,
			"message": "Availability status is required.",
		})
		return
	}
	if err := h.Service.UpdateAvailability(r.Context(), id, *req.Availability); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "Car availability updated successfully!")
}

func (h *CarHandler) DeleteCar(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.Service.DeleteCar(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "Car deleted successfully!")
}

func carResponse(car *db.Car) entities.CarResponse {
	return entities.CarResponse{
		ID:           car.ID,
		Name:         car.Name,
		Model:        car.Model,
		Year:         car.Year,
		PricePerDay:  car.PricePerDay,
		FuelType:     car.FuelType,
		Transmission: car.Transmission,
		Location:     car.Location,
		Seats:        car.Seats,
		Availability: car.Availability,
		ImageURL:     car.ImageURL,
		CreatedAt:    car.CreatedAt,
	}
}
