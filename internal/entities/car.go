package entities

import "time"

// CarRequest is populated from multipart form fields; the image file, if
// any, is handled separately by the upload store.
type CarRequest struct {
	Name         string  `validate:"required"`
	Model        string  `validate:"required"`
	Year         int     `validate:"required,min=1900"`
	PricePerDay  float64 `validate:"required,gt=0"`
	FuelType     string  `validate:"required,oneof=petrol diesel electric hybrid"`
	Transmission string  `validate:"required,oneof=manual automatic"`
	Location     string  `validate:"required"`
	Seats        int     `validate:"required,gt=0"`
	Availability bool
}

type CarResponse struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Model        string    `json:"model"`
	Year         int       `json:"year"`
	PricePerDay  float64   `json:"price_per_day"`
	FuelType     string    `json:"fuel_type"`
	Transmission string    `json:"transmission"`
	Location     string    `json:"location"`
	Seats        int       `json:"seats"`
	Availability bool      `json:"availability"`
	ImageURL     string    `json:"image,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
