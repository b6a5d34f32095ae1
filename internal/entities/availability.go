package entities

type AvailabilityRequest struct {
	CarID     int    `json:"car_id" validate:"required,gt=0"`
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date" validate:"required"`
}

type AvailabilityResponse struct {
	Available bool   `json:"available"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Message   string `json:"message,omitempty"`
}
