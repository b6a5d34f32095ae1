package entities

import "time"

type BookingRequest struct {
	UserID     int     `json:"user_id" validate:"required,gt=0"`
	CarID      int     `json:"car_id" validate:"required,gt=0"`
	StartDate  string  `json:"start_date" validate:"required"`
	EndDate    string  `json:"end_date" validate:"required"`
	TotalPrice float64 `json:"total_price" validate:"required,gt=0"`
}

// BookingUpdateRequest carries optional fields; nil means leave unchanged.
type BookingUpdateRequest struct {
	StartDate  *string  `json:"start_date,omitempty"`
	EndDate    *string  `json:"end_date,omitempty"`
	TotalPrice *float64 `json:"total_price,omitempty" validate:"omitempty,gt=0"`
	Status     *string  `json:"status,omitempty" validate:"omitempty,oneof=pending ongoing completed cancelled"`
}

// BookingResponse includes the joined user and car names the dashboard
// lists show alongside each booking.
type BookingResponse struct {
	ID         int       `json:"id"`
	UserID     int       `json:"user_id"`
	UserName   string    `json:"user_name"`
	CarID      int       `json:"car_id"`
	CarName    string    `json:"car_name"`
	StartDate  string    `json:"start_date"`
	EndDate    string    `json:"end_date"`
	TotalPrice float64   `json:"total_price"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}
