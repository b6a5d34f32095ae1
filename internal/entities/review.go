package entities

import "time"

type ReviewRequest struct {
	UserID  int    `json:"user_id" validate:"required,gt=0"`
	CarID   int    `json:"car_id" validate:"required,gt=0"`
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required"`
}

type ReviewResponse struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	UserName  string    `json:"user_name"`
	CarID     int       `json:"car_id"`
	CarName   string    `json:"car_name"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
