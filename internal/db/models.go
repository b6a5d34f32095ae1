package db

import "time"

// Booking statuses. Pending, ongoing and completed bookings block the car's
// dates; cancelled bookings never block.
const (
	BookingPending   = "pending"
	BookingOngoing   = "ongoing"
	BookingCompleted = "completed"
	BookingCancelled = "cancelled"
)

const (
	ReviewPending  = "pending"
	ReviewApproved = "approved"
)

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

const (
	UserApproved = "approved"
	UserPending  = "pending"
)

type Car struct {
	ID           int
	Name         string
	Model        string
	Year         int
	PricePerDay  float64
	FuelType     string
	Transmission string
	Location     string
	Seats        int
	Availability bool
	ImageURL     string
	CreatedAt    time.Time
}

type Booking struct {
	ID         int
	UserID     int
	CarID      int
	StartDate  time.Time
	EndDate    time.Time
	TotalPrice float64
	Status     string
	CreatedAt  time.Time
}

type User struct {
	ID           int
	Name         string
	Email        string
	PhoneNumber  string
	PasswordHash string
	Role         string
	Status       string
	CreatedAt    time.Time
}

type Review struct {
	ID        int
	UserID    int
	CarID     int
	Rating    int
	Comment   string
	Status    string
	CreatedAt time.Time
}

type ContactMessage struct {
	ID        int
	Name      string
	Email     string
	Message   string
	CreatedAt time.Time
}
