package service

import (
	"context"
	"fmt"
	"time"

	"diabcar/internal/db"
	"diabcar/internal/entities"
	apperrors "diabcar/internal/errors"
	"diabcar/internal/utils"
	"diabcar/internal/validation"
)

// statusTransitions encodes the booking lifecycle: pending can start or
// be cancelled, ongoing can finish or be cancelled, completed and
// cancelled are terminal.
var statusTransitions = map[string][]string{
	db.BookingPending: {db.BookingOngoing, db.BookingCancelled},
	db.BookingOngoing: {db.BookingCompleted, db.BookingCancelled},
}

func canTransition(from, to string) bool {
	for _, allowed := range statusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

type BookingStore interface {
	Create(ctx context.Context, booking *db.Booking) error
	HasOverlap(ctx context.Context, carID int, start, end time.Time, excludeID int) (bool, error)
	List(ctx context.Context) ([]entities.BookingResponse, error)
	ListByUser(ctx context.Context, userID int) ([]entities.BookingResponse, error)
	GetByID(ctx context.Context, id int) (*db.Booking, error)
	Update(ctx context.Context, booking *db.Booking) error
	Delete(ctx context.Context, id int) error
}

type CarGetter interface {
	GetByID(ctx context.Context, id int) (*db.Car, error)
}

type UserGetter interface {
	GetByID(ctx context.Context, id int) (*db.User, error)
}

// BookingNotifier delivers email/SMS updates about a booking. Delivery
// failures are the notifier's problem; booking writes never depend on it.
type BookingNotifier interface {
	NotifyBookingStatus(user *db.User, car *db.Car, booking *db.Booking)
}

type BookingService struct {
	bookings  BookingStore
	cars      CarGetter
	users     UserGetter
	notifier  BookingNotifier
	validator *validation.Validator
}

func NewBookingService(bookings BookingStore, cars CarGetter, users UserGetter, notifier BookingNotifier) *BookingService {
	return &BookingService{
		bookings:  bookings,
		cars:      cars,
		users:     users,
		notifier:  notifier,
		validator: validation.New(),
	}
}

// CreateBooking validates the request, recomputes the total price from
// the car's daily rate (the client-supplied price is never trusted) and
// inserts the booking; the store performs the overlap check and the
// insert atomically.
func (s *BookingService) CreateBooking(ctx context.Context, req *entities.BookingRequest) (*db.Booking, error) {
	start, end, err := s.validator.Booking(req)
	if err != nil {
		return nil, err
	}

	car, err := s.cars.GetByID(ctx, req.CarID)
	if err != nil {
		return nil, err
	}
	if !car.Availability {
		return nil, apperrors.Unavailable("Car is not currently available for rental.")
	}

	user, err := s.users.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	booking := &db.Booking{
		UserID:     req.UserID,
		CarID:      req.CarID,
		StartDate:  start,
		EndDate:    end,
		TotalPrice: float64(utils.RentalDays(start, end)) * car.PricePerDay,
		Status:     db.BookingPending,
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.NotifyBookingStatus(user, car, booking)
	}
	return booking, nil
}

// CheckAvailability answers whether the car is free for [start, end).
// This is advisory only; the create path re-checks inside a transaction.
func (s *BookingService) CheckAvailability(ctx context.Context, req *entities.AvailabilityRequest) (*entities.AvailabilityResponse, error) {
	start, end, err := s.validator.Availability(req)
	if err != nil {
		return nil, err
	}

	car, err := s.cars.GetByID(ctx, req.CarID)
	if err != nil {
		return nil, err
	}

	resp := &entities.AvailabilityResponse{
		StartDate: utils.FormatDate(start),
		EndDate:   utils.FormatDate(end),
	}
	if !car.Availability {
		resp.Message = "Car is not currently available for rental."
		return resp, nil
	}

	overlaps, err := s.bookings.HasOverlap(ctx, req.CarID, start, end, 0)
	if err != nil {
		return nil, fmt.Errorf("error checking availability: %w", err)
	}
	resp.Available = !overlaps
	if overlaps {
		resp.Message = "Car is already booked for the selected dates."
	}
	return resp, nil
}

func (s *BookingService) ListBookings(ctx context.Context) ([]entities.BookingResponse, error) {
	return s.bookings.List(ctx)
}

func (s *BookingService) ListBookingsForUser(ctx context.Context, userID int) ([]entities.BookingResponse, error) {
	return s.bookings.ListByUser(ctx, userID)
}

// UpdateBooking rewrites dates, price and status. Status changes must
// follow the lifecycle; date changes re-run the overlap check excluding
// the booking itself.
func (s *BookingService) UpdateBooking(ctx context.Context, id int, req *entities.BookingUpdateRequest) (*db.Booking, error) {
	start, end, err := s.validator.BookingUpdate(req)
	if err != nil {
		return nil, err
	}

	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	statusChanged := false
	if req.Status != nil && *req.Status != booking.Status {
		if !canTransition(booking.Status, *req.Status) {
			return nil, apperrors.Validation(apperrors.FieldError{
				Field:   "status",
				Message: fmt.Sprintf("cannot transition from %s to %s", booking.Status, *req.Status),
			})
		}
		booking.Status = *req.Status
		statusChanged = true
	}
	if req.StartDate != nil {
		booking.StartDate = start
		booking.EndDate = end
	}
	if req.TotalPrice != nil {
		booking.TotalPrice = *req.TotalPrice
	}

	if err := s.bookings.Update(ctx, booking); err != nil {
		return nil, err
	}

	if statusChanged && s.notifier != nil {
		car, carErr := s.cars.GetByID(ctx, booking.CarID)
		user, userErr := s.users.GetByID(ctx, booking.UserID)
		if carErr == nil && userErr == nil {
			s.notifier.NotifyBookingStatus(user, car, booking)
		}
	}
	return booking, nil
}

func (s *BookingService) DeleteBooking(ctx context.Context, id int) error {
	return s.bookings.Delete(ctx, id)
}
