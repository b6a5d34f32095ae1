package service

import (
	"context"
	"log"

	"diabcar/internal/db"
	"diabcar/internal/entities"
	"diabcar/internal/validation"
)

type CarStore interface {
	Create(ctx context.Context, car *db.Car) error
	List(ctx context.Context) ([]db.Car, error)
	GetByID(ctx context.Context, id int) (*db.Car, error)
	Update(ctx context.Context, car *db.Car) error
	UpdateAvailability(ctx context.Context, id int, availability bool) error
	Delete(ctx context.Context, id int) error
}

// ImageStore removes stored vehicle images; satisfied by upload.Store.
type ImageStore interface {
	Remove(urlPath string) error
}

type CarService struct {
	cars      CarStore
	images    ImageStore
	validator *validation.Validator
}

func NewCarService(cars CarStore, images ImageStore) *CarService {
	return &CarService{cars: cars, images: images, validator: validation.New()}
}

func (s *CarService) CreateCar(ctx context.Context, req *entities.CarRequest, imageURL string) (*db.Car, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	car := &db.Car{
		Name:         req.Name,
		Model:        req.Model,
		Year:         req.Year,
		PricePerDay:  req.PricePerDay,
		FuelType:     req.FuelType,
		Transmission: req.Transmission,
		Location:     req.Location,
		Seats:        req.Seats,
		Availability: req.Availability,
		ImageURL:     imageURL,
	}
	if err := s.cars.Create(ctx, car); err != nil {
		return nil, err
	}
	return car, nil
}

func (s *CarService) ListCars(ctx context.Context) ([]db.Car, error) {
	return s.cars.List(ctx)
}

func (s *CarService) GetCar(ctx context.Context, id int) (*db.Car, error) {
	return s.cars.GetByID(ctx, id)
}

// UpdateCar replaces the car's attributes. When a new image was
// uploaded the previous one is removed from disk.
func (s *CarService) UpdateCar(ctx context.Context, id int, req *entities.CarRequest, newImageURL string) (*db.Car, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	car, err := s.cars.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldImage := car.ImageURL
	car.Name = req.Name
	car.Model = req.Model
	car.Year = req.Year
	car.PricePerDay = req.PricePerDay
	car.FuelType = req.FuelType
	car.Transmission = req.Transmission
	car.Location = req.Location
	car.Seats = req.Seats
	car.Availability = req.Availability
	if newImageURL != "" {
		car.ImageURL = newImageURL
	}

	if err := s.cars.Update(ctx, car); err != nil {
		return nil, err
	}

	if newImageURL != "" && oldImage != "" && oldImage != newImageURL {
		if err := s.images.Remove(oldImage); err != nil {
			log.Printf("Could not remove replaced image %s: %v", oldImage, err)
		}
	}
	return car, nil
}

func (s *CarService) UpdateAvailability(ctx context.Context, id int, availability bool) error {
	return s.cars.UpdateAvailability(ctx, id, availability)
}

// DeleteCar removes the row and then the image file. A failed file
// removal is logged, not surfaced; the car is already gone.
func (s *CarService) DeleteCar(ctx context.Context, id int) error {
	car, err := s.cars.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.cars.Delete(ctx, id); err != nil {
		return err
	}
	if car.ImageURL != "" {
		if err := s.images.Remove(car.ImageURL); err != nil {
			log.Printf("Could not remove image for deleted car %d: %v", id, err)
		}
	}
	return nil
}
