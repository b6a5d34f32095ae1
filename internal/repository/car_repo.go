package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"diabcar/internal/db"
	apperrors "diabcar/internal/errors"
)

type CarRepository struct {
	DB *sql.DB
}

func NewCarRepository(database *sql.DB) *CarRepository {
	return &CarRepository{DB: database}
}

func (r *CarRepository) Create(ctx context.Context, car *db.Car) error {
	query := `
		INSERT INTO cars
		(name, model, year, price_per_day, fuel_type, transmission, location, seats, availability, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at`
	err := r.DB.QueryRowContext(ctx, query,
		car.Name, car.Model, car.Year, car.PricePerDay, car.FuelType,
		car.Transmission, car.Location, car.Seats, car.Availability, car.ImageURL,
	).Scan(&car.ID, &car.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating car: %w", err)
	}
	return nil
}

func (r *CarRepository) List(ctx context.Context) ([]db.Car, error) {
	query := `
		SELECT id, name, model, year, price_per_day, fuel_type, transmission,
		       location, seats, availability, COALESCE(image_url, ''), created_at
		FROM cars ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing cars: %w", err)
	}
	defer rows.Close()

	var cars []db.Car
	for rows.Next() {
		var c db.Car
		err := rows.Scan(&c.ID, &c.Name, &c.Model, &c.Year, &c.PricePerDay, &c.FuelType,
			&c.Transmission, &c.Location, &c.Seats, &c.Availability, &c.ImageURL, &c.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning car row: %w", err)
		}
		cars = append(cars, c)
	}
	return cars, rows.Err()
}

func (r *CarRepository) GetByID(ctx context.Context, id int) (*db.Car, error) {
	var c db.Car
	query := `
		SELECT id, name, model, year, price_per_day, fuel_type, transmission,
		       location, seats, availability, COALESCE(image_url, ''), created_at
		FROM cars WHERE id = $1`
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.Model, &c.Year, &c.PricePerDay, &c.FuelType,
		&c.Transmission, &c.Location, &c.Seats, &c.Availability, &c.ImageURL, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("Car not found")
		}
		return nil, fmt.Errorf("error querying car: %w", err)
	}
	return &c, nil
}

func (r *CarRepository) Update(ctx context.Context, car *db.Car) error {
	query := `
		UPDATE cars
		SET name = $1, model = $2, year = $3, price_per_day = $4, fuel_type = $5,
		    transmission = $6, location = $7, seats = $8, availability = $9, image_url = $10
		WHERE id = $11`
	result, err := r.DB.ExecContext(ctx, query,
		car.Name, car.Model, car.Year, car.PricePerDay, car.FuelType,
		car.Transmission, car.Location, car.Seats, car.Availability, car.ImageURL, car.ID,
	)
	if err != nil {
		return fmt.Errorf("error updating car: %w", err)
	}
	return requireRowsAffected(result, "Car not found")
}

func (r *CarRepository) UpdateAvailability(ctx context.Context, id int, availability bool) error {
	result, err := r.DB.ExecContext(ctx, `UPDATE cars SET availability = $1 WHERE id = $2`, availability, id)
	if err != nil {
		return fmt.Errorf("error updating car availability: %w", err)
	}
	return requireRowsAffected(result, "Car not found")
}

func (r *CarRepository) Delete(ctx context.Context, id int) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM cars WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting car: %w", err)
	}
	return requireRowsAffected(result, "Car not found")
}
