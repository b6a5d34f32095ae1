package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"diabcar/internal/db"
	"diabcar/internal/entities"
	apperrors "diabcar/internal/errors"
	"diabcar/internal/utils"
)

// blockingStatuses is the set of booking statuses that occupy a car's
// dates. Cancelled bookings are deliberately absent.
const blockingStatuses = `('pending', 'ongoing', 'completed')`

type BookingRepository struct {
	DB *sql.DB
}

func NewBookingRepository(database *sql.DB) *BookingRepository {
	return &BookingRepository{DB: database}
}

// Create runs the availability check and the insert inside one
// transaction. The car row is locked first so two concurrent requests
// for overlapping dates serialize instead of both passing the check.
func (r *BookingRepository) Create(ctx context.Context, booking *db.Booking) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting booking transaction: %w", err)
	}
	defer tx.Rollback()

	var carID int
	err = tx.QueryRowContext(ctx, `SELECT id FROM cars WHERE id = $1 FOR UPDATE`, booking.CarID).Scan(&carID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NotFound("Car not found")
		}
		return fmt.Errorf("error locking car row: %w", err)
	}

	overlapping, err := countOverlapping(ctx, tx, booking.CarID, booking.StartDate, booking.EndDate, 0)
	if err != nil {
		return err
	}
	if overlapping > 0 {
		return apperrors.Unavailable("Car is not available for the selected dates.")
	}

	query := `
		INSERT INTO bookings (user_id, car_id, start_date, end_date, total_price, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`
	err = tx.QueryRowContext(ctx, query,
		booking.UserID, booking.CarID, booking.StartDate, booking.EndDate,
		booking.TotalPrice, booking.Status,
	).Scan(&booking.ID, &booking.CreatedAt)
	if err != nil {
		return fmt.Errorf("error inserting booking: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing booking: %w", err)
	}
	return nil
}

// HasOverlap reports whether [start, end) collides with any blocking
// booking on the car. excludeID skips a booking (its own row during an
// update); pass 0 when creating.
func (r *BookingRepository) HasOverlap(ctx context.Context, carID int, start, end time.Time, excludeID int) (bool, error) {
	count, err := countOverlapping(ctx, r.DB, carID, start, end, excludeID)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

func countOverlapping(ctx context.Context, q queryRower, carID int, start, end time.Time, excludeID int) (int, error) {
	// Half-open interval overlap: existing.start < end AND start < existing.end.
	query := `
		SELECT COUNT(*) FROM bookings
		WHERE car_id = $1
		  AND status IN ` + blockingStatuses + `
		  AND start_date < $3
		  AND end_date > $2
		  AND id <> $4`
	var count int
	if err := q.QueryRowContext(ctx, query, carID, start, end, excludeID).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting overlapping bookings: %w", err)
	}
	return count, nil
}

const bookingListQuery = `
	SELECT b.id, b.user_id, u.name AS user_name, b.car_id, c.name AS car_name,
	       b.start_date, b.end_date, b.total_price, b.status, b.created_at
	FROM bookings b
	JOIN users u ON b.user_id = u.id
	JOIN cars c ON b.car_id = c.id`

func (r *BookingRepository) List(ctx context.Context) ([]entities.BookingResponse, error) {
	rows, err := r.DB.QueryContext(ctx, bookingListQuery+` ORDER BY b.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("error listing bookings: %w", err)
	}
	defer rows.Close()
	return scanBookingRows(rows)
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID int) ([]entities.BookingResponse, error) {
	rows, err := r.DB.QueryContext(ctx, bookingListQuery+` WHERE b.user_id = $1 ORDER BY b.created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing bookings for user %d: %w", userID, err)
	}
	defer rows.Close()
	return scanBookingRows(rows)
}

func scanBookingRows(rows *sql.Rows) ([]entities.BookingResponse, error) {
	var bookings []entities.BookingResponse
	for rows.Next() {
		var b entities.BookingResponse
		var start, end time.Time
		err := rows.Scan(&b.ID, &b.UserID, &b.UserName, &b.CarID, &b.CarName,
			&start, &end, &b.TotalPrice, &b.Status, &b.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning booking row: %w", err)
		}
		b.StartDate = utils.FormatDate(start)
		b.EndDate = utils.FormatDate(end)
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *BookingRepository) GetByID(ctx context.Context, id int) (*db.Booking, error) {
	var b db.Booking
	query := `
		SELECT id, user_id, car_id, start_date, end_date, total_price, status, created_at
		FROM bookings WHERE id = $1`
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&b.ID, &b.UserID, &b.CarID, &b.StartDate, &b.EndDate, &b.TotalPrice, &b.Status, &b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("Booking not found")
		}
		return nil, fmt.Errorf("error querying booking: %w", err)
	}
	return &b, nil
}

// Update rewrites dates, price and status in one transaction, re-running
// the overlap check against every blocking booking except this one.
func (r *BookingRepository) Update(ctx context.Context, booking *db.Booking) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting booking update transaction: %w", err)
	}
	defer tx.Rollback()

	var carID int
	err = tx.QueryRowContext(ctx, `SELECT id FROM cars WHERE id = $1 FOR UPDATE`, booking.CarID).Scan(&carID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NotFound("Car not found")
		}
		return fmt.Errorf("error locking car row: %w", err)
	}

	if booking.Status != db.BookingCancelled {
		overlapping, err := countOverlapping(ctx, tx, booking.CarID, booking.StartDate, booking.EndDate, booking.ID)
		if err != nil {
			return err
		}
		if overlapping > 0 {
			return apperrors.Unavailable("Car is not available for the selected dates.")
		}
	}

	query := `
		UPDATE bookings
		SET start_date = $1, end_date = $2, total_price = $3, status = $4
		WHERE id = $5`
	result, err := tx.ExecContext(ctx, query,
		booking.StartDate, booking.EndDate, booking.TotalPrice, booking.Status, booking.ID)
	if err != nil {
		return fmt.Errorf("error updating booking: %w", err)
	}
	if err := requireRowsAffected(result, "Booking not found"); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing booking update: %w", err)
	}
	return nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id int, status string) error {
	result, err := r.DB.ExecContext(ctx, `UPDATE bookings SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("error updating booking status: %w", err)
	}
	return requireRowsAffected(result, "Booking not found")
}

func (r *BookingRepository) Delete(ctx context.Context, id int) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting booking: %w", err)
	}
	return requireRowsAffected(result, "Booking not found")
}
