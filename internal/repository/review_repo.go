package repository

import (
	"context"
	"database/sql"
	"fmt"

	"diabcar/internal/db"
	"diabcar/internal/entities"
)

type ReviewRepository struct {
	DB *sql.DB
}

func NewReviewRepository(database *sql.DB) *ReviewRepository {
	return &ReviewRepository{DB: database}
}

func (r *ReviewRepository) Create(ctx context.Context, review *db.Review) error {
	query := `
		INSERT INTO reviews (user_id, car_id, rating, comment, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`
	err := r.DB.QueryRowContext(ctx, query,
		review.UserID, review.CarID, review.Rating, review.Comment, review.Status,
	).Scan(&review.ID, &review.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating review: %w", err)
	}
	return nil
}

func (r *ReviewRepository) ListApproved(ctx context.Context) ([]entities.ReviewResponse, error) {
	query := `
		SELECT r.id, r.user_id, u.name AS user_name, r.car_id, c.name AS car_name,
		       r.rating, r.comment, r.status, r.created_at
		FROM reviews r
		JOIN users u ON r.user_id = u.id
		JOIN cars c ON r.car_id = c.id
		WHERE r.status = 'approved'
		ORDER BY r.created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing approved reviews: %w", err)
	}
	defer rows.Close()

	var reviews []entities.ReviewResponse
	for rows.Next() {
		var rv entities.ReviewResponse
		err := rows.Scan(&rv.ID, &rv.UserID, &rv.UserName, &rv.CarID, &rv.CarName,
			&rv.Rating, &rv.Comment, &rv.Status, &rv.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning review row: %w", err)
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}

func (r *ReviewRepository) Approve(ctx context.Context, id int) error {
	result, err := r.DB.ExecContext(ctx, `UPDATE reviews SET status = 'approved' WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error approving review: %w", err)
	}
	return requireRowsAffected(result, "Review not found")
}

func (r *ReviewRepository) Delete(ctx context.Context, id int) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting review: %w", err)
	}
	return requireRowsAffected(result, "Review not found")
}
