package service

import (
	"context"

	"diabcar/internal/db"
	"diabcar/internal/entities"
	"diabcar/internal/validation"
)

type ReviewStore interface {
	Create(ctx context.Context, review *db.Review) error
	ListApproved(ctx context.Context) ([]entities.ReviewResponse, error)
	Approve(ctx context.Context, id int) error
	Delete(ctx context.Context, id int) error
}

type ReviewService struct {
	reviews   ReviewStore
	validator *validation.Validator
}

func NewReviewService(reviews ReviewStore) *ReviewService {
	return &ReviewService{reviews: reviews, validator: validation.New()}
}

// CreateReview stores the review as pending; it only becomes visible
// once an admin approves it.
func (s *ReviewService) CreateReview(ctx context.Context, req *entities.ReviewRequest) (*db.Review, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	review := &db.Review{
		UserID:  req.UserID,
		CarID:   req.CarID,
		Rating:  req.Rating,
		Comment: req.Comment,
		Status:  db.ReviewPending,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) ListApprovedReviews(ctx context.Context) ([]entities.ReviewResponse, error) {
	return s.reviews.ListApproved(ctx)
}

func (s *ReviewService) ApproveReview(ctx context.Context, id int) error {
	return s.reviews.Approve(ctx, id)
}

func (s *ReviewService) DeleteReview(ctx context.Context, id int) error {
	return s.reviews.Delete(ctx, id)
}
