package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"diabcar/internal/db"
	"diabcar/internal/entities"
	apperrors "diabcar/internal/errors"
)

type fakeReviewStore struct {
	created []*db.Review
}

func (f *fakeReviewStore) Create(ctx context.Context, review *db.Review) error {
	review.ID = len(f.created) + 1
	f.created = append(f.created, review)
	return nil
}

func (f *fakeReviewStore) ListApproved(ctx context.Context) ([]entities.ReviewResponse, error) {
	return nil, nil
}

func (f *fakeReviewStore) Approve(ctx context.Context, id int) error { return nil }
func (f *fakeReviewStore) Delete(ctx context.Context, id int) error  { return nil }

func TestCreateReviewStartsPending(t *testing.T) {
	store := &fakeReviewStore{}
	svc := NewReviewService(store)

	review, err := svc.CreateReview(context.Background(), &entities.ReviewRequest{
		UserID:  1,
		CarID:   2,
		Rating:  4,
		Comment: "Smooth ride, clean car.",
	})
	require.NoError(t, err)
	assert.Equal(t, db.ReviewPending, review.Status)
	require.Len(t, store.created, 1)
}

func TestCreateReviewRejectsOutOfRangeRating(t *testing.T) {
	svc := NewReviewService(&fakeReviewStore{})

	_, err := svc.CreateReview(context.Background(), &entities.ReviewRequest{
		UserID:  1,
		CarID:   2,
		Rating:  6,
		Comment: "Too good.",
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}
