package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"diabcar/internal/entities"
	apperrors "diabcar/internal/errors"
)

func fieldNames(t *testing.T, err error) []string {
	t.Helper()
	appErr, ok := err.(*apperrors.Error)
	require.True(t, ok, "expected *apperrors.Error, got %T", err)
	require.Equal(t, apperrors.KindValidation, appErr.Kind)
	names := make([]string, 0, len(appErr.Fields))
	for _, f := range appErr.Fields {
		names = append(names, f.Field)
	}
	return names
}

func strPtr(s string) *string { return &s }

func TestBookingValid(t *testing.T) {
	v := New()
	start, end, err := v.Booking(&entities.BookingRequest{
		UserID:     1,
		CarID:      2,
		StartDate:  "2025-03-01",
		EndDate:    "2025-03-05",
		TotalPrice: 200,
	})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC), end)
}

func TestBookingCollectsAllViolations(t *testing.T) {
	v := New()
	_, _, err := v.Booking(&entities.BookingRequest{
		CarID:      2,
		StartDate:  "not-a-date",
		EndDate:    "2025-03-05",
		TotalPrice: -1,
	})
	require.Error(t, err)

	names := fieldNames(t, err)
	assert.Contains(t, names, "user_id")
	assert.Contains(t, names, "total_price")
	assert.Contains(t, names, "start_date")
}

func TestBookingStartMustPrecedeEnd(t *testing.T) {
	v := New()
	_, _, err := v.Booking(&entities.BookingRequest{
		UserID:     1,
		CarID:      2,
		StartDate:  "2025-03-05",
		EndDate:    "2025-03-05",
		TotalPrice: 200,
	})
	require.Error(t, err)
	assert.Contains(t, fieldNames(t, err), "start_date")
}

func TestBookingUpdateDatesTravelTogether(t *testing.T) {
	v := New()

	_, _, err := v.BookingUpdate(&entities.BookingUpdateRequest{
		StartDate: strPtr("2025-03-01"),
	})
	require.Error(t, err)
	assert.Contains(t, fieldNames(t, err), "start_date")

	start, end, err := v.BookingUpdate(&entities.BookingUpdateRequest{
		StartDate: strPtr("2025-03-01"),
		EndDate:   strPtr("2025-03-04"),
	})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC), end)

	// No dates at all is a valid status-only update.
	status := "cancelled"
	_, _, err = v.BookingUpdate(&entities.BookingUpdateRequest{Status: &status})
	assert.NoError(t, err)

	bad := "returned"
	_, _, err = v.BookingUpdate(&entities.BookingUpdateRequest{Status: &bad})
	require.Error(t, err)
	assert.Contains(t, fieldNames(t, err), "status")
}

func TestAvailabilityInterval(t *testing.T) {
	v := New()
	start, end, err := v.Availability(&entities.AvailabilityRequest{
		CarID:     3,
		StartDate: "2025-06-10",
		EndDate:   "2025-06-12",
	})
	require.NoError(t, err)
	assert.True(t, start.Before(end))

	_, _, err = v.Availability(&entities.AvailabilityRequest{
		CarID:     3,
		StartDate: "2025-06-12",
		EndDate:   "2025-06-10",
	})
	require.Error(t, err)
}

func TestStructReviewRating(t *testing.T) {
	v := New()

	err := v.Struct(&entities.ReviewRequest{UserID: 1, CarID: 1, Rating: 5, Comment: "Great car"})
	assert.NoError(t, err)

	err = v.Struct(&entities.ReviewRequest{UserID: 1, CarID: 1, Rating: 6, Comment: "Great car"})
	require.Error(t, err)
	assert.Contains(t, fieldNames(t, err), "rating")
}

func TestStructRegister(t *testing.T) {
	v := New()

	err := v.Struct(&entities.RegisterRequest{
		Name:        "Dana",
		Email:       "dana@example.com",
		PhoneNumber: "+15551234567",
		Password:    "secret1",
	})
	assert.NoError(t, err)

	err = v.Struct(&entities.RegisterRequest{
		Name:        "Dana",
		Email:       "not-an-email",
		PhoneNumber: "555-1234",
		Password:    "abc",
	})
	require.Error(t, err)
	names := fieldNames(t, err)
	assert.Contains(t, names, "email")
	assert.Contains(t, names, "phone_number")
	assert.Contains(t, names, "password")
}
