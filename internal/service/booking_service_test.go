package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"diabcar/internal/db"
	"diabcar/internal/entities"
	apperrors "diabcar/internal/errors"
	"diabcar/internal/utils"
)

type fakeBookingStore struct {
	createFunc     func(ctx context.Context, booking *db.Booking) error
	hasOverlapFunc func(ctx context.Context, carID int, start, end time.Time, excludeID int) (bool, error)
	getByIDFunc    func(ctx context.Context, id int) (*db.Booking, error)
	updateFunc     func(ctx context.Context, booking *db.Booking) error
}

func (f *fakeBookingStore) Create(ctx context.Context, booking *db.Booking) error {
	if f.createFunc != nil {
		return f.createFunc(ctx, booking)
	}
	booking.ID = 1
	return nil
}

func (f *fakeBookingStore) HasOverlap(ctx context.Context, carID int, start, end time.Time, excludeID int) (bool, error) {
	if f.hasOverlapFunc != nil {
		return f.hasOverlapFunc(ctx, carID, start, end, excludeID)
	}
	return false, nil
}

func (f *fakeBookingStore) List(ctx context.Context) ([]entities.BookingResponse, error) {
	return nil, nil
}

func (f *fakeBookingStore) ListByUser(ctx context.Context, userID int) ([]entities.BookingResponse, error) {
	return nil, nil
}

func (f *fakeBookingStore) GetByID(ctx context.Context, id int) (*db.Booking, error) {
	if f.getByIDFunc != nil {
		return f.getByIDFunc(ctx, id)
	}
	return nil, apperrors.NotFound("Booking not found.")
}

func (f *fakeBookingStore) Update(ctx context.Context, booking *db.Booking) error {
	if f.updateFunc != nil {
		return f.updateFunc(ctx, booking)
	}
	return nil
}

func (f *fakeBookingStore) Delete(ctx context.Context, id int) error { return nil }

type fakeCarGetter struct {
	car *db.Car
	err error
}

func (f *fakeCarGetter) GetByID(ctx context.Context, id int) (*db.Car, error) {
	return f.car, f.err
}

type fakeUserGetter struct {
	user *db.User
	err  error
}

func (f *fakeUserGetter) GetByID(ctx context.Context, id int) (*db.User, error) {
	return f.user, f.err
}

type fakeNotifier struct {
	calls []string
}

func (f *fakeNotifier) NotifyBookingStatus(user *db.User, car *db.Car, booking *db.Booking) {
	f.calls = append(f.calls, booking.Status)
}

func testCar() *db.Car {
	return &db.Car{ID: 2, Name: "Corolla", PricePerDay: 50, Availability: true}
}

func testUser() *db.User {
	return &db.User{ID: 1, Name: "Dana", Email: "dana@example.com"}
}

func TestCreateBookingRecomputesPrice(t *testing.T) {
	store := &fakeBookingStore{}
	notifier := &fakeNotifier{}
	svc := NewBookingService(store, &fakeCarGetter{car: testCar()}, &fakeUserGetter{user: testUser()}, notifier)

	booking, err := svc.CreateBooking(context.Background(), &entities.BookingRequest{
		UserID:     1,
		CarID:      2,
		StartDate:  "2025-03-01",
		EndDate:    "2025-03-05",
		TotalPrice: 9999, // client value must be ignored
	})
	require.NoError(t, err)

	// 4 days at 50 per day.
	assert.Equal(t, 200.0, booking.TotalPrice)
	assert.Equal(t, db.BookingPending, booking.Status)
	assert.Equal(t, []string{db.BookingPending}, notifier.calls)
}

func TestCreateBookingUnavailableCar(t *testing.T) {
	car := testCar()
	car.Availability = false
	svc := NewBookingService(&fakeBookingStore{}, &fakeCarGetter{car: car}, &fakeUserGetter{user: testUser()}, nil)

	_, err := svc.CreateBooking(context.Background(), &entities.BookingRequest{
		UserID:     1,
		CarID:      2,
		StartDate:  "2025-03-01",
		EndDate:    "2025-03-05",
		TotalPrice: 200,
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindUnavailable, apperrors.KindOf(err))
}

func TestCreateBookingOverlapConflict(t *testing.T) {
	store := &fakeBookingStore{
		createFunc: func(ctx context.Context, booking *db.Booking) error {
			return apperrors.Unavailable("Car is already booked for the selected dates.")
		},
	}
	notifier := &fakeNotifier{}
	svc := NewBookingService(store, &fakeCarGetter{car: testCar()}, &fakeUserGetter{user: testUser()}, notifier)

	_, err := svc.CreateBooking(context.Background(), &entities.BookingRequest{
		UserID:     1,
		CarID:      2,
		StartDate:  "2025-03-04",
		EndDate:    "2025-03-06",
		TotalPrice: 100,
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindUnavailable, apperrors.KindOf(err))
	assert.Empty(t, notifier.calls, "failed create must not notify")
}

// overlapBookingStore applies the same blocking rule as the SQL store:
// pending, ongoing and completed bookings occupy the car's dates,
// cancelled ones never do.
type overlapBookingStore struct {
	fakeBookingStore
	existing []*db.Booking
}

func (f *overlapBookingStore) Create(ctx context.Context, booking *db.Booking) error {
	for _, b := range f.existing {
		if b.CarID == booking.CarID && b.Status != db.BookingCancelled &&
			utils.Overlaps(b.StartDate, b.EndDate, booking.StartDate, booking.EndDate) {
			return apperrors.Unavailable("Car is already booked for the selected dates.")
		}
	}
	booking.ID = len(f.existing) + 1
	f.existing = append(f.existing, booking)
	return nil
}

func TestCreateBookingBlockingStatuses(t *testing.T) {
	cases := []struct {
		name   string
		status string
		wantOK bool
	}{
		{"cancelled frees the dates", db.BookingCancelled, true},
		{"pending blocks", db.BookingPending, false},
		{"ongoing blocks", db.BookingOngoing, false},
		{"completed blocks", db.BookingCompleted, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			start, _ := utils.ParseDate("2025-03-01")
			end, _ := utils.ParseDate("2025-03-05")
			store := &overlapBookingStore{existing: []*db.Booking{
				{ID: 1, UserID: 9, CarID: 2, StartDate: start, EndDate: end, Status: tc.status},
			}}
			svc := NewBookingService(store, &fakeCarGetter{car: testCar()}, &fakeUserGetter{user: testUser()}, nil)

			_, err := svc.CreateBooking(context.Background(), &entities.BookingRequest{
				UserID:     1,
				CarID:      2,
				StartDate:  "2025-03-02",
				EndDate:    "2025-03-04",
				TotalPrice: 100,
			})
			if tc.wantOK {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Equal(t, apperrors.KindUnavailable, apperrors.KindOf(err))
			}
		})
	}
}

func TestCheckAvailability(t *testing.T) {
	existingStart, _ := utils.ParseDate("2025-03-01")
	existingEnd, _ := utils.ParseDate("2025-03-05")
	store := &fakeBookingStore{
		hasOverlapFunc: func(ctx context.Context, carID int, start, end time.Time, excludeID int) (bool, error) {
			return utils.Overlaps(existingStart, existingEnd, start, end), nil
		},
	}
	svc := NewBookingService(store, &fakeCarGetter{car: testCar()}, &fakeUserGetter{user: testUser()}, nil)

	// Overlapping probe.
	resp, err := svc.CheckAvailability(context.Background(), &entities.AvailabilityRequest{
		CarID:     2,
		StartDate: "2025-03-04",
		EndDate:   "2025-03-06",
	})
	require.NoError(t, err)
	assert.False(t, resp.Available)
	assert.NotEmpty(t, resp.Message)

	// Interval starting on the existing end date is free.
	resp, err = svc.CheckAvailability(context.Background(), &entities.AvailabilityRequest{
		CarID:     2,
		StartDate: "2025-03-05",
		EndDate:   "2025-03-07",
	})
	require.NoError(t, err)
	assert.True(t, resp.Available)
}

func TestCheckAvailabilityFlagOff(t *testing.T) {
	car := testCar()
	car.Availability = false
	svc := NewBookingService(&fakeBookingStore{}, &fakeCarGetter{car: car}, &fakeUserGetter{user: testUser()}, nil)

	resp, err := svc.CheckAvailability(context.Background(), &entities.AvailabilityRequest{
		CarID:     2,
		StartDate: "2025-03-01",
		EndDate:   "2025-03-03",
	})
	require.NoError(t, err)
	assert.False(t, resp.Available)
}

func TestUpdateBookingStatusTransitions(t *testing.T) {
	cases := []struct {
		name string
		from string
		to   string
		ok   bool
	}{
		{"pending to ongoing", db.BookingPending, db.BookingOngoing, true},
		{"pending to cancelled", db.BookingPending, db.BookingCancelled, true},
		{"pending to completed", db.BookingPending, db.BookingCompleted, false},
		{"ongoing to completed", db.BookingOngoing, db.BookingCompleted, true},
		{"ongoing to cancelled", db.BookingOngoing, db.BookingCancelled, true},
		{"completed to ongoing", db.BookingCompleted, db.BookingOngoing, false},
		{"cancelled to pending", db.BookingCancelled, db.BookingPending, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := &fakeBookingStore{
				getByIDFunc: func(ctx context.Context, id int) (*db.Booking, error) {
					return &db.Booking{ID: id, UserID: 1, CarID: 2, Status: tc.from}, nil
				},
			}
			svc := NewBookingService(store, &fakeCarGetter{car: testCar()}, &fakeUserGetter{user: testUser()}, nil)

			to := tc.to
			booking, err := svc.UpdateBooking(context.Background(), 7, &entities.BookingUpdateRequest{Status: &to})
			if tc.ok {
				require.NoError(t, err)
				assert.Equal(t, tc.to, booking.Status)
			} else {
				require.Error(t, err)
				assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
			}
		})
	}
}

func TestUpdateBookingStatusChangeNotifies(t *testing.T) {
	store := &fakeBookingStore{
		getByIDFunc: func(ctx context.Context, id int) (*db.Booking, error) {
			return &db.Booking{ID: id, UserID: 1, CarID: 2, Status: db.BookingPending}, nil
		},
	}
	notifier := &fakeNotifier{}
	svc := NewBookingService(store, &fakeCarGetter{car: testCar()}, &fakeUserGetter{user: testUser()}, notifier)

	status := db.BookingOngoing
	_, err := svc.UpdateBooking(context.Background(), 7, &entities.BookingUpdateRequest{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, []string{db.BookingOngoing}, notifier.calls)

	// A price-only update is silent.
	notifier.calls = nil
	price := 300.0
	_, err = svc.UpdateBooking(context.Background(), 7, &entities.BookingUpdateRequest{TotalPrice: &price})
	require.NoError(t, err)
	assert.Empty(t, notifier.calls)
}

func TestUpdateBookingDates(t *testing.T) {
	var updated *db.Booking
	store := &fakeBookingStore{
		getByIDFunc: func(ctx context.Context, id int) (*db.Booking, error) {
			return &db.Booking{ID: id, UserID: 1, CarID: 2, Status: db.BookingPending}, nil
		},
		updateFunc: func(ctx context.Context, booking *db.Booking) error {
			updated = booking
			return nil
		},
	}
	svc := NewBookingService(store, &fakeCarGetter{car: testCar()}, &fakeUserGetter{user: testUser()}, nil)

	start, end := "2025-04-01", "2025-04-03"
	_, err := svc.UpdateBooking(context.Background(), 7, &entities.BookingUpdateRequest{
		StartDate: &start,
		EndDate:   &end,
	})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), updated.StartDate)
	assert.Equal(t, time.Date(2025, 4, 3, 0, 0, 0, 0, time.UTC), updated.EndDate)
}
