package service

import (
	"context"
	"fmt"
	"log"

	"diabcar/internal/db"
	"diabcar/internal/repository"
)

type JobService struct {
	Repo *repository.JobRepository
}

func NewJobService(repo *repository.JobRepository) *JobService {
	return &JobService{Repo: repo}
}

// CompleteFinishedBookings marks ongoing bookings whose end date has
// passed as completed. The update skips rows already in the target
// status, so re-running it is safe.
func (s *JobService) CompleteFinishedBookings(ctx context.Context) error {
	log.Println("Cron Job: Checking for bookings to mark as 'completed'...")

	ids, err := s.Repo.GetOngoingBookingIDsPastEndDate(ctx)
	if err != nil {
		return fmt.Errorf("cron job: failed to get ongoing bookings past end date: %w", err)
	}

	if len(ids) == 0 {
		log.Println("Cron Job: No ongoing bookings found past their end date.")
		return nil
	}

	log.Printf("Cron Job: Found %d bookings to mark as 'completed'. IDs: %v", len(ids), ids)

	if err := s.Repo.UpdateBookingStatuses(ctx, ids, db.BookingCompleted); err != nil {
		return fmt.Errorf("cron job: failed to update booking statuses: %w", err)
	}
	return nil
}
