package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"tricoterie/internal/repository"
	"tricoterie/internal/slots"
)

// JobService runs the nightly cleanup: finished sessions get their status
// flipped, stale pending reservations and expired hour buckets are dropped.
type JobService struct {
	Repo    *repository.JobRepository
	ResRepo *repository.ReservationRepository
	Tracker *slots.Tracker
}

func NewJobService(repo *repository.JobRepository, resRepo *repository.ReservationRepository, tracker *slots.Tracker) *JobService {
	return &JobService{Repo: repo, ResRepo: resRepo, Tracker: tracker}
}

func (s *JobService) FinishElapsedReservations() error {
	ids, err := s.Repo.GetConfirmedReservationIDsPastEndTime()
	if err != nil {
		return fmt.Errorf("cron job: failed to get elapsed reservations: %w", err)
	}
	if len(ids) == 0 {
		return nil
	}
	if err := s.Repo.UpdateReservationStatuses(ids, "finished"); err != nil {
		return fmt.Errorf("cron job: failed to update reservation statuses: %w", err)
	}
	return nil
}

// PurgeStale drops hour buckets older than a day and pending reservations
// whose checkout never completed within two days.
func (s *JobService) PurgeStale(ctx context.Context) error {
	removed, err := s.Tracker.PurgeBefore(ctx, time.Now().Add(-24*time.Hour))
	if err != nil {
		return fmt.Errorf("cron job: failed to purge slot buckets: %w", err)
	}
	if removed > 0 {
		log.Printf("Cron Job: purged %d expired slot buckets", removed)
	}

	deleted, err := s.ResRepo.DeletePendingReservationsOlderThan(time.Now().Add(-48 * time.Hour))
	if err != nil {
		return fmt.Errorf("cron job: failed to delete stale pending reservations: %w", err)
	}
	if deleted > 0 {
		log.Printf("Cron Job: deleted %d stale pending reservations", deleted)
	}
	return nil
}
