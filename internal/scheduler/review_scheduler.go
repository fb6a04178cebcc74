package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/tablehost/sop-backend/internal/app/repository"
	"github.com/tablehost/sop-backend/pkg/logger"
)

// ReviewScheduler flips approved documents whose review date has passed back
// into review status, so stale procedures surface on the manager dashboard.
type ReviewScheduler struct {
	cron         *cron.Cron
	documentRepo repository.DocumentRepository
	spec         string
}

func NewReviewScheduler(documentRepo repository.DocumentRepository, spec string) *ReviewScheduler {
	return &ReviewScheduler{
		cron:         cron.New(),
		documentRepo: documentRepo,
		spec:         spec,
	}
}

// Start registers the daily sweep
func (s *ReviewScheduler) Start() error {
	_, err := s.cron.AddFunc(s.spec, s.Sweep)
	if err != nil {
		logger.Error("Failed to add cron job for review sweep", err)
		return err
	}

	s.cron.Start()
	logger.Info("Review scheduler started", map[string]interface{}{
		"spec": s.spec,
	})
	return nil
}

// Sweep runs one pass over overdue documents. Exposed so an operator can
// trigger it outside the schedule.
func (s *ReviewScheduler) Sweep() {
	logger.Info("Starting review-due sweep", nil)

	count, err := s.documentRepo.MarkOverdueForReview(time.Now())
	if err != nil {
		logger.Error("Review-due sweep failed", err)
		return
	}

	logger.Info("Review-due sweep finished", map[string]interface{}{
		"flagged": count,
	})
}

// Stop halts the scheduler
func (s *ReviewScheduler) Stop() {
	logger.Info("Stopping review scheduler...", nil)
	s.cron.Stop()
	logger.Info("Review scheduler stopped", nil)
}
