package scheduler

import (
	"fmt"
	"time"

	"github.com/joshbaje/drively-backend/internal/config"
	"github.com/joshbaje/drively-backend/internal/jobs"
	"github.com/joshbaje/drively-backend/internal/logger"

	"github.com/robfig/cron/v3"
)

// Scheduler drives the booking lifecycle jobs on cron schedules. All
// schedules use six-field specs (with seconds) and run in UTC.
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.BookingJobs
	cfg  config.SchedulerConfig
}

func New(bookingJobs *jobs.BookingJobs, cfg config.SchedulerConfig) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithLocation(time.UTC), cron.WithSeconds()),
		jobs: bookingJobs,
		cfg:  cfg,
	}
}

func (s *Scheduler) Start() error {
	entries := []struct {
		name string
		spec string
		fn   func()
	}{
		{"activate_current_bookings", s.cfg.ActivateCurrentBookings, s.jobs.ActivateCurrentBookings},
		{"complete_finished_bookings", s.cfg.CompleteFinishedBookings, s.jobs.CompleteFinishedBookings},
		{"expire_pending_requests", s.cfg.ExpirePendingRequests, s.jobs.ExpirePendingRequests},
	}

	log := logger.WithService("scheduler")
	for _, e := range entries {
		if _, err := s.cron.AddFunc(e.spec, e.fn); err != nil {
			return fmt.Errorf("schedule %s (%q): %w", e.name, e.spec, err)
		}
		log.Info("job scheduled", "job", e.name, "spec", e.spec)
	}

	s.cron.Start()
	return nil
}

// Stop halts scheduling and waits for in-flight jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
