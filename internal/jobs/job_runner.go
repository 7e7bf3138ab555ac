package jobs

import (
	"time"

	"github.com/joshbaje/drively-backend/internal/logger"
)

// runWithRecovery executes a job and converts panics into logged failures so
// one bad run never takes down the scheduler loop.
func runWithRecovery(jobName string, fn func() error) {
	start := time.Now()
	log := logger.WithService("jobs")

	defer func() {
		if r := recover(); r != nil {
			log.Error("job panicked", "job", jobName, "panic", r, "duration", time.Since(start))
		}
	}()

	log.Info("job started", "job", jobName)
	if err := fn(); err != nil {
		log.Error("job failed", "job", jobName, "error", err, "duration", time.Since(start))
		return
	}
	log.Info("job finished", "job", jobName, "duration", time.Since(start))
}
