package main

import (
	"database/sql"
	"flag"
	"os"

	"github.com/joshbaje/drively-backend/internal/config"
	"github.com/joshbaje/drively-backend/internal/jobs"
	"github.com/joshbaje/drively-backend/internal/logger"

	_ "github.com/lib/pq"
)

// Runs a single lifecycle job and exits. Used for one-off runs and for
// environments that schedule with an external cron instead of the in-process
// scheduler.
func main() {
	configPath := flag.String("config", "config/config.yaml", "path to configuration file")
	jobName := flag.String("job", "", "job to run: activate | complete | expire")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	log := logger.Get()

	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		log.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	bookingJobs := jobs.NewBookingJobs(db, cfg.Pricing)

	switch *jobName {
	case "activate":
		bookingJobs.ActivateCurrentBookings()
	case "complete":
		bookingJobs.CompleteFinishedBookings()
	case "expire":
		bookingJobs.ExpirePendingRequests()
	default:
		log.Error("unknown job", "job", *jobName)
		os.Exit(1)
	}
}
