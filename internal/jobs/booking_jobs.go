package jobs

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/joshbaje/drively-backend/internal/config"
	"github.com/joshbaje/drively-backend/internal/logger"
)

// BookingJobs advances booking lifecycle states on the clock. The jobs work
// directly in SQL: each run is one set-based UPDATE, safe to re-run and safe
// to overlap with API writes.
type BookingJobs struct {
	db  *sql.DB
	cfg config.PricingConfig
}

func NewBookingJobs(db *sql.DB, cfg config.PricingConfig) *BookingJobs {
	return &BookingJobs{db: db, cfg: cfg}
}

// ActivateCurrentBookings moves confirmed bookings whose window has begun
// into in_progress.
func (j *BookingJobs) ActivateCurrentBookings() {
	runWithRecovery("activate_current_bookings", func() error {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		res, err := j.db.ExecContext(ctx, `
			UPDATE bookings
			SET status = 'in_progress', updated_at = now()
			WHERE status = 'confirmed' AND start_at <= now()`)
		if err != nil {
			return fmt.Errorf("activate current bookings: %w", err)
		}
		return logAffected(res, "bookings activated")
	})
}

// CompleteFinishedBookings moves in-progress bookings whose window has ended
// into completed, releasing the vehicle's calendar.
func (j *BookingJobs) CompleteFinishedBookings() {
	runWithRecovery("complete_finished_bookings", func() error {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		res, err := j.db.ExecContext(ctx, `
			UPDATE bookings
			SET status = 'completed', updated_at = now()
			WHERE status = 'in_progress' AND end_at <= now()`)
		if err != nil {
			return fmt.Errorf("complete finished bookings: %w", err)
		}
		return logAffected(res, "bookings completed")
	})
}

// ExpirePendingRequests declines pending requests the owner never acted on.
// Stale requests otherwise linger forever, since pending bookings never
// block the calendar and nothing else forces a resolution.
func (j *BookingJobs) ExpirePendingRequests() {
	runWithRecovery("expire_pending_requests", func() error {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		cutoff := time.Now().UTC().Add(-time.Duration(j.cfg.PendingExpiryHours) * time.Hour)
		res, err := j.db.ExecContext(ctx, `
			UPDATE bookings
			SET status = 'declined', cancel_reason = 'expired', updated_at = now()
			WHERE status = 'pending' AND created_at < $1`, cutoff)
		if err != nil {
			return fmt.Errorf("expire pending requests: %w", err)
		}
		return logAffected(res, "pending requests expired")
	})
}

func logAffected(res sql.Result, msg string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected > 0 {
		logger.WithService("jobs").Info(msg, "count", affected)
	}
	return nil
}
