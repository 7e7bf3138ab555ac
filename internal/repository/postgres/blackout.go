package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/joshbaje/drively-backend/internal/domain"
	"github.com/joshbaje/drively-backend/internal/repository"
)

type blackoutRepository struct {
	db *sql.DB
}

func NewBlackoutRepository(db *sql.DB) repository.BlackoutRepository {
	return &blackoutRepository{db: db}
}

func (r *blackoutRepository) Create(ctx context.Context, b *domain.BlackoutPeriod) error {
	query := `INSERT INTO blackout_periods (id, vehicle_id, start_at, end_at, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	b.CreatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx, query, b.ID, b.VehicleID, b.StartAt, b.EndAt, b.Reason, b.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert blackout: %w", err)
	}
	return nil
}

func (r *blackoutRepository) Delete(ctx context.Context, id, vehicleID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM blackout_periods WHERE id = $1 AND vehicle_id = $2`, id, vehicleID)
	if err != nil {
		return fmt.Errorf("delete blackout: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *blackoutRepository) ListByVehicle(ctx context.Context, vehicleID string) ([]domain.BlackoutPeriod, error) {
	query := `SELECT id, vehicle_id, start_at, end_at, reason, created_at
		FROM blackout_periods WHERE vehicle_id = $1 ORDER BY start_at`
	rows, err := r.db.QueryContext(ctx, query, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("list blackouts: %w", err)
	}
	defer rows.Close()
	return collectBlackouts(rows)
}

func (r *blackoutRepository) ListByVehicleInRange(ctx context.Context, vehicleID string, start, end time.Time) ([]domain.BlackoutPeriod, error) {
	query := `SELECT id, vehicle_id, start_at, end_at, reason, created_at
		FROM blackout_periods
		WHERE vehicle_id = $1 AND start_at < $3 AND $2 < end_at
		ORDER BY start_at`
	rows, err := r.db.QueryContext(ctx, query, vehicleID, start, end)
	if err != nil {
		return nil, fmt.Errorf("list blackouts in range: %w", err)
	}
	defer rows.Close()
	return collectBlackouts(rows)
}

func collectBlackouts(rows *sql.Rows) ([]domain.BlackoutPeriod, error) {
	var blackouts []domain.BlackoutPeriod
	for rows.Next() {
		var b domain.BlackoutPeriod
		if err := rows.Scan(&b.ID, &b.VehicleID, &b.StartAt, &b.EndAt, &b.Reason, &b.CreatedAt); err != nil {
			return nil, err
		}
		blackouts = append(blackouts, b)
	}
	return blackouts, rows.Err()
}
