package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/joshbaje/drively-backend/internal/domain"
	"github.com/joshbaje/drively-backend/internal/repository"
)

const vehicleColumns = `id, owner_id, make, model, year, plate, listed,
	daily_rate_cents, weekly_rate_cents, monthly_rate_cents, security_deposit_cents,
	min_rental_days, max_rental_days, created_at, updated_at`

type vehicleRepository struct {
	db *sql.DB
}

func NewVehicleRepository(db *sql.DB) repository.VehicleRepository {
	return &vehicleRepository{db: db}
}

func (r *vehicleRepository) Create(ctx context.Context, v *domain.Vehicle) error {
	query := `INSERT INTO vehicles (id, owner_id, make, model, year, plate, listed,
		daily_rate_cents, weekly_rate_cents, monthly_rate_cents, security_deposit_cents,
		min_rental_days, max_rental_days, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	now := time.Now().UTC()
	v.CreatedAt = now
	v.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		v.ID, v.OwnerID, v.Make, v.Model, v.Year, v.Plate, v.Listed,
		v.DailyRateCents, v.WeeklyRateCents, v.MonthlyRateCents, v.SecurityDepositCents,
		v.MinRentalDays, v.MaxRentalDays, v.CreatedAt, v.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert vehicle: %w", err)
	}
	return nil
}

func (r *vehicleRepository) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1`
	v, err := scanVehicle(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get vehicle: %w", err)
	}
	return v, nil
}

func (r *vehicleRepository) Update(ctx context.Context, v *domain.Vehicle) error {
	query := `UPDATE vehicles SET make=$1, model=$2, year=$3, plate=$4, listed=$5,
		daily_rate_cents=$6, weekly_rate_cents=$7, monthly_rate_cents=$8,
		security_deposit_cents=$9, min_rental_days=$10, max_rental_days=$11, updated_at=$12
		WHERE id=$13`
	res, err := r.db.ExecContext(ctx, query,
		v.Make, v.Model, v.Year, v.Plate, v.Listed,
		v.DailyRateCents, v.WeeklyRateCents, v.MonthlyRateCents,
		v.SecurityDepositCents, v.MinRentalDays, v.MaxRentalDays, time.Now().UTC(),
		v.ID,
	)
	if err != nil {
		return fmt.Errorf("update vehicle: %w", err)
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

func (r *vehicleRepository) ListByOwner(ctx context.Context, ownerID string, page, pageSize int) ([]domain.Vehicle, int, error) {
	offset := (page - 1) * pageSize

	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM vehicles WHERE owner_id = $1`, ownerID).Scan(&count); err != nil {
		return nil, 0, fmt.Errorf("count vehicles: %w", err)
	}

	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE owner_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, ownerID, pageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list vehicles: %w", err)
	}
	defer rows.Close()

	vehicles, err := collectVehicles(rows)
	return vehicles, count, err
}

// SearchAvailable is the server-side counterpart of the marketplace's vehicle
// search: listed vehicles with no blocking booking and no blackout in the
// window. Exact availability is still re-checked by the quote path; this
// query only narrows the candidate set.
func (r *vehicleRepository) SearchAvailable(ctx context.Context, start, end time.Time, page, pageSize int) ([]domain.Vehicle, int, error) {
	offset := (page - 1) * pageSize
	base := `FROM vehicles v
		WHERE v.listed
		  AND NOT EXISTS (
			SELECT 1 FROM bookings b
			WHERE b.vehicle_id = v.id
			  AND b.status IN ('confirmed', 'in_progress')
			  AND b.start_at < $2 AND $1 < b.end_at)
		  AND NOT EXISTS (
			SELECT 1 FROM blackout_periods bl
			WHERE bl.vehicle_id = v.id
			  AND bl.start_at < $2 AND $1 < bl.end_at)`

	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT count(*) "+base, start, end).Scan(&count); err != nil {
		return nil, 0, fmt.Errorf("count available vehicles: %w", err)
	}

	query := `SELECT ` + vehicleColumnsPrefixed("v") + ` ` + base + ` ORDER BY v.created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.db.QueryContext(ctx, query, start, end, pageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("search available vehicles: %w", err)
	}
	defer rows.Close()

	vehicles, err := collectVehicles(rows)
	return vehicles, count, err
}

func vehicleColumnsPrefixed(alias string) string {
	return alias + `.id, ` + alias + `.owner_id, ` + alias + `.make, ` + alias + `.model, ` +
		alias + `.year, ` + alias + `.plate, ` + alias + `.listed, ` +
		alias + `.daily_rate_cents, ` + alias + `.weekly_rate_cents, ` + alias + `.monthly_rate_cents, ` +
		alias + `.security_deposit_cents, ` + alias + `.min_rental_days, ` + alias + `.max_rental_days, ` +
		alias + `.created_at, ` + alias + `.updated_at`
}

func collectVehicles(rows *sql.Rows) ([]domain.Vehicle, error) {
	var vehicles []domain.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, *v)
	}
	return vehicles, rows.Err()
}

func scanVehicle(row rowScanner) (*domain.Vehicle, error) {
	v := &domain.Vehicle{}
	var plate sql.NullString
	err := row.Scan(
		&v.ID, &v.OwnerID, &v.Make, &v.Model, &v.Year, &plate, &v.Listed,
		&v.DailyRateCents, &v.WeeklyRateCents, &v.MonthlyRateCents, &v.SecurityDepositCents,
		&v.MinRentalDays, &v.MaxRentalDays, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	v.Plate = plate.String
	return v, nil
}
