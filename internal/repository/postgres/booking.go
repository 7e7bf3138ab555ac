package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/joshbaje/drively-backend/internal/domain"
	"github.com/joshbaje/drively-backend/internal/repository"

	"github.com/lib/pq"
)

const bookingColumns = `id, vehicle_id, renter_id, owner_id, start_at, end_at, status,
	total_days, daily_rate_cents, subtotal_cents, insurance_fee_cents, service_fee_cents,
	tax_cents, discount_cents, total_cents, security_deposit_cents, insurance_selected,
	cancel_reason, created_at, updated_at`

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

// isBookingConflict matches SQLSTATE 23P01, raised by the bookings_no_overlap
// exclusion constraint when two blocking bookings overlap on one vehicle.
func isBookingConflict(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23P01"
	}
	return false
}

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	query := `INSERT INTO bookings (id, vehicle_id, renter_id, owner_id, start_at, end_at, status,
		total_days, daily_rate_cents, subtotal_cents, insurance_fee_cents, service_fee_cents,
		tax_cents, discount_cents, total_cents, security_deposit_cents, insurance_selected,
		created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`

	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		b.ID, b.VehicleID, b.RenterID, b.OwnerID, b.StartAt, b.EndAt, b.Status,
		b.TotalDays, b.DailyRateCents, b.SubtotalCents, b.InsuranceFeeCents, b.ServiceFeeCents,
		b.TaxCents, b.DiscountCents, b.TotalCents, b.SecurityDepositCents, b.InsuranceSelected,
		b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		if isBookingConflict(err) {
			return domain.ErrBookingConflict
		}
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	b, err := scanBooking(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return b, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus, cancelReason string) error {
	query := `UPDATE bookings SET status = $1, cancel_reason = $2, updated_at = $3 WHERE id = $4`
	res, err := r.db.ExecContext(ctx, query, status, cancelReason, time.Now().UTC(), id)
	if err != nil {
		if isBookingConflict(err) {
			return domain.ErrBookingConflict
		}
		return fmt.Errorf("update booking status: %w", err)
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

func (r *bookingRepository) ListBlockingByVehicle(ctx context.Context, vehicleID string, start, end time.Time) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings
		WHERE vehicle_id = $1
		  AND status IN ('confirmed', 'in_progress')
		  AND start_at < $3 AND $2 < end_at
		ORDER BY start_at`

	rows, err := r.db.QueryContext(ctx, query, vehicleID, start, end)
	if err != nil {
		return nil, fmt.Errorf("list blocking bookings: %w", err)
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

func (r *bookingRepository) ListByRenter(ctx context.Context, renterID string, status domain.BookingStatus, page, pageSize int) ([]domain.Booking, int, error) {
	return r.list(ctx, "renter_id", renterID, status, page, pageSize)
}

func (r *bookingRepository) ListByOwner(ctx context.Context, ownerID string, status domain.BookingStatus, page, pageSize int) ([]domain.Booking, int, error) {
	return r.list(ctx, "owner_id", ownerID, status, page, pageSize)
}

func (r *bookingRepository) list(ctx context.Context, column, userID string, status domain.BookingStatus, page, pageSize int) ([]domain.Booking, int, error) {
	offset := (page - 1) * pageSize
	base := `FROM bookings WHERE ` + column + ` = $1`
	args := []interface{}{userID}
	argIdx := 2
	if status != "" {
		base += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}

	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT count(*) "+base, args...).Scan(&count); err != nil {
		return nil, 0, fmt.Errorf("count bookings: %w", err)
	}

	query := fmt.Sprintf("SELECT %s %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		bookingColumns, base, argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, 0, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, count, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	b := &domain.Booking{}
	var cancelReason sql.NullString
	err := row.Scan(
		&b.ID, &b.VehicleID, &b.RenterID, &b.OwnerID, &b.StartAt, &b.EndAt, &b.Status,
		&b.TotalDays, &b.DailyRateCents, &b.SubtotalCents, &b.InsuranceFeeCents, &b.ServiceFeeCents,
		&b.TaxCents, &b.DiscountCents, &b.TotalCents, &b.SecurityDepositCents, &b.InsuranceSelected,
		&cancelReason, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	b.CancelReason = cancelReason.String
	return b, nil
}
