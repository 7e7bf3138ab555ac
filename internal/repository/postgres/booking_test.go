package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/joshbaje/drively-backend/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bookingRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "vehicle_id", "renter_id", "owner_id", "start_at", "end_at", "status",
		"total_days", "daily_rate_cents", "subtotal_cents", "insurance_fee_cents", "service_fee_cents",
		"tax_cents", "discount_cents", "total_cents", "security_deposit_cents", "insurance_selected",
		"cancel_reason", "created_at", "updated_at",
	})
}

func TestBookingRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewBookingRepository(db)
	ctx := context.Background()

	booking := &domain.Booking{
		ID:        "bk-1",
		VehicleID: "veh-1",
		RenterID:  "usr-1",
		OwnerID:   "usr-2",
		StartAt:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		EndAt:     time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC),
		Status:    domain.BookingStatusPending,
		TotalDays: 5,
	}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO bookings").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Create(ctx, booking)
		assert.NoError(t, err)
	})

	t.Run("Exclusion violation maps to conflict", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO bookings").
			WillReturnError(&pq.Error{Code: "23P01", Constraint: "bookings_no_overlap"})

		err := repo.Create(ctx, booking)
		assert.ErrorIs(t, err, domain.ErrBookingConflict)
	})
}

func TestBookingRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewBookingRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		now := time.Now()
		rows := bookingRows().AddRow(
			"bk-1", "veh-1", "usr-1", "usr-2", now, now.Add(5*24*time.Hour), "confirmed",
			5, 100000, 500000, 17500, 50000,
			60000, 0, 627500, 500000, true,
			nil, now, now,
		)
		mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id = \\$1").
			WithArgs("bk-1").
			WillReturnRows(rows)

		b, err := repo.GetByID(ctx, "bk-1")
		require.NoError(t, err)
		assert.Equal(t, "bk-1", b.ID)
		assert.Equal(t, domain.BookingStatusConfirmed, b.Status)
		assert.Equal(t, int64(627500), b.TotalCents)
	})

	t.Run("Not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id = \\$1").
			WithArgs("missing").
			WillReturnRows(bookingRows())

		_, err := repo.GetByID(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestBookingRepository_UpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewBookingRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE bookings SET status").
			WithArgs(domain.BookingStatusConfirmed, "", sqlmock.AnyArg(), "bk-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateStatus(ctx, "bk-1", domain.BookingStatusConfirmed, "")
		assert.NoError(t, err)
	})

	t.Run("Confirm into occupied window maps to conflict", func(t *testing.T) {
		mock.ExpectExec("UPDATE bookings SET status").
			WillReturnError(&pq.Error{Code: "23P01", Constraint: "bookings_no_overlap"})

		err := repo.UpdateStatus(ctx, "bk-1", domain.BookingStatusConfirmed, "")
		assert.ErrorIs(t, err, domain.ErrBookingConflict)
	})

	t.Run("Missing booking", func(t *testing.T) {
		mock.ExpectExec("UPDATE bookings SET status").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateStatus(ctx, "missing", domain.BookingStatusCancelled, "changed plans")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestBookingRepository_ListBlockingByVehicle(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewBookingRepository(db)
	ctx := context.Background()

	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	now := time.Now()
	rows := bookingRows().AddRow(
		"bk-1", "veh-1", "usr-1", "usr-2", start, start.Add(48*time.Hour), "confirmed",
		2, 100000, 200000, 0, 20000,
		24000, 0, 244000, 500000, false,
		nil, now, now,
	)
	mock.ExpectQuery("SELECT (.+) FROM bookings").
		WithArgs("veh-1", start, end).
		WillReturnRows(rows)

	bookings, err := repo.ListBlockingByVehicle(ctx, "veh-1", start, end)
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, "bk-1", bookings[0].ID)
}
