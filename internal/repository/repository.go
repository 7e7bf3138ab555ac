package repository

import (
	"context"
	"time"

	"github.com/joshbaje/drively-backend/internal/domain"
)

type VehicleRepository interface {
	Create(ctx context.Context, v *domain.Vehicle) error
	GetByID(ctx context.Context, id string) (*domain.Vehicle, error)
	Update(ctx context.Context, v *domain.Vehicle) error
	ListByOwner(ctx context.Context, ownerID string, page, pageSize int) ([]domain.Vehicle, int, error)

	// SearchAvailable returns listed vehicles with no blocking booking and no
	// blackout overlapping [start, end).
	SearchAvailable(ctx context.Context, start, end time.Time, page, pageSize int) ([]domain.Vehicle, int, error)
}

type BookingRepository interface {
	// Create persists a booking. When the booking is in a blocking status and
	// overlaps another blocking booking on the same vehicle, the exclusion
	// constraint rejects it and Create returns domain.ErrBookingConflict.
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	// UpdateStatus transitions a booking; moving into a blocking status can
	// also fail with domain.ErrBookingConflict.
	UpdateStatus(ctx context.Context, id string, status domain.BookingStatus, cancelReason string) error
	// ListBlockingByVehicle returns confirmed/in-progress bookings of the
	// vehicle overlapping [start, end) — the availability snapshot input.
	ListBlockingByVehicle(ctx context.Context, vehicleID string, start, end time.Time) ([]domain.Booking, error)
	ListByRenter(ctx context.Context, renterID string, status domain.BookingStatus, page, pageSize int) ([]domain.Booking, int, error)
	ListByOwner(ctx context.Context, ownerID string, status domain.BookingStatus, page, pageSize int) ([]domain.Booking, int, error)
}

type BlackoutRepository interface {
	Create(ctx context.Context, b *domain.BlackoutPeriod) error
	Delete(ctx context.Context, id, vehicleID string) error
	ListByVehicle(ctx context.Context, vehicleID string) ([]domain.BlackoutPeriod, error)
	// ListByVehicleInRange returns blackouts overlapping [start, end).
	ListByVehicleInRange(ctx context.Context, vehicleID string, start, end time.Time) ([]domain.BlackoutPeriod, error)
}

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}
