package service

import (
	"context"
	"time"

	"github.com/joshbaje/drively-backend/internal/domain"
	"github.com/joshbaje/drively-backend/internal/pricing"
)

type BookingService interface {
	// GetQuote prices a proposed rental against a fresh availability
	// snapshot. It is the single pricing path shared by the preview endpoint
	// and booking creation, so the estimate a renter sees and the price that
	// gets committed cannot drift.
	GetQuote(ctx context.Context, vehicleID string, start, end time.Time, insuranceSelected bool, discountCents int64) (*pricing.PriceQuote, error)
	CheckAvailability(ctx context.Context, vehicleID string, start, end time.Time) (*pricing.AvailabilityResult, error)
	CreateBooking(ctx context.Context, renterID, vehicleID string, start, end time.Time, insuranceSelected bool, discountCents int64) (*domain.Booking, error)
	ConfirmBooking(ctx context.Context, ownerID, bookingID string) (*domain.Booking, error)
	DeclineBooking(ctx context.Context, ownerID, bookingID string) (*domain.Booking, error)
	CancelBooking(ctx context.Context, renterID, bookingID, reason string) (*domain.Booking, error)
	GetBooking(ctx context.Context, userID, bookingID string) (*domain.Booking, error)
	ListRenterBookings(ctx context.Context, renterID string, status domain.BookingStatus, page, pageSize int) ([]domain.Booking, int, error)
	ListOwnerBookings(ctx context.Context, ownerID string, status domain.BookingStatus, page, pageSize int) ([]domain.Booking, int, error)
}

type VehicleService interface {
	GetVehicle(ctx context.Context, id string) (*domain.Vehicle, error)
	CreateVehicle(ctx context.Context, ownerID string, v *domain.Vehicle) error
	UpdateVehicle(ctx context.Context, ownerID string, v *domain.Vehicle) error
	ListOwnerVehicles(ctx context.Context, ownerID string, page, pageSize int) ([]domain.Vehicle, int, error)
	SearchAvailable(ctx context.Context, start, end time.Time, page, pageSize int) ([]domain.Vehicle, int, error)
	AddBlackout(ctx context.Context, ownerID, vehicleID string, start, end time.Time, reason string) (*domain.BlackoutPeriod, error)
	RemoveBlackout(ctx context.Context, ownerID, vehicleID, blackoutID string) error
	ListBlackouts(ctx context.Context, vehicleID string) ([]domain.BlackoutPeriod, error)
}

type EmailService interface {
	SendBookingRequested(ctx context.Context, ownerEmail, renterName, vehicleName string, start, end time.Time) error
	SendBookingConfirmed(ctx context.Context, renterEmail, vehicleName string, start, end time.Time, totalCents int64) error
	SendBookingDeclined(ctx context.Context, renterEmail, vehicleName string) error
	SendBookingCancelled(ctx context.Context, ownerEmail, renterName, vehicleName, reason string) error
}
