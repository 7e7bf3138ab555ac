package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/joshbaje/drively-backend/internal/config"
	"github.com/joshbaje/drively-backend/internal/domain"
	"github.com/joshbaje/drively-backend/internal/logger"
	"github.com/joshbaje/drively-backend/internal/pricing"
	"github.com/joshbaje/drively-backend/internal/repository"

	"github.com/google/uuid"
)

type bookingService struct {
	bookings  repository.BookingRepository
	vehicles  repository.VehicleRepository
	blackouts repository.BlackoutRepository
	users     repository.UserRepository
	email     EmailService
	policy    pricing.FeePolicy
	log       *slog.Logger
}

func NewBookingService(
	bookings repository.BookingRepository,
	vehicles repository.VehicleRepository,
	blackouts repository.BlackoutRepository,
	users repository.UserRepository,
	email EmailService,
	pricingCfg config.PricingConfig,
) BookingService {
	return &bookingService{
		bookings:  bookings,
		vehicles:  vehicles,
		blackouts: blackouts,
		users:     users,
		email:     email,
		policy: pricing.FeePolicy{
			TaxRate:                 pricingCfg.TaxRate,
			ServiceFeeRate:          pricingCfg.ServiceFeeRate,
			InsuranceDailyRateCents: pricingCfg.InsuranceDailyRateCents,
		},
		log: logger.WithService("booking"),
	}
}

// quoteInput gathers everything the pricing engine needs for one vehicle and
// window: the listing's rate schedule plus a snapshot of blocking bookings
// and blackouts.
func (s *bookingService) quoteInput(ctx context.Context, vehicleID string, r pricing.DateRange) (*domain.Vehicle, []domain.Booking, []domain.BlackoutPeriod, error) {
	vehicle, err := s.vehicles.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, nil, nil, err
	}
	if !vehicle.Listed {
		return nil, nil, nil, domain.ErrNotFound
	}

	bookings, err := s.bookings.ListBlockingByVehicle(ctx, vehicleID, r.Start, r.End)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load blocking bookings: %w", err)
	}
	blackouts, err := s.blackouts.ListByVehicleInRange(ctx, vehicleID, r.Start, r.End)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load blackouts: %w", err)
	}
	return vehicle, bookings, blackouts, nil
}

func scheduleFor(v *domain.Vehicle) pricing.RateSchedule {
	return pricing.RateSchedule{
		DailyRateCents:       v.DailyRateCents,
		WeeklyRateCents:      v.WeeklyRateCents,
		MonthlyRateCents:     v.MonthlyRateCents,
		SecurityDepositCents: v.SecurityDepositCents,
		MinRentalDays:        v.MinRentalDays,
		MaxRentalDays:        v.MaxRentalDays,
	}
}

func (s *bookingService) GetQuote(ctx context.Context, vehicleID string, start, end time.Time, insuranceSelected bool, discountCents int64) (*pricing.PriceQuote, error) {
	r := pricing.DateRange{Start: start, End: end}
	if err := r.Validate(); err != nil {
		return nil, err
	}

	vehicle, bookings, blackouts, err := s.quoteInput(ctx, vehicleID, r)
	if err != nil {
		return nil, err
	}

	return pricing.Quote(vehicleID, r, bookings, blackouts, scheduleFor(vehicle), s.policy, insuranceSelected, discountCents)
}

func (s *bookingService) CheckAvailability(ctx context.Context, vehicleID string, start, end time.Time) (*pricing.AvailabilityResult, error) {
	r := pricing.DateRange{Start: start, End: end}
	if err := r.Validate(); err != nil {
		return nil, err
	}

	_, bookings, blackouts, err := s.quoteInput(ctx, vehicleID, r)
	if err != nil {
		return nil, err
	}

	result := pricing.CheckAvailability(vehicleID, r, bookings, blackouts)
	return &result, nil
}

// CreateBooking prices the request and records it as a pending booking with
// the quote frozen into the row. Pending bookings do not occupy the calendar;
// the exclusion constraint is exercised later, at confirmation.
func (s *bookingService) CreateBooking(ctx context.Context, renterID, vehicleID string, start, end time.Time, insuranceSelected bool, discountCents int64) (*domain.Booking, error) {
	r := pricing.DateRange{Start: start, End: end}
	if err := r.Validate(); err != nil {
		return nil, err
	}

	vehicle, bookings, blackouts, err := s.quoteInput(ctx, vehicleID, r)
	if err != nil {
		return nil, err
	}
	if vehicle.OwnerID == renterID {
		return nil, domain.ErrForbidden
	}

	quote, err := pricing.Quote(vehicleID, r, bookings, blackouts, scheduleFor(vehicle), s.policy, insuranceSelected, discountCents)
	if err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		ID:                   uuid.New().String(),
		VehicleID:            vehicleID,
		RenterID:             renterID,
		OwnerID:              vehicle.OwnerID,
		StartAt:              start,
		EndAt:                end,
		Status:               domain.BookingStatusPending,
		TotalDays:            quote.Days,
		DailyRateCents:       quote.DailyRateCents,
		SubtotalCents:        quote.SubtotalCents,
		InsuranceFeeCents:    quote.InsuranceFeeCents,
		ServiceFeeCents:      quote.ServiceFeeCents,
		TaxCents:             quote.TaxCents,
		DiscountCents:        quote.DiscountCents,
		TotalCents:           quote.TotalCents,
		SecurityDepositCents: quote.SecurityDepositCents,
		InsuranceSelected:    insuranceSelected,
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}

	s.log.Info("booking requested",
		"booking_id", booking.ID,
		"vehicle_id", vehicleID,
		"renter_id", renterID,
		"total_cents", booking.TotalCents,
	)

	s.notifyOwner(booking, vehicle)

	return booking, nil
}

func (s *bookingService) ConfirmBooking(ctx context.Context, ownerID, bookingID string) (*domain.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.OwnerID != ownerID {
		return nil, domain.ErrForbidden
	}
	if booking.Status != domain.BookingStatusPending {
		return nil, fmt.Errorf("booking %s is %s, only pending bookings can be confirmed: %w",
			bookingID, booking.Status, domain.ErrBookingConflict)
	}

	// The UPDATE moves the booking into a blocking status, so the exclusion
	// constraint arbitrates between competing pending requests here.
	if err := s.bookings.UpdateStatus(ctx, bookingID, domain.BookingStatusConfirmed, ""); err != nil {
		return nil, err
	}
	booking.Status = domain.BookingStatusConfirmed

	s.log.Info("booking confirmed", "booking_id", bookingID, "vehicle_id", booking.VehicleID)
	s.notifyRenterConfirmed(booking)

	return booking, nil
}

func (s *bookingService) DeclineBooking(ctx context.Context, ownerID, bookingID string) (*domain.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.OwnerID != ownerID {
		return nil, domain.ErrForbidden
	}
	if booking.Status != domain.BookingStatusPending {
		return nil, fmt.Errorf("booking %s is %s, only pending bookings can be declined: %w",
			bookingID, booking.Status, domain.ErrBookingConflict)
	}

	if err := s.bookings.UpdateStatus(ctx, bookingID, domain.BookingStatusDeclined, ""); err != nil {
		return nil, err
	}
	booking.Status = domain.BookingStatusDeclined

	s.log.Info("booking declined", "booking_id", bookingID)
	s.notifyRenterDeclined(booking)

	return booking, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, renterID, bookingID, reason string) (*domain.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.RenterID != renterID {
		return nil, domain.ErrForbidden
	}
	switch booking.Status {
	case domain.BookingStatusPending, domain.BookingStatusConfirmed:
	default:
		return nil, fmt.Errorf("booking %s is %s and can no longer be cancelled: %w",
			bookingID, booking.Status, domain.ErrBookingConflict)
	}
	if !time.Now().UTC().Before(booking.StartAt) {
		return nil, fmt.Errorf("booking %s already started: %w", bookingID, domain.ErrBookingConflict)
	}

	if err := s.bookings.UpdateStatus(ctx, bookingID, domain.BookingStatusCancelled, reason); err != nil {
		return nil, err
	}
	booking.Status = domain.BookingStatusCancelled
	booking.CancelReason = reason

	s.log.Info("booking cancelled", "booking_id", bookingID, "reason", reason)
	s.notifyOwnerCancelled(booking)

	return booking, nil
}

func (s *bookingService) GetBooking(ctx context.Context, userID, bookingID string) (*domain.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.RenterID != userID && booking.OwnerID != userID {
		return nil, domain.ErrForbidden
	}
	return booking, nil
}

func (s *bookingService) ListRenterBookings(ctx context.Context, renterID string, status domain.BookingStatus, page, pageSize int) ([]domain.Booking, int, error) {
	page, pageSize = normalizePage(page, pageSize)
	return s.bookings.ListByRenter(ctx, renterID, status, page, pageSize)
}

func (s *bookingService) ListOwnerBookings(ctx context.Context, ownerID string, status domain.BookingStatus, page, pageSize int) ([]domain.Booking, int, error) {
	page, pageSize = normalizePage(page, pageSize)
	return s.bookings.ListByOwner(ctx, ownerID, status, page, pageSize)
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}

// Notification helpers run in a goroutine with a detached context so a slow
// or failing email provider never affects the API response. Failures are
// logged and dropped.

func (s *bookingService) notifyOwner(booking *domain.Booking, vehicle *domain.Vehicle) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		owner, err := s.users.GetByID(ctx, booking.OwnerID)
		if err != nil {
			s.log.Warn("owner lookup for notification failed", "booking_id", booking.ID, "error", err)
			return
		}
		renter, err := s.users.GetByID(ctx, booking.RenterID)
		if err != nil {
			s.log.Warn("renter lookup for notification failed", "booking_id", booking.ID, "error", err)
			return
		}
		name := fmt.Sprintf("%s %s %d", vehicle.Make, vehicle.Model, vehicle.Year)
		if err := s.email.SendBookingRequested(ctx, owner.Email, renter.FullName, name, booking.StartAt, booking.EndAt); err != nil {
			s.log.Warn("booking requested email failed", "booking_id", booking.ID, "error", err)
		}
	}()
}

func (s *bookingService) notifyRenterConfirmed(booking *domain.Booking) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		renter, err := s.users.GetByID(ctx, booking.RenterID)
		if err != nil {
			s.log.Warn("renter lookup for notification failed", "booking_id", booking.ID, "error", err)
			return
		}
		name := s.vehicleName(ctx, booking.VehicleID)
		if err := s.email.SendBookingConfirmed(ctx, renter.Email, name, booking.StartAt, booking.EndAt, booking.TotalCents); err != nil {
			s.log.Warn("booking confirmed email failed", "booking_id", booking.ID, "error", err)
		}
	}()
}

func (s *bookingService) notifyRenterDeclined(booking *domain.Booking) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		renter, err := s.users.GetByID(ctx, booking.RenterID)
		if err != nil {
			s.log.Warn("renter lookup for notification failed", "booking_id", booking.ID, "error", err)
			return
		}
		if err := s.email.SendBookingDeclined(ctx, renter.Email, s.vehicleName(ctx, booking.VehicleID)); err != nil {
			s.log.Warn("booking declined email failed", "booking_id", booking.ID, "error", err)
		}
	}()
}

func (s *bookingService) notifyOwnerCancelled(booking *domain.Booking) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		owner, err := s.users.GetByID(ctx, booking.OwnerID)
		if err != nil {
			s.log.Warn("owner lookup for notification failed", "booking_id", booking.ID, "error", err)
			return
		}
		renter, err := s.users.GetByID(ctx, booking.RenterID)
		if err != nil {
			s.log.Warn("renter lookup for notification failed", "booking_id", booking.ID, "error", err)
			return
		}
		if err := s.email.SendBookingCancelled(ctx, owner.Email, renter.FullName, s.vehicleName(ctx, booking.VehicleID), booking.CancelReason); err != nil {
			s.log.Warn("booking cancelled email failed", "booking_id", booking.ID, "error", err)
		}
	}()
}

func (s *bookingService) vehicleName(ctx context.Context, vehicleID string) string {
	v, err := s.vehicles.GetByID(ctx, vehicleID)
	if err != nil {
		return "your vehicle"
	}
	return fmt.Sprintf("%s %s %d", v.Make, v.Model, v.Year)
}
