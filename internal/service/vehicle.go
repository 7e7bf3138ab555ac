package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/joshbaje/drively-backend/internal/domain"
	"github.com/joshbaje/drively-backend/internal/logger"
	"github.com/joshbaje/drively-backend/internal/pricing"
	"github.com/joshbaje/drively-backend/internal/repository"

	"github.com/google/uuid"
)

type vehicleService struct {
	vehicles  repository.VehicleRepository
	blackouts repository.BlackoutRepository
	log       *slog.Logger
}

func NewVehicleService(vehicles repository.VehicleRepository, blackouts repository.BlackoutRepository) VehicleService {
	return &vehicleService{
		vehicles:  vehicles,
		blackouts: blackouts,
		log:       logger.WithService("vehicle"),
	}
}

func (s *vehicleService) GetVehicle(ctx context.Context, id string) (*domain.Vehicle, error) {
	return s.vehicles.GetByID(ctx, id)
}

func (s *vehicleService) CreateVehicle(ctx context.Context, ownerID string, v *domain.Vehicle) error {
	if err := validateRates(v); err != nil {
		return err
	}
	v.ID = uuid.New().String()
	v.OwnerID = ownerID
	if err := s.vehicles.Create(ctx, v); err != nil {
		return err
	}
	s.log.Info("vehicle listed", "vehicle_id", v.ID, "owner_id", ownerID)
	return nil
}

func (s *vehicleService) UpdateVehicle(ctx context.Context, ownerID string, v *domain.Vehicle) error {
	existing, err := s.vehicles.GetByID(ctx, v.ID)
	if err != nil {
		return err
	}
	if existing.OwnerID != ownerID {
		return domain.ErrForbidden
	}
	if err := validateRates(v); err != nil {
		return err
	}
	return s.vehicles.Update(ctx, v)
}

func (s *vehicleService) ListOwnerVehicles(ctx context.Context, ownerID string, page, pageSize int) ([]domain.Vehicle, int, error) {
	page, pageSize = normalizePage(page, pageSize)
	return s.vehicles.ListByOwner(ctx, ownerID, page, pageSize)
}

func (s *vehicleService) SearchAvailable(ctx context.Context, start, end time.Time, page, pageSize int) ([]domain.Vehicle, int, error) {
	r := pricing.DateRange{Start: start, End: end}
	if err := r.Validate(); err != nil {
		return nil, 0, err
	}
	page, pageSize = normalizePage(page, pageSize)
	return s.vehicles.SearchAvailable(ctx, start, end, page, pageSize)
}

func (s *vehicleService) AddBlackout(ctx context.Context, ownerID, vehicleID string, start, end time.Time, reason string) (*domain.BlackoutPeriod, error) {
	vehicle, err := s.vehicles.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle.OwnerID != ownerID {
		return nil, domain.ErrForbidden
	}

	r := pricing.DateRange{Start: start, End: end}
	if err := r.Validate(); err != nil {
		return nil, err
	}

	blackout := &domain.BlackoutPeriod{
		ID:        uuid.New().String(),
		VehicleID: vehicleID,
		StartAt:   start,
		EndAt:     end,
		Reason:    reason,
	}
	if err := s.blackouts.Create(ctx, blackout); err != nil {
		return nil, err
	}
	s.log.Info("blackout added", "vehicle_id", vehicleID, "blackout_id", blackout.ID)
	return blackout, nil
}

func (s *vehicleService) RemoveBlackout(ctx context.Context, ownerID, vehicleID, blackoutID string) error {
	vehicle, err := s.vehicles.GetByID(ctx, vehicleID)
	if err != nil {
		return err
	}
	if vehicle.OwnerID != ownerID {
		return domain.ErrForbidden
	}
	return s.blackouts.Delete(ctx, blackoutID, vehicleID)
}

func (s *vehicleService) ListBlackouts(ctx context.Context, vehicleID string) ([]domain.BlackoutPeriod, error) {
	if _, err := s.vehicles.GetByID(ctx, vehicleID); err != nil {
		return nil, err
	}
	return s.blackouts.ListByVehicle(ctx, vehicleID)
}

// validateRates rejects listing input the pricing engine would refuse to
// work with. The engine treats these as corruption; the service treats them
// as bad user input.
func validateRates(v *domain.Vehicle) error {
	if v.DailyRateCents <= 0 {
		return fmt.Errorf("daily rate must be positive")
	}
	if v.WeeklyRateCents < 0 || v.MonthlyRateCents < 0 {
		return fmt.Errorf("tier rates must not be negative")
	}
	if v.SecurityDepositCents < 0 {
		return fmt.Errorf("security deposit must not be negative")
	}
	if v.MinRentalDays < 0 || v.MaxRentalDays < 0 {
		return fmt.Errorf("rental duration bounds must not be negative")
	}
	if v.MinRentalDays == 0 {
		v.MinRentalDays = 1
	}
	return nil
}
