package pricing

import (
	"testing"

	"github.com/joshbaje/drively-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

const testVehicleID = "veh-1"

func booking(id string, startDay, endDay int, status domain.BookingStatus) domain.Booking {
	return domain.Booking{
		ID:        id,
		VehicleID: testVehicleID,
		StartAt:   day(startDay),
		EndAt:     day(endDay),
		Status:    status,
	}
}

func TestCheckAvailability(t *testing.T) {
	t.Run("No bookings or blackouts", func(t *testing.T) {
		res := CheckAvailability(testVehicleID, rng(1, 5), nil, nil)
		assert.True(t, res.Available)
		assert.Empty(t, res.Conflicts)
	})

	t.Run("Collects all conflicts", func(t *testing.T) {
		bookings := []domain.Booking{
			booking("b1", 1, 5, domain.BookingStatusConfirmed),
			booking("b2", 10, 15, domain.BookingStatusInProgress),
		}
		res := CheckAvailability(testVehicleID, rng(3, 12), bookings, nil)
		assert.False(t, res.Available)
		assert.Len(t, res.Conflicts, 2)
		assert.Equal(t, ConflictTypeBooking, res.Conflicts[0].Type)
		assert.Equal(t, "b1", res.Conflicts[0].ID)
		assert.Equal(t, "b2", res.Conflicts[1].ID)
	})

	t.Run("Inert statuses do not block", func(t *testing.T) {
		bookings := []domain.Booking{
			booking("b1", 1, 10, domain.BookingStatusPending),
			booking("b2", 1, 10, domain.BookingStatusCompleted),
			booking("b3", 1, 10, domain.BookingStatusCancelled),
			booking("b4", 1, 10, domain.BookingStatusDeclined),
		}
		res := CheckAvailability(testVehicleID, rng(2, 8), bookings, nil)
		assert.True(t, res.Available)
	})

	t.Run("Other vehicles are ignored", func(t *testing.T) {
		other := booking("b1", 1, 10, domain.BookingStatusConfirmed)
		other.VehicleID = "veh-2"
		res := CheckAvailability(testVehicleID, rng(2, 8), []domain.Booking{other}, nil)
		assert.True(t, res.Available)
	})

	t.Run("Containment both ways conflicts", func(t *testing.T) {
		inner := booking("b1", 4, 6, domain.BookingStatusConfirmed)
		res := CheckAvailability(testVehicleID, rng(1, 10), []domain.Booking{inner}, nil)
		assert.False(t, res.Available)

		outer := booking("b2", 1, 10, domain.BookingStatusConfirmed)
		res = CheckAvailability(testVehicleID, rng(4, 6), []domain.Booking{outer}, nil)
		assert.False(t, res.Available)
	})

	t.Run("Adjacent booking does not conflict", func(t *testing.T) {
		b := booking("b1", 1, 5, domain.BookingStatusConfirmed)
		res := CheckAvailability(testVehicleID, rng(5, 9), []domain.Booking{b}, nil)
		assert.True(t, res.Available)
	})

	t.Run("Blackout always blocks", func(t *testing.T) {
		blackouts := []domain.BlackoutPeriod{
			{ID: "bl1", VehicleID: testVehicleID, StartAt: day(3), EndAt: day(7), Reason: "maintenance"},
		}
		res := CheckAvailability(testVehicleID, rng(5, 10), nil, blackouts)
		assert.False(t, res.Available)
		assert.Len(t, res.Conflicts, 1)
		assert.Equal(t, ConflictTypeBlackout, res.Conflicts[0].Type)
		assert.Equal(t, "bl1", res.Conflicts[0].ID)
	})

	t.Run("Blackout for another vehicle is ignored", func(t *testing.T) {
		blackouts := []domain.BlackoutPeriod{
			{ID: "bl1", VehicleID: "veh-2", StartAt: day(3), EndAt: day(7)},
		}
		res := CheckAvailability(testVehicleID, rng(5, 10), nil, blackouts)
		assert.True(t, res.Available)
	})

	t.Run("Booking and blackout conflicts combine", func(t *testing.T) {
		bookings := []domain.Booking{booking("b1", 1, 4, domain.BookingStatusConfirmed)}
		blackouts := []domain.BlackoutPeriod{
			{ID: "bl1", VehicleID: testVehicleID, StartAt: day(8), EndAt: day(12)},
		}
		res := CheckAvailability(testVehicleID, rng(2, 10), bookings, blackouts)
		assert.False(t, res.Available)
		assert.Len(t, res.Conflicts, 2)
	})
}
