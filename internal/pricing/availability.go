package pricing

import "github.com/joshbaje/drively-backend/internal/domain"

type ConflictType string

const (
	ConflictTypeBooking  ConflictType = "booking"
	ConflictTypeBlackout ConflictType = "blackout"
)

// Conflict identifies one interval that collides with a requested range.
type Conflict struct {
	Type  ConflictType `json:"type"`
	ID    string       `json:"id"`
	Range DateRange    `json:"range"`
}

// AvailabilityResult is computed fresh from a snapshot on every request and
// must not be cached: bookings change concurrently.
type AvailabilityResult struct {
	Available bool       `json:"available"`
	Conflicts []Conflict `json:"conflicts,omitempty"`
}

// CheckAvailability tests a requested range against the vehicle's existing
// bookings and blackout periods. Only confirmed and in-progress bookings
// block; blackouts always block. All conflicts are collected, not just the
// first, so a rejection can be explained to the renter.
//
// The check is a pure predicate over the supplied snapshot. Two renters can
// both pass it for overlapping ranges before either booking is persisted;
// the database exclusion constraint is the authoritative guard.
func CheckAvailability(vehicleID string, r DateRange, bookings []domain.Booking, blackouts []domain.BlackoutPeriod) AvailabilityResult {
	var conflicts []Conflict

	for _, b := range bookings {
		if b.VehicleID != vehicleID || !b.Status.BlocksAvailability() {
			continue
		}
		br := DateRange{Start: b.StartAt, End: b.EndAt}
		if r.Overlaps(br) {
			conflicts = append(conflicts, Conflict{Type: ConflictTypeBooking, ID: b.ID, Range: br})
		}
	}

	for _, bl := range blackouts {
		if bl.VehicleID != vehicleID {
			continue
		}
		blr := DateRange{Start: bl.StartAt, End: bl.EndAt}
		if r.Overlaps(blr) {
			conflicts = append(conflicts, Conflict{Type: ConflictTypeBlackout, ID: bl.ID, Range: blr})
		}
	}

	return AvailabilityResult{Available: len(conflicts) == 0, Conflicts: conflicts}
}
