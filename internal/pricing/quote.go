// Package pricing is the availability and pricing engine for vehicle
// rentals. Every function is pure: the caller supplies the booking and
// blackout snapshot along with the rate configuration, and gets back either
// a complete quote or exactly one typed error. The engine performs no I/O,
// holds no state, and is safe to embed in any runtime.
package pricing

import "github.com/joshbaje/drively-backend/internal/domain"

// Quote validates the range, checks availability against the snapshot, and
// prices the rental in a single pass. No partial result is ever returned:
// an unavailable range is rejected before any pricing is computed.
//
// The verdict is advisory with respect to concurrent writers — see
// CheckAvailability. Final booking commit must re-validate through the
// persistence layer's exclusion constraint.
func Quote(
	vehicleID string,
	r DateRange,
	bookings []domain.Booking,
	blackouts []domain.BlackoutPeriod,
	schedule RateSchedule,
	policy FeePolicy,
	insuranceSelected bool,
	discountCents int64,
) (*PriceQuote, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	availability := CheckAvailability(vehicleID, r, bookings, blackouts)
	if !availability.Available {
		return nil, &UnavailableError{Conflicts: availability.Conflicts}
	}

	base, err := ResolveRate(schedule, r)
	if err != nil {
		return nil, err
	}

	quote := PriceBreakdown(base, schedule.SecurityDepositCents, policy, insuranceSelected, discountCents)
	return &quote, nil
}
