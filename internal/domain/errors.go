package domain

import "errors"

var (
	ErrNotFound = errors.New("not found")

	// ErrBookingConflict is returned when the bookings exclusion constraint
	// rejects a write: another blocking booking overlaps the same vehicle
	// window. This is the authoritative double-booking guard; the pricing
	// engine's availability verdict is advisory only.
	ErrBookingConflict = errors.New("booking dates conflict with an existing booking")

	ErrForbidden = errors.New("forbidden")
)
