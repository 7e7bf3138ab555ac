package pricing

import "time"

// DateRange is a half-open interval [Start, End). Two ranges that merely
// touch at an endpoint do not overlap, so back-to-back bookings are legal.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Validate fails with *InvalidRangeError when the range is empty or inverted.
func (r DateRange) Validate() error {
	if !r.Start.Before(r.End) {
		return &InvalidRangeError{Start: r.Start, End: r.End}
	}
	return nil
}

// Overlaps reports whether two half-open ranges share any instant.
func (r DateRange) Overlaps(o DateRange) bool {
	return r.Start.Before(o.End) && o.Start.Before(r.End)
}

// Days returns the billable duration in whole days, rounding partial days up:
// a renter keeping a car 25 hours is charged for 2 days.
func (r DateRange) Days() int {
	d := r.End.Sub(r.Start)
	days := int(d / (24 * time.Hour))
	if d%(24*time.Hour) > 0 {
		days++
	}
	return days
}
