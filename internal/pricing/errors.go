package pricing

import (
	"fmt"
	"time"
)

// InvalidRangeError reports a date range whose start is not strictly before
// its end. Not recoverable by retry; the caller must fix the input.
type InvalidRangeError struct {
	Start time.Time
	End   time.Time
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid date range: start %s is not before end %s",
		e.Start.Format(time.RFC3339), e.End.Format(time.RFC3339))
}

// UnavailableError reports that the requested range collides with existing
// blocking bookings or blackout periods. Conflicts carries the complete set
// so callers can suggest alternate dates.
type UnavailableError struct {
	Conflicts []Conflict
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("selected dates unavailable: %d conflict(s)", len(e.Conflicts))
}

// DurationTooShortError reports a rental shorter than the listing's minimum.
type DurationTooShortError struct {
	MinDays    int
	ActualDays int
}

func (e *DurationTooShortError) Error() string {
	return fmt.Sprintf("rental of %d day(s) is below the %d-day minimum", e.ActualDays, e.MinDays)
}

// DurationTooLongError reports a rental longer than the listing's maximum.
type DurationTooLongError struct {
	MaxDays    int
	ActualDays int
}

func (e *DurationTooLongError) Error() string {
	return fmt.Sprintf("rental of %d day(s) exceeds the %d-day maximum", e.ActualDays, e.MaxDays)
}
