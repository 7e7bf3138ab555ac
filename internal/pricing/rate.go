package pricing

import "fmt"

// RateSchedule is the owner-configured pricing of a listing, immutable for
// the duration of a single quote computation. Zero weekly/monthly rates mean
// the tier is not offered; MaxRentalDays of zero means no upper bound.
type RateSchedule struct {
	DailyRateCents       int64
	WeeklyRateCents      int64
	MonthlyRateCents     int64
	SecurityDepositCents int64
	MinRentalDays        int
	MaxRentalDays        int
}

// RateQuote is the tier-resolved base price of a rental. DailyRateCents is
// always the nominal list rate for display, independent of the tier billed.
type RateQuote struct {
	DailyRateCents int64
	SubtotalCents  int64
	Days           int
}

const (
	daysPerWeek  = 7
	daysPerMonth = 30

	// Monthly billing kicks in before a full 30-day block so a "one month"
	// rental (28–31 days) prices against the monthly tier.
	monthlyTierMinDays = 28
)

// ResolveRate selects the applicable pricing tier for the range and computes
// the base subtotal. Monthly and weekly tiers bill whole blocks with the
// remainder at the daily rate.
func ResolveRate(s RateSchedule, r DateRange) (RateQuote, error) {
	assertValidSchedule(s)

	if err := r.Validate(); err != nil {
		return RateQuote{}, err
	}

	days := r.Days()
	if days < s.MinRentalDays {
		return RateQuote{}, &DurationTooShortError{MinDays: s.MinRentalDays, ActualDays: days}
	}
	if s.MaxRentalDays > 0 && days > s.MaxRentalDays {
		return RateQuote{}, &DurationTooLongError{MaxDays: s.MaxRentalDays, ActualDays: days}
	}

	var subtotal int64
	switch {
	case s.MonthlyRateCents > 0 && days >= monthlyTierMinDays:
		subtotal = s.MonthlyRateCents*int64(days/daysPerMonth) + s.DailyRateCents*int64(days%daysPerMonth)
	case s.WeeklyRateCents > 0 && days >= daysPerWeek:
		subtotal = s.WeeklyRateCents*int64(days/daysPerWeek) + s.DailyRateCents*int64(days%daysPerWeek)
	default:
		subtotal = s.DailyRateCents * int64(days)
	}

	return RateQuote{DailyRateCents: s.DailyRateCents, SubtotalCents: subtotal, Days: days}, nil
}

// assertValidSchedule fails fast on corrupted listing data. These are
// programming errors upstream of the engine, not user input errors.
func assertValidSchedule(s RateSchedule) {
	if s.DailyRateCents <= 0 {
		panic(fmt.Sprintf("pricing: rate schedule has non-positive daily rate %d", s.DailyRateCents))
	}
	if s.WeeklyRateCents < 0 || s.MonthlyRateCents < 0 {
		panic("pricing: rate schedule has negative tier rate")
	}
	if s.SecurityDepositCents < 0 {
		panic(fmt.Sprintf("pricing: rate schedule has negative security deposit %d", s.SecurityDepositCents))
	}
	if s.MinRentalDays < 0 || s.MaxRentalDays < 0 {
		panic("pricing: rate schedule has negative rental duration bound")
	}
}
