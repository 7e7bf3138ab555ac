package domain

import "time"

// Vehicle is a marketplace listing together with its owner-configured rate
// schedule. Weekly and monthly rates are optional; zero means the tier is not
// offered. MaxRentalDays of zero means no upper bound.
type Vehicle struct {
	ID      string `json:"id"`
	OwnerID string `json:"owner_id"`
	Make    string `json:"make"`
	Model   string `json:"model"`
	Year    int    `json:"year"`
	Plate   string `json:"plate,omitempty"`
	Listed  bool   `json:"listed"`

	DailyRateCents       int64 `json:"daily_rate"`
	WeeklyRateCents      int64 `json:"weekly_rate,omitempty"`
	MonthlyRateCents     int64 `json:"monthly_rate,omitempty"`
	SecurityDepositCents int64 `json:"security_deposit"`
	MinRentalDays        int   `json:"min_rental_days"`
	MaxRentalDays        int   `json:"max_rental_days,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
