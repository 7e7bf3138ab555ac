package domain

import "time"

type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "pending"
	BookingStatusConfirmed  BookingStatus = "confirmed"
	BookingStatusInProgress BookingStatus = "in_progress"
	BookingStatusCompleted  BookingStatus = "completed"
	BookingStatusCancelled  BookingStatus = "cancelled"
	BookingStatusDeclined   BookingStatus = "declined"
)

// BlocksAvailability reports whether a booking in this status occupies the
// vehicle's calendar. Pending requests do not block; the exclusion constraint
// arbitrates between competing requests at confirmation time.
func (s BookingStatus) BlocksAvailability() bool {
	return s == BookingStatusConfirmed || s == BookingStatusInProgress
}

type Booking struct {
	ID        string        `json:"id"`
	VehicleID string        `json:"vehicle_id"`
	RenterID  string        `json:"renter_id"`
	OwnerID   string        `json:"owner_id"`
	StartAt   time.Time     `json:"start_at"`
	EndAt     time.Time     `json:"end_at"`
	Status    BookingStatus `json:"status"`
	// Price snapshot fields — captured from the quote at booking creation.
	// The committed price never tracks later rate changes on the listing.
	TotalDays            int    `json:"total_days"`
	DailyRateCents       int64  `json:"daily_rate"`
	SubtotalCents        int64  `json:"subtotal"`
	InsuranceFeeCents    int64  `json:"insurance_fee"`
	ServiceFeeCents      int64  `json:"service_fee"`
	TaxCents             int64  `json:"tax_amount"`
	DiscountCents        int64  `json:"discount_amount"`
	TotalCents           int64  `json:"total_amount"`
	SecurityDepositCents int64  `json:"security_deposit"`
	InsuranceSelected    bool   `json:"insurance_selected"`
	CancelReason         string `json:"cancel_reason,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}
