package domain

import "time"

// BlackoutPeriod is owner-declared unavailability (maintenance, manual hold).
// It blocks bookings regardless of any booking status.
type BlackoutPeriod struct {
	ID        string    `json:"id"`
	VehicleID string    `json:"vehicle_id"`
	StartAt   time.Time `json:"start_at"`
	EndAt     time.Time `json:"end_at"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}
