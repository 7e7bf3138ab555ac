package domain

import "time"

// User mirrors the account record owned by the hosted auth provider. Only the
// contact fields needed for notifications are kept locally.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
