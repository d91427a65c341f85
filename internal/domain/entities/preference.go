package entities

import "time"

// EmailPreference is a user's chosen subset of states and service categories
// for alerting. One row per user email, created lazily on first visit and
// replaced wholesale on save.
type EmailPreference struct {
	ID         string    `json:"id" db:"id"`
	Email      string    `json:"email" db:"email"`
	States     []string  `json:"states" db:"-"`
	Categories []string  `json:"categories" db:"-"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}
