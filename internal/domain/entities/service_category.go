package entities

import "time"

// ServiceCategory is one canonical label in the flat service-line taxonomy
// used to populate classification dropdowns. There is no referential
// integrity with records that already reference a removed label.
type ServiceCategory struct {
	ID        string    `json:"id" db:"id"`
	Category  string    `json:"category" db:"category"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// RateComment is contextual annotation text for a state/category pair shown
// alongside the comparison tables.
type RateComment struct {
	ID              string `json:"id" db:"id"`
	State           string `json:"state" db:"state"`
	ServiceCategory string `json:"service_category" db:"service_category"`
	Comment         string `json:"comment" db:"comment"`
}
