package entity

import "time"

// Expo is an exhibition record. ExpoID is the human-chosen slug (business
// key) clients address records by; ID is the storage-assigned identifier.
type Expo struct {
	ID          string
	ExpoID      string
	Title       string
	Description string
	Author      string
	PhotoURL    string
	Date        time.Time
	CreatedBy   string // account id of the creator, may be empty for seeded rows
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
