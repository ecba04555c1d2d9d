package entity

import (
	"time"
)

// Account is the aggregate root for the user domain.
// Passwords are stored as bcrypt hashes in PasswordHash; the plaintext never
// leaves the registration/login handlers.
type Account struct {
	ID           string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	MiddleName   string
	Gender       string // "male", "female" or "" when unset
	BirthDate    time.Time
	Phone        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
