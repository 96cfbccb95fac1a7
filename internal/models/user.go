package models

import (
	"github.com/google/uuid"
)

// User is a registered account: identity plus credential.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	FirstName    string    `json:"first_name" db:"first_name"`
	LastName     string    `json:"last_name" db:"last_name"`
	Email        string    `json:"user_email" db:"user_email"`
	PasswordHash string    `json:"-" db:"user_password_hash"` // Never serialize in JSON
}

// Identity is the resolved caller of an authenticated request.
type Identity struct {
	Email     string `json:"user_email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}
