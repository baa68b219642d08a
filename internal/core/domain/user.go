package domain

import "time"

// MinPasswordLength is the minimum accepted password length at registration
// and on password change.
const MinPasswordLength = 5

// User models a registered account. Every Recipe, Tag and Ingredient row
// belongs to exactly one User for its entire lifetime.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
