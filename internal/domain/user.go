package domain

import "time"

// User is a registered account. Name is the principal asserted by issued tokens.
// PasswordHash is never serialized, so cached copies carry no hash.
type User struct {
	ID           int64
	Version      int
	Name         string
	Email        string
	PasswordHash string `json:"-"`
	Phone        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
