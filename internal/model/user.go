package model

import "time"

// User is a stored credential. PasswordHash is never serialized.
type User struct {
	ID           ID        `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
