// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents a registered author or commenter.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey"`

	// Name is the display name shown on articles and copied onto comments.
	Name string `gorm:"size:100;not null"`

	// Email is used to sign in. It must be unique across all users.
	Email string `gorm:"uniqueIndex;size:100;not null"`

	// PasswordHash is the bcrypt hash of the password. The plaintext is never stored.
	PasswordHash string `gorm:"column:hashed_password;size:255;not null" json:"-"`

	// CreatedAt is set by the storage layer on insert, in UTC.
	CreatedAt time.Time
}
