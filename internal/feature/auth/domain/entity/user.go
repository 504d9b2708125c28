// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents a registered user in the system.
type User struct {
	// ID is assigned by the store: an ObjectID hex string for MongoDB,
	// the decimal primary key for SQL backends.
	ID string

	// Email identifies the user and is the subject of issued tokens.
	// It is unique across all users and compared case-sensitively.
	Email string

	// PasswordHash is the opaque digest produced by the password hasher.
	// The raw password is never stored.
	PasswordHash string

	// CreatedAt is the timestamp when the user was registered.
	CreatedAt time.Time
}
