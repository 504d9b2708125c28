// Package usecase implements the business logic for the auth feature.
package usecase

import (
	"errors"

	"job_backend/internal/shared/apperr"
)

// ErrUserNotFound is returned by UserRepository implementations when no user
// matches. It never reaches the client; callers translate it.
var ErrUserNotFound = errors.New("user not found")

var (
	// ErrEmailAlreadyExists is returned when registering an email that is already taken.
	ErrEmailAlreadyExists = apperr.New(apperr.KindConflict, "User already exists")

	// ErrInvalidCredentials is returned by Login for an unknown email or a wrong password.
	ErrInvalidCredentials = apperr.New(apperr.KindUnauthenticated, "Invalid credentials")

	// ErrInvalidToken is returned for bad, expired or revoked tokens and for tokens
	// whose subject no longer exists.
	ErrInvalidToken = apperr.New(apperr.KindUnauthenticated, "Invalid or expired token")

	// ErrStoreUnavailable wraps any failure of the credential store.
	ErrStoreUnavailable = apperr.New(apperr.KindUnavailable, "Database unavailable")

	// ErrEmailRequired and ErrPasswordRequired reject empty credentials.
	ErrEmailRequired    = apperr.New(apperr.KindValidation, "email is required")
	ErrPasswordRequired = apperr.New(apperr.KindValidation, "password is required")
)

func storeUnavailable(err error) error {
	return apperr.Wrap(apperr.KindUnavailable, ErrStoreUnavailable.Message, err)
}
