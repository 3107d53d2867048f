package domain

import "errors"

var (
	// ErrAlreadyClockedIn is returned when the user already has an open time entry.
	ErrAlreadyClockedIn = errors.New("already clocked in")
	// ErrInvalidTransition is returned when the entry is not in the state the action requires.
	ErrInvalidTransition = errors.New("invalid time entry transition")
	// ErrNonMonotonicTime is returned when clock-out is not strictly after clock-in.
	ErrNonMonotonicTime = errors.New("clock-out must be after clock-in")
	// ErrPersistenceUnavailable wraps failures to reach the record store.
	ErrPersistenceUnavailable = errors.New("persistence unavailable")
	ErrNotFound               = errors.New("not found")
	ErrEmailTaken             = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidResetCode       = errors.New("verification code expired or invalid")
	ErrAccountInactive        = errors.New("account inactive")
	// ErrInvalidReference is returned when a write points at a row that does not exist.
	ErrInvalidReference = errors.New("referenced record does not exist")
)
