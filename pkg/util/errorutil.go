package util

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/spec-kit/shift-tracker/internal/domain"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError("VALIDATION_FAILED", message, http.StatusBadRequest, details)
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

func NewUnauthorized(message string) error {
	return NewDomainError("UNAUTHORIZED", message, http.StatusUnauthorized, nil)
}

func NewForbidden(message string, details map[string]any) error {
	return NewDomainError("FORBIDDEN", message, http.StatusForbidden, details)
}

func NewConflict(message string, details map[string]any) error {
	return NewDomainError("CONFLICT", message, http.StatusConflict, details)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

type sentinelMapping struct {
	target  error
	code    string
	message string
	status  int
}

var sentinels = []sentinelMapping{
	{domain.ErrAlreadyClockedIn, "ALREADY_CLOCKED_IN", "an open time entry already exists", http.StatusConflict},
	{domain.ErrInvalidTransition, "INVALID_TRANSITION", "time entry is not in a state that allows this action", http.StatusConflict},
	{domain.ErrNonMonotonicTime, "NON_MONOTONIC_TIME", "clock-out must be after clock-in", http.StatusUnprocessableEntity},
	{domain.ErrPersistenceUnavailable, "PERSISTENCE_UNAVAILABLE", "record store unavailable", http.StatusServiceUnavailable},
	{domain.ErrNotFound, "NOT_FOUND", "resource not found", http.StatusNotFound},
	{domain.ErrEmailTaken, "CONFLICT", "email already registered", http.StatusConflict},
	{domain.ErrInvalidCredentials, "UNAUTHORIZED", "invalid credentials", http.StatusUnauthorized},
	{domain.ErrAccountInactive, "FORBIDDEN", "account inactive", http.StatusForbidden},
	{domain.ErrInvalidResetCode, "VALIDATION_FAILED", "verification code expired or invalid", http.StatusBadRequest},
	{domain.ErrInvalidReference, "VALIDATION_FAILED", "referenced record does not exist", http.StatusBadRequest},
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	for _, m := range sentinels {
		if errors.Is(err, m.target) {
			return &DomainError{Code: m.code, Message: m.message, HTTPStatus: m.status, Err: err}
		}
	}
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// MapError converts generic errors to DomainError.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	return ToDomainError(err)
}
