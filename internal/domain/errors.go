package domain

import (
	"errors"
	"fmt"
)

var (
	ErrVehicleNotFound     = errors.New("vehicle not found")
	ErrEquipmentNotFound   = errors.New("equipment not found")
	ErrActivityNotFound    = errors.New("activity not found")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrChecklistNotFound   = errors.New("checklist not found")
	ErrUserNotFound        = errors.New("user not found")
)

var (
	ErrVehicleUnavailable    = errors.New("vehicle is not available for rental")
	ErrInsufficientStock     = errors.New("not enough equipment in stock")
	ErrChecklistIncomplete   = errors.New("checklist is not complete")
	ErrInvalidTransition     = errors.New("reservation status does not allow this transition")
	ErrVersionConflict       = errors.New("checklist was modified by someone else, reload and retry")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrEmailTaken            = errors.New("email is already registered")
	ErrInvalidCredentials    = errors.New("invalid email or password")
)

// ValidationError reports a rejected input. These are deterministic and
// never retried; callers surface them to the user as-is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
