package domain

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("not found")

var (
	ErrCarNotFound     = fmt.Errorf("car %w", ErrNotFound)
	ErrBookingNotFound = fmt.Errorf("booking %w", ErrNotFound)
	ErrUserNotFound    = fmt.Errorf("user %w", ErrNotFound)
)

var ErrUnauthorized = errors.New("unauthorized")
var ErrInvalidState = errors.New("invalid booking state")
var ErrDuplicateEmail = errors.New("email already registered")
var ErrInvalidCredentials = errors.New("invalid email or password")
var ErrAccountDeactivated = errors.New("account is deactivated, please contact support")
var ErrCarUnavailable = errors.New("car is not available")
var ErrInvalidDateRange = errors.New("return date must be after pickup date")
var ErrNotAuthenticated = errors.New("user not authenticated")

// ErrValidation marks form-level failures that are rejected before any
// repository is touched.
var ErrValidation = errors.New("validation failed")
