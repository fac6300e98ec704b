package booking

import "errors"

var (
	ErrValidation       = errors.New("validation error")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrPropertyNotFound = errors.New("property not found")
)
