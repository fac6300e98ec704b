package catalog

import "errors"

var (
	ErrPropertyNotFound    = errors.New("property not found")
	ErrPropertyHasBookings = errors.New("property has bookings")
	ErrEmptyPatch          = errors.New("no fields to update")
	ErrInvalidQuery        = errors.New("invalid listing query")
)
