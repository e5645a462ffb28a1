package domain

import "errors"

var (
	ErrEventNotFound      = errors.New("event not found")
	ErrEventNameRequired  = errors.New("event name required")
	ErrEventAlreadyExists = errors.New("event already exists")
	ErrInvalidTimeRange   = errors.New("start_time must not be after end_time")
	ErrInvalidTimestamp   = errors.New("invalid timestamp")
	ErrInvalidID          = errors.New("invalid id")
	ErrSelectionRequired  = errors.New("selection required")
	ErrSelectionNotFound  = errors.New("selection not found")
)
