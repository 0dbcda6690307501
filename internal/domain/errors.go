package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrRouteComputation is returned when the routing provider fails or returns no route.
	ErrRouteComputation = errors.New("route computation failed")

	// ErrPlanningFailed covers internal faults while planning stops.
	ErrPlanningFailed = errors.New("trip planning failed")

	// ErrLogGenerationFailed is returned when duty logs cannot be built; no partial logs accompany it.
	ErrLogGenerationFailed = errors.New("log generation failed")
)

// ValidationError reports malformed trip input. Its message is safe to show to callers.
type ValidationError struct {
	Field   string
	Message string
}

func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// LocationError is returned when an address cannot be resolved to coordinates.
type LocationError struct {
	Address string
	Err     error
}

func (e *LocationError) Error() string {
	return fmt.Sprintf("could not resolve location: %s", e.Address)
}

func (e *LocationError) Unwrap() error { return e.Err }
