package ports

import (
	"context"
	"time"
)

// Summary of a completed plan, broadcast to interested consumers.
type TripPlannedEvent struct {
	RequestID       string    `json:"request_id"`
	PlannedAt       time.Time `json:"planned_at"`
	CurrentLocation string    `json:"current_location"`
	PickupLocation  string    `json:"pickup_location"`
	DropoffLocation string    `json:"dropoff_location"`
	DistanceMiles   float64   `json:"distance_miles"`
	DurationHours   float64   `json:"duration_hours"`
	RestStops       int       `json:"rest_stops"`
	FuelStops       int       `json:"fuel_stops"`
	LogDays         int       `json:"log_days"`
	Violations      []string  `json:"violations"`
}

// Port for announcing planned trips. Publishing is best effort.
type TripEventPublisher interface {
	PublishTripPlanned(ctx context.Context, ev TripPlannedEvent) error
}
