package domain

import "time"

type StopKind string

const (
	StopPickup  StopKind = "pickup"
	StopRest    StopKind = "rest"
	StopFuel    StopKind = "fuel"
	StopDropoff StopKind = "dropoff"
)

// Represents a mandatory stop along the trip.
// ScheduledAt is advisory; the duty log timeline is authoritative.
type Stop struct {
	Kind          StopKind
	Position      Coordinates
	Label         string
	ScheduledAt   time.Time
	DurationHours float64
	Description   string
}

// DutyStatus classifies the stop's own activity for the duty log.
func (s Stop) DutyStatus() DutyStatus {
	switch s.Kind {
	case StopPickup, StopDropoff, StopFuel:
		return StatusOnDuty
	case StopRest:
		return StatusSleeperBerth
	default:
		return StatusOffDuty
	}
}
