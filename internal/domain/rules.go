package domain

import "errors"

// Rules holds the regulatory and operational constants the planner works with.
// A Rules value is passed to each component at construction and never mutated.
type Rules struct {
	DailyDriveLimitHours  float64 `yaml:"daily_drive_limit_hours"`
	DailyDutyLimitHours   float64 `yaml:"daily_duty_limit_hours"`
	CycleLimitHours       float64 `yaml:"cycle_limit_hours"`
	CycleDays             int     `yaml:"cycle_days"`
	MandatoryRestHours    float64 `yaml:"mandatory_rest_hours"`
	BreakAfterHours       float64 `yaml:"break_after_hours"`
	BreakDurationHours    float64 `yaml:"break_duration_hours"`
	AverageSpeedMPH       float64 `yaml:"average_speed_mph"`
	FuelStopIntervalMiles float64 `yaml:"fuel_stop_interval_miles"`
	PickupDurationHours   float64 `yaml:"pickup_duration_hours"`
	DropoffDurationHours  float64 `yaml:"dropoff_duration_hours"`
	FuelStopDurationHours float64 `yaml:"fuel_stop_duration_hours"`
}

// DefaultRules returns the US property-carrying 70-hour/8-day rule set.
func DefaultRules() Rules {
	return Rules{
		DailyDriveLimitHours:  11,
		DailyDutyLimitHours:   14,
		CycleLimitHours:       70,
		CycleDays:             8,
		MandatoryRestHours:    10,
		BreakAfterHours:       8,
		BreakDurationHours:    0.5,
		AverageSpeedMPH:       55,
		FuelStopIntervalMiles: 1000,
		PickupDurationHours:   1,
		DropoffDurationHours:  1,
		FuelStopDurationHours: 0.5,
	}
}

// MaxDriveDistanceMiles is the distance covered in one full day of driving.
func (r Rules) MaxDriveDistanceMiles() float64 {
	return r.AverageSpeedMPH * r.DailyDriveLimitHours
}

func (r Rules) Validate() error {
	switch {
	case r.DailyDriveLimitHours <= 0:
		return errors.New("rules: daily_drive_limit_hours must be positive")
	case r.DailyDutyLimitHours < r.DailyDriveLimitHours:
		return errors.New("rules: daily_duty_limit_hours must be at least daily_drive_limit_hours")
	case r.CycleLimitHours <= 0:
		return errors.New("rules: cycle_limit_hours must be positive")
	case r.CycleDays <= 0:
		return errors.New("rules: cycle_days must be positive")
	case r.MandatoryRestHours < 0:
		return errors.New("rules: mandatory_rest_hours must not be negative")
	case r.AverageSpeedMPH <= 0:
		return errors.New("rules: average_speed_mph must be positive")
	case r.FuelStopIntervalMiles <= 0:
		return errors.New("rules: fuel_stop_interval_miles must be positive")
	case r.PickupDurationHours < 0 || r.DropoffDurationHours < 0 || r.FuelStopDurationHours < 0:
		return errors.New("rules: stop durations must not be negative")
	}
	return nil
}
