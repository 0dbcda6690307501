package domain

import "time"

// Hours-of-Service snapshot for a planned trip.
// Violations are advisory: an empty list means the plan is compliant.
type HOSStatus struct {
	CycleUsedHours      float64
	RemainingHours      float64
	DriveTimeTodayHours float64
	DutyTimeTodayHours  float64
	NextReset           time.Time
	Violations          []string
}

// Compliant reports whether no violation was found.
func (s HOSStatus) Compliant() bool { return len(s.Violations) == 0 }

// Driving time a driver can still use today, given the cycle hours already spent.
type DriveTimeBudget struct {
	DailyLimitHours     float64
	WeeklyRemaining     float64
	EffectiveLimitHours float64
	DutyLimitHours      float64
}

type FeasibilityReason string

const (
	ReasonMultiDay          FeasibilityReason = "multi-day planning needed"
	ReasonInsufficientCycle FeasibilityReason = "insufficient cycle hours"
)

// Result of a feasibility pre-check. Reason and Recommendation are empty when feasible.
type Feasibility struct {
	Feasible           bool
	RequiredDriveHours float64
	AvailableHours     float64
	RequiresRest       bool
	Reason             FeasibilityReason
	Recommendation     string
}

// Drive and duty totals summed across a trip's daily logs.
type WeeklyTotals struct {
	TotalDriveHours float64
	TotalDutyHours  float64
	DaysWithDriving int
}

// Planned driving allotment for one day of a multi-day trip.
type RestPeriod struct {
	Day               int
	DriveHours        float64
	RestRequiredHours float64
	RestStart         string
}

// Whether the driver may take a cycle restart yet.
type CycleReset struct {
	Eligible          bool
	DaysSinceReset    int
	DaysUntilEligible int
	CycleUsedHours    float64
	HoursUntilLimit   float64
}
