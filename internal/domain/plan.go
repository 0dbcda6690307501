package domain

import "time"

// TripPlan aggregates everything computed for one trip request.
type TripPlan struct {
	StartedAt     time.Time
	Route         RouteSummary
	Stops         []Stop
	FuelStops     []Stop
	DailyLogs     []DailyLog
	LogViolations []string
	HOSStatus     HOSStatus
	WeeklyTotals  WeeklyTotals
	Feasibility   Feasibility
	RestPeriods   []RestPeriod
}
