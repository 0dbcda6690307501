package services

import (
	"fmt"
	"math"
	"time"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/clock"
)

// HOSChecker evaluates a trip against Hours-of-Service limits.
// It works from the route and stop list directly, not from generated logs,
// so its duty estimate can differ from the log totals for the same trip.
type HOSChecker struct {
	rules domain.Rules
	clock clock.Clock
}

func NewHOSChecker(rules domain.Rules, clk clock.Clock) *HOSChecker {
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &HOSChecker{rules: rules, clock: clk}
}

// Evaluate returns the HOS snapshot for a trip. stops is the planner's
// pickup/rest/dropoff list; on-duty stop time is added to the duty estimate.
func (c *HOSChecker) Evaluate(
	trip domain.TripParameters,
	route domain.RouteSummary,
	stops []domain.Stop,
) domain.HOSStatus {
	r := c.rules

	requiredDrive := route.DurationHours
	requiredDuty := route.DurationHours
	for _, s := range stops {
		if s.DutyStatus() == domain.StatusOnDuty {
			requiredDuty += s.DurationHours
		}
	}

	driveToday := math.Min(requiredDrive, r.DailyDriveLimitHours)
	dutyToday := math.Min(requiredDuty, r.DailyDutyLimitHours)

	violations := []string{}

	if trip.CycleUsedHours+dutyToday > r.CycleLimitHours {
		violations = append(violations, "Weekly cycle limit exceeded")
	}

	if requiredDrive > r.DailyDriveLimitHours {
		violations = append(violations, fmt.Sprintf(
			"Trip requires %.1f hours of driving, exceeding daily limit of %g hours",
			requiredDrive, r.DailyDriveLimitHours,
		))
	}

	if requiredDuty > r.DailyDutyLimitHours {
		violations = append(violations, fmt.Sprintf(
			"Trip requires %.1f hours of duty, exceeding daily limit of %g hours",
			requiredDuty, r.DailyDutyLimitHours,
		))
	}

	if route.DurationHours > r.DailyDriveLimitHours {
		violations = append(violations, "Trip requires multi-day planning with mandatory rest periods")
	}

	return domain.HOSStatus{
		CycleUsedHours:      trip.CycleUsedHours,
		RemainingHours:      r.CycleLimitHours - trip.CycleUsedHours,
		DriveTimeTodayHours: driveToday,
		DutyTimeTodayHours:  dutyToday,
		NextReset:           c.clock.Now().AddDate(0, 0, r.CycleDays),
		Violations:          violations,
	}
}

// AvailableDriveTime reports how much driving the cycle still allows today.
func (c *HOSChecker) AvailableDriveTime(trip domain.TripParameters) domain.DriveTimeBudget {
	remaining := c.rules.CycleLimitHours - trip.CycleUsedHours

	return domain.DriveTimeBudget{
		DailyLimitHours:     c.rules.DailyDriveLimitHours,
		WeeklyRemaining:     remaining,
		EffectiveLimitHours: math.Min(c.rules.DailyDriveLimitHours, remaining),
		DutyLimitHours:      c.rules.DailyDutyLimitHours,
	}
}

// Feasibility checks whether the trip fits in today's available drive time.
func (c *HOSChecker) Feasibility(trip domain.TripParameters, durationHours float64) domain.Feasibility {
	available := c.AvailableDriveTime(trip).EffectiveLimitHours

	f := domain.Feasibility{
		Feasible:           durationHours <= available,
		RequiredDriveHours: durationHours,
		AvailableHours:     available,
		RequiresRest:       durationHours > c.rules.DailyDriveLimitHours,
	}
	if f.Feasible {
		return f
	}

	if f.RequiresRest {
		f.Reason = domain.ReasonMultiDay
		f.Recommendation = "Plan mandatory rest periods"
	} else {
		f.Reason = domain.ReasonInsufficientCycle
		f.Recommendation = "Wait for cycle reset or reduce trip scope"
	}
	return f
}

// WeeklyTotals sums drive and duty time across the trip's logs.
func (c *HOSChecker) WeeklyTotals(logs []domain.DailyLog) domain.WeeklyTotals {
	var t domain.WeeklyTotals
	for _, l := range logs {
		t.TotalDriveHours += l.TotalDriveHours
		t.TotalDutyHours += l.TotalDutyHours
		if l.TotalDriveHours > 0 {
			t.DaysWithDriving++
		}
	}
	return t
}

// RequiredRestPeriods splits the driving into full days followed by a
// mandatory rest, and a final partial day. Single-day trips need none.
func (c *HOSChecker) RequiredRestPeriods(durationHours float64) []domain.RestPeriod {
	r := c.rules
	periods := []domain.RestPeriod{}
	if durationHours <= r.DailyDriveLimitHours {
		return periods
	}

	remaining := durationHours
	for day := 1; remaining > 0; day++ {
		if remaining > r.DailyDriveLimitHours {
			periods = append(periods, domain.RestPeriod{
				Day:               day,
				DriveHours:        r.DailyDriveLimitHours,
				RestRequiredHours: r.MandatoryRestHours,
				RestStart:         fmt.Sprintf("After %s of driving", domain.FormatDuration(r.DailyDriveLimitHours)),
			})
			remaining -= r.DailyDriveLimitHours
			continue
		}

		periods = append(periods, domain.RestPeriod{
			Day:        day,
			DriveHours: remaining,
			RestStart:  "Trip complete",
		})
		remaining = 0
	}
	return periods
}

// CycleResetEligibility reports whether enough calendar days have passed since
// the last restart for the cycle to reset.
func (c *HOSChecker) CycleResetEligibility(cycleUsedHours float64, lastReset time.Time) domain.CycleReset {
	now := c.clock.Now()
	days := calendarDaysBetween(lastReset.In(now.Location()), now)

	return domain.CycleReset{
		Eligible:          days >= c.rules.CycleDays,
		DaysSinceReset:    days,
		DaysUntilEligible: max(0, c.rules.CycleDays-days),
		CycleUsedHours:    cycleUsedHours,
		HoursUntilLimit:   c.rules.CycleLimitHours - cycleUsedHours,
	}
}

func calendarDaysBetween(from, to time.Time) int {
	fy, fm, fd := from.Date()
	ty, tm, td := to.Date()
	a := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	b := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}
