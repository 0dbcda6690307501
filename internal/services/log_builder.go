package services

import (
	"errors"
	"fmt"
	"math"
	"time"
	"trip-planner-service/internal/domain"
)

// Upper bound for a single activity; anything longer is treated as corrupt input.
const maxActivityHours = 24 * 366

// DutyLogBuilder turns a sequenced stop list into calendar-day duty logs.
type DutyLogBuilder struct {
	rules  domain.Rules
	policy LegDurationPolicy
}

// NewDutyLogBuilder uses DefaultLegPolicy when policy is nil.
func NewDutyLogBuilder(rules domain.Rules, policy LegDurationPolicy) *DutyLogBuilder {
	if policy == nil {
		policy = DefaultLegPolicy()
	}
	return &DutyLogBuilder{rules: rules, policy: policy}
}

// BuildLogs walks the stops in the given order, never re-sorting them. Each
// stop contributes the drive leading into it followed by its own activity.
// Activities that run past midnight are split so no entry spans two dates.
//
// Any failure discards all logs and wraps domain.ErrLogGenerationFailed.
func (b *DutyLogBuilder) BuildLogs(
	route domain.RouteSummary,
	stops []domain.Stop,
	tripStart time.Time,
) ([]domain.DailyLog, error) {
	logs, err := b.buildLogs(route, stops, tripStart)
	if err != nil {
		return nil, fmt.Errorf("build logs: %w: %w", domain.ErrLogGenerationFailed, err)
	}
	return logs, nil
}

func (b *DutyLogBuilder) buildLogs(
	route domain.RouteSummary,
	stops []domain.Stop,
	tripStart time.Time,
) ([]domain.DailyLog, error) {
	if tripStart.IsZero() {
		return nil, errors.New("trip start time is not set")
	}
	if len(stops) == 0 {
		return nil, errors.New("no stops to log")
	}

	tl := newTimeline(tripStart)

	var prev *domain.Stop
	for i := range stops {
		stop := stops[i]

		driveHours := b.policy.LegDurationHours(route, Leg{Index: i, From: prev, To: stop})
		if driveHours != 0 {
			from := "Start Location"
			if prev != nil {
				from = prev.Label
			}
			if err := tl.record(domain.StatusDriving, driveHours, from); err != nil {
				return nil, fmt.Errorf("leg %d into %s: %w", i, stop.Kind, err)
			}
		}

		if err := tl.record(stop.DutyStatus(), stop.DurationHours, stop.Label); err != nil {
			return nil, fmt.Errorf("stop %d (%s): %w", i, stop.Kind, err)
		}

		prev = &stops[i]
	}

	return tl.finish(), nil
}

// ValidateCompliance flags every sealed log whose totals exceed the daily limits.
func (b *DutyLogBuilder) ValidateCompliance(logs []domain.DailyLog) []string {
	violations := []string{}
	for _, l := range logs {
		if l.TotalDriveHours > b.rules.DailyDriveLimitHours {
			violations = append(violations, fmt.Sprintf(
				"Daily driving limit exceeded on %s: %.1f hours", l.DateString(), l.TotalDriveHours,
			))
		}
		if l.TotalDutyHours > b.rules.DailyDutyLimitHours {
			violations = append(violations, fmt.Sprintf(
				"Daily duty limit exceeded on %s: %.1f hours", l.DateString(), l.TotalDutyHours,
			))
		}
	}
	return violations
}

// timeline is the builder's cursor: the current instant, the open log, and the
// logs already sealed.
type timeline struct {
	now     time.Time
	current *domain.DailyLog
	sealed  []domain.DailyLog
}

func newTimeline(start time.Time) *timeline {
	return &timeline{
		now:     start,
		current: domain.NewDailyLog(start),
	}
}

// record appends one activity, splitting it at each midnight it crosses.
// Each pass either finishes the activity inside the current day, or fills the
// day up to its last instant, seals the log and opens the next date at 00:00.
func (tl *timeline) record(status domain.DutyStatus, hours float64, location string) error {
	if math.IsNaN(hours) || hours < 0 || hours > maxActivityHours {
		return fmt.Errorf("invalid %s duration %v hours", status, hours)
	}

	remaining := hoursToDuration(hours)
	for {
		midnight := nextMidnight(tl.now)
		untilMidnight := midnight.Sub(tl.now)
		if untilMidnight <= 0 {
			return fmt.Errorf("no day boundary after %s", tl.now.Format(time.RFC3339))
		}

		if remaining < untilMidnight {
			end := tl.now.Add(remaining)
			tl.current.Append(domain.NewLogEntry(status, tl.now, end, location))
			tl.now = end
			return nil
		}

		tl.current.Append(domain.NewLogEntry(status, tl.now, midnight.Add(-time.Nanosecond), location))
		tl.sealed = append(tl.sealed, *tl.current)
		tl.current = domain.NewDailyLog(midnight)
		tl.now = midnight

		remaining -= untilMidnight
		if remaining == 0 {
			return nil
		}
	}
}

// finish seals the open log if anything was written to it.
func (tl *timeline) finish() []domain.DailyLog {
	if len(tl.current.Entries) > 0 {
		tl.sealed = append(tl.sealed, *tl.current)
		tl.current = nil
	}
	return tl.sealed
}

// nextMidnight returns the first instant of the calendar date after t's.
func nextMidnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return domain.StartOfDay(time.Date(y, m, d+1, 12, 0, 0, 0, t.Location()))
}
