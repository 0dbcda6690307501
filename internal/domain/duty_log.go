package domain

import "time"

type DutyStatus string

const (
	StatusDriving      DutyStatus = "driving"
	StatusOnDuty       DutyStatus = "on_duty"
	StatusSleeperBerth DutyStatus = "sleeper_berth"
	StatusOffDuty      DutyStatus = "off_duty"
)

// CountsAsDuty reports whether time in this status counts toward duty totals.
func (s DutyStatus) CountsAsDuty() bool {
	return s == StatusDriving || s == StatusOnDuty
}

// A single duty-status interval. Entries never cross midnight.
type LogEntry struct {
	Status        DutyStatus
	StartTime     time.Time
	EndTime       time.Time
	Location      string
	DurationHours float64
}

func NewLogEntry(status DutyStatus, start, end time.Time, location string) LogEntry {
	return LogEntry{
		Status:        status,
		StartTime:     start,
		EndTime:       end,
		Location:      location,
		DurationHours: end.Sub(start).Hours(),
	}
}

// One calendar day of the driver's log.
// Totals are only ever changed by Append so they cannot drift from Entries.
type DailyLog struct {
	Date            time.Time
	Entries         []LogEntry
	TotalDriveHours float64
	TotalDutyHours  float64
}

// NewDailyLog opens a log for the calendar date of t, in t's location.
func NewDailyLog(t time.Time) *DailyLog {
	return &DailyLog{Date: StartOfDay(t)}
}

// StartOfDay returns the first instant of t's calendar date in t's location.
// Where a DST jump skips local midnight, that is the instant the new offset
// takes effect, so the result always falls on t's date.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	s := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	for dateBefore(s, t) {
		_, end := s.ZoneBounds()
		if end.IsZero() || !end.After(s) {
			break
		}
		s = end
	}
	return s
}

func dateBefore(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC).Before(time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC))
}

// Append adds an entry and updates the running totals.
func (l *DailyLog) Append(e LogEntry) {
	l.Entries = append(l.Entries, e)
	if e.Status == StatusDriving {
		l.TotalDriveHours += e.DurationHours
	}
	if e.Status.CountsAsDuty() {
		l.TotalDutyHours += e.DurationHours
	}
}

// DateString formats the log date without a time component.
func (l DailyLog) DateString() string {
	return l.Date.Format(time.DateOnly)
}
