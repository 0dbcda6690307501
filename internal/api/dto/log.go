package dto

import (
	"time"
	"trip-planner-service/internal/domain"
)

type LogEntryResponse struct {
	Status        string    `json:"status"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	Location      string    `json:"location"`
	DurationHours float64   `json:"duration_hours"`
}

// DailyLogResponse is one ELD log sheet. Date is YYYY-MM-DD.
type DailyLogResponse struct {
	Date            string             `json:"date"`
	Entries         []LogEntryResponse `json:"entries"`
	TotalDriveHours float64            `json:"total_drive_hours"`
	TotalDutyHours  float64            `json:"total_duty_hours"`
}

func NewDailyLogResponses(logs []domain.DailyLog) []DailyLogResponse {
	out := make([]DailyLogResponse, 0, len(logs))
	for _, l := range logs {
		entries := make([]LogEntryResponse, 0, len(l.Entries))
		for _, e := range l.Entries {
			entries = append(entries, LogEntryResponse{
				Status:        string(e.Status),
				StartTime:     e.StartTime,
				EndTime:       e.EndTime,
				Location:      e.Location,
				DurationHours: e.DurationHours,
			})
		}

		out = append(out, DailyLogResponse{
			Date:            l.DateString(),
			Entries:         entries,
			TotalDriveHours: l.TotalDriveHours,
			TotalDutyHours:  l.TotalDutyHours,
		})
	}
	return out
}
