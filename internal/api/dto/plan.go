package dto

import (
	"time"
	"trip-planner-service/internal/domain"
)

// TripRequest is the body of both /api/trips endpoints.
type TripRequest struct {
	CurrentLocation string     `json:"current_location"`
	PickupLocation  string     `json:"pickup_location"`
	DropoffLocation string     `json:"dropoff_location"`
	CycleUsed       *float64   `json:"cycle_used"`
	StartAt         *time.Time `json:"start_at"`
}

type RouteResponse struct {
	DistanceMiles float64     `json:"distance_miles"`
	DurationHours float64     `json:"duration_hours"`
	Duration      string      `json:"duration"`
	Coordinates   [][]float64 `json:"coordinates"` // [lon, lat]
}

type StopResponse struct {
	Type          string    `json:"type"`
	Location      string    `json:"location"`
	Coordinates   []float64 `json:"coordinates"`
	ArrivalTime   time.Time `json:"arrival_time"`
	DurationHours float64   `json:"duration_hours"`
	Description   string    `json:"description"`
}

type HOSStatusResponse struct {
	CycleUsedHours      float64   `json:"cycle_used_hours"`
	RemainingHours      float64   `json:"remaining_hours"`
	DriveTimeTodayHours float64   `json:"drive_time_today_hours"`
	DutyTimeTodayHours  float64   `json:"duty_time_today_hours"`
	NextReset           time.Time `json:"next_reset"`
	Compliant           bool      `json:"compliant"`
	Violations          []string  `json:"violations"`
}

type WeeklyTotalsResponse struct {
	TotalDriveHours float64 `json:"total_drive_hours"`
	TotalDutyHours  float64 `json:"total_duty_hours"`
	DaysWithDriving int     `json:"days_with_driving"`
}

type FeasibilityResponse struct {
	Feasible           bool    `json:"feasible"`
	RequiredDriveHours float64 `json:"required_drive_hours"`
	AvailableHours     float64 `json:"available_hours"`
	RequiresRest       bool    `json:"requires_rest"`
	Reason             string  `json:"reason,omitempty"`
	Recommendation     string  `json:"recommendation,omitempty"`
}

type RestPeriodResponse struct {
	Day               int     `json:"day"`
	DriveHours        float64 `json:"drive_hours"`
	RestRequiredHours float64 `json:"rest_required_hours"`
	RestStart         string  `json:"rest_start"`
}

type DriveTimeResponse struct {
	DailyLimitHours     float64 `json:"daily_limit_hours"`
	WeeklyRemaining     float64 `json:"weekly_remaining_hours"`
	EffectiveLimitHours float64 `json:"effective_limit_hours"`
	DutyLimitHours      float64 `json:"duty_limit_hours"`
}

type PlanResponse struct {
	Route         RouteResponse        `json:"route"`
	Stops         []StopResponse       `json:"stops"`
	FuelStops     []StopResponse       `json:"fuel_stops"`
	ELDLogs       []DailyLogResponse   `json:"eld_logs"`
	LogViolations []string             `json:"log_violations"`
	HOSStatus     HOSStatusResponse    `json:"hos_status"`
	WeeklyTotals  WeeklyTotalsResponse `json:"weekly_totals"`
	Feasibility   FeasibilityResponse  `json:"feasibility"`
	RestPeriods   []RestPeriodResponse `json:"rest_periods"`
}

type FeasibilityReportResponse struct {
	Feasibility        FeasibilityResponse  `json:"feasibility"`
	AvailableDriveTime DriveTimeResponse    `json:"available_drive_time"`
	RestPeriods        []RestPeriodResponse `json:"rest_periods"`
	Route              RouteResponse        `json:"route"`
}

// NewRouteResponse rounds the geometry to 6 decimals and thins it to maxPoints.
func NewRouteResponse(r domain.RouteSummary, maxPoints int) RouteResponse {
	path := domain.RoundCoordinates(domain.ChunkCoordinates(r.Path, maxPoints))

	coords := make([][]float64, 0, len(path))
	for _, c := range path {
		coords = append(coords, c.CoordsToList())
	}

	return RouteResponse{
		DistanceMiles: r.DistanceMiles,
		DurationHours: r.DurationHours,
		Duration:      domain.FormatDuration(r.DurationHours),
		Coordinates:   coords,
	}
}

func NewStopResponses(stops []domain.Stop) []StopResponse {
	out := make([]StopResponse, 0, len(stops))
	for _, s := range stops {
		out = append(out, StopResponse{
			Type:          string(s.Kind),
			Location:      s.Label,
			Coordinates:   s.Position.Round(6).CoordsToList(),
			ArrivalTime:   s.ScheduledAt,
			DurationHours: s.DurationHours,
			Description:   s.Description,
		})
	}
	return out
}

func NewHOSStatusResponse(s domain.HOSStatus) HOSStatusResponse {
	return HOSStatusResponse{
		CycleUsedHours:      s.CycleUsedHours,
		RemainingHours:      s.RemainingHours,
		DriveTimeTodayHours: s.DriveTimeTodayHours,
		DutyTimeTodayHours:  s.DutyTimeTodayHours,
		NextReset:           s.NextReset,
		Compliant:           s.Compliant(),
		Violations:          nonNil(s.Violations),
	}
}

func NewFeasibilityResponse(f domain.Feasibility) FeasibilityResponse {
	return FeasibilityResponse{
		Feasible:           f.Feasible,
		RequiredDriveHours: f.RequiredDriveHours,
		AvailableHours:     f.AvailableHours,
		RequiresRest:       f.RequiresRest,
		Reason:             string(f.Reason),
		Recommendation:     f.Recommendation,
	}
}

func NewRestPeriodResponses(periods []domain.RestPeriod) []RestPeriodResponse {
	out := make([]RestPeriodResponse, 0, len(periods))
	for _, p := range periods {
		out = append(out, RestPeriodResponse{
			Day:               p.Day,
			DriveHours:        p.DriveHours,
			RestRequiredHours: p.RestRequiredHours,
			RestStart:         p.RestStart,
		})
	}
	return out
}

func NewPlanResponse(p *domain.TripPlan, maxPoints int) PlanResponse {
	return PlanResponse{
		Route:         NewRouteResponse(p.Route, maxPoints),
		Stops:         NewStopResponses(p.Stops),
		FuelStops:     NewStopResponses(p.FuelStops),
		ELDLogs:       NewDailyLogResponses(p.DailyLogs),
		LogViolations: nonNil(p.LogViolations),
		HOSStatus:     NewHOSStatusResponse(p.HOSStatus),
		WeeklyTotals: WeeklyTotalsResponse{
			TotalDriveHours: p.WeeklyTotals.TotalDriveHours,
			TotalDutyHours:  p.WeeklyTotals.TotalDutyHours,
			DaysWithDriving: p.WeeklyTotals.DaysWithDriving,
		},
		Feasibility: NewFeasibilityResponse(p.Feasibility),
		RestPeriods: NewRestPeriodResponses(p.RestPeriods),
	}
}

func NewDriveTimeResponse(b domain.DriveTimeBudget) DriveTimeResponse {
	return DriveTimeResponse{
		DailyLimitHours:     b.DailyLimitHours,
		WeeklyRemaining:     b.WeeklyRemaining,
		EffectiveLimitHours: b.EffectiveLimitHours,
		DutyLimitHours:      b.DutyLimitHours,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
