package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"trip-planner-service/internal/api/dto"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/obs"
	"trip-planner-service/internal/services"
)

// TripPlanner is the service surface the trip endpoints depend on.
type TripPlanner interface {
	PlanTrip(ctx context.Context, req services.TripRequest) (*domain.TripPlan, error)
	CheckFeasibility(ctx context.Context, req services.TripRequest) (*services.FeasibilityReport, error)
}

type TripHandler struct {
	Service        TripPlanner
	RouteMaxPoints int
}

// Plan builds the full trip plan: route, stops, daily logs and HOS status.
func (h *TripHandler) Plan(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	plan, err := h.Service.PlanTrip(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, r, "plan trip", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewPlanResponse(plan, h.RouteMaxPoints))
}

// Feasibility answers whether the trip fits the driver's available hours
// without generating logs.
func (h *TripHandler) Feasibility(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	report, err := h.Service.CheckFeasibility(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, r, "check feasibility", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.FeasibilityReportResponse{
		Feasibility:        dto.NewFeasibilityResponse(report.Feasibility),
		AvailableDriveTime: dto.NewDriveTimeResponse(report.Available),
		RestPeriods:        dto.NewRestPeriodResponses(report.RestPeriods),
		Route:              dto.NewRouteResponse(report.Route, h.RouteMaxPoints),
	})
}

func (h *TripHandler) decode(w http.ResponseWriter, r *http.Request) (services.TripRequest, bool) {
	var body dto.TripRequest
	if err := decodeJSON(w, r, &body); err != nil {
		if errors.Is(err, errTrailingData) {
			writeError(w, r, http.StatusBadRequest, err.Error())
		} else {
			writeError(w, r, http.StatusBadRequest, "invalid json body")
		}
		return services.TripRequest{}, false
	}

	if body.CycleUsed == nil {
		writeError(w, r, http.StatusBadRequest, "cycle_used: is required")
		return services.TripRequest{}, false
	}

	return services.TripRequest{
		CurrentLocation: body.CurrentLocation,
		PickupLocation:  body.PickupLocation,
		DropoffLocation: body.DropoffLocation,
		CycleUsedHours:  *body.CycleUsed,
		StartAt:         body.StartAt,
	}, true
}

// writeServiceError logs the full error and answers with a message that does
// not leak upstream or internal detail. Validation messages are shown verbatim.
func (h *TripHandler) writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	log.Printf("%s failed: req_id=%s err=%v", op, obs.RequestID(r.Context()), err)

	var ve *domain.ValidationError
	var le *domain.LocationError
	switch {
	case errors.As(err, &ve):
		writeError(w, r, http.StatusBadRequest, ve.Error())
	case errors.As(err, &le):
		writeError(w, r, http.StatusUnprocessableEntity, le.Error())
	case errors.Is(err, domain.ErrRouteComputation):
		writeError(w, r, http.StatusBadGateway, domain.ErrRouteComputation.Error())
	default:
		writeError(w, r, http.StatusInternalServerError, domain.ErrPlanningFailed.Error())
	}
}
