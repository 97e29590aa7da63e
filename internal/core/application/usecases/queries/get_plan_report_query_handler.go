package queries

import (
	"context"
	"fmt"
)

// GetPlanReportQueryHandler computes plan reports. It holds no state and is
// safe for concurrent use.
type GetPlanReportQueryHandler struct{}

func NewGetPlanReportQueryHandler() GetPlanReportQueryHandler {
	return GetPlanReportQueryHandler{}
}

// Handle builds the report. Distance lookups that fail, for example with
// UnknownPeer, are returned as errors.
func (h GetPlanReportQueryHandler) Handle(
	_ context.Context,
	query GetPlanReportQuery,
) (GetPlanReportQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetPlanReportQueryResponse{}, err
	}
	p := query.Plan()

	report := GetPlanReportQueryResponse{
		PlanID:       p.ID().String(),
		Name:         p.Name(),
		TimeWindowed: p.IsTimeWindowed(),
		Points:       len(p.Points()),
		Depots:       len(p.DepotIndices()),
		Vehicles:     len(p.Vehicles()),
		Solved:       true,
		UniqueStops:  p.UniqueStopCount(),
	}
	for _, v := range p.Vehicles() {
		if !v.IsRouteResolved() {
			report.Solved = false
			return report, nil
		}
	}

	total, err := p.TotalDistance()
	if err != nil {
		return GetPlanReportQueryResponse{}, fmt.Errorf("plan report: %w", err)
	}
	report.TotalDistance = total

	if !query.WithTrips() {
		return report, nil
	}

	for k, v := range p.Vehicles() {
		trip, err := p.Trip(v)
		if err != nil {
			return GetPlanReportQueryResponse{}, fmt.Errorf("plan report: vehicle %d: %w", k, err)
		}
		length, err := p.TripLength(v)
		if err != nil {
			return GetPlanReportQueryResponse{}, fmt.Errorf("plan report: vehicle %d: %w", k, err)
		}
		demand, err := p.TripDemand(v)
		if err != nil {
			return GetPlanReportQueryResponse{}, fmt.Errorf("plan report: vehicle %d: %w", k, err)
		}

		stops := make([]string, len(trip))
		for i, stop := range trip {
			stops[i] = stop.Name()
		}
		report.Trips = append(report.Trips, TripReport{
			Vehicle:  k,
			Stops:    stops,
			Distance: length,
			Demand:   demand,
			Capacity: v.Capacity(),
		})
	}

	return report, nil
}
