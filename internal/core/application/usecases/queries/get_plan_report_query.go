// Package queries contains read operations over built routing plans.
// Queries return read models prepared for display; they never change a plan.
package queries

import (
	"errors"

	"routing/internal/core/domain/model/plan"
	"routing/internal/pkg/guard"
)

var ErrGetPlanReportQueryIsNotConstructed = errors.New(
	"GetPlanReportQuery must be created via NewGetPlanReportQuery constructor",
)

// GetPlanReportQuery asks for the summary of a plan and, optionally, the trip of
// every vehicle.
//
// Example:
//
//	query, err := NewGetPlanReportQuery(p, true)
//	if err != nil {
//	    return err
//	}
//	report, err := NewGetPlanReportQueryHandler().Handle(ctx, query)
type GetPlanReportQuery struct {
	plan      *plan.RoutingPlan
	withTrips bool

	guard guard.ConstructorGuard
}

func NewGetPlanReportQuery(p *plan.RoutingPlan, withTrips bool) (GetPlanReportQuery, error) {
	if err := p.Validate(); err != nil {
		return GetPlanReportQuery{}, err
	}
	return GetPlanReportQuery{plan: p, withTrips: withTrips, guard: guard.NewConstructorGuard()}, nil
}

func (q GetPlanReportQuery) Validate() error {
	return q.guard.Validate(ErrGetPlanReportQueryIsNotConstructed)
}

func (q GetPlanReportQuery) Plan() *plan.RoutingPlan {
	return q.plan
}

func (q GetPlanReportQuery) WithTrips() bool {
	return q.withTrips
}

// GetPlanReportQueryResponse is the report read model.
//
// Solved is false when any vehicle still lacks a route; distance and trip
// figures are left empty in that case.
type GetPlanReportQueryResponse struct {
	PlanID        string       `json:"plan_id"`
	Name          string       `json:"name"`
	TimeWindowed  bool         `json:"time_windowed"`
	Points        int          `json:"points"`
	Depots        int          `json:"depots"`
	Vehicles      int          `json:"vehicles"`
	Solved        bool         `json:"solved"`
	TotalDistance float64      `json:"total_distance"`
	UniqueStops   int          `json:"unique_stops"`
	Trips         []TripReport `json:"trips,omitempty"`
}

// TripReport describes the trip of one vehicle.
type TripReport struct {
	Vehicle  int      `json:"vehicle"`
	Stops    []string `json:"stops"`
	Distance float64  `json:"distance"`
	Demand   float64  `json:"demand"`
	Capacity float64  `json:"capacity"`
}
