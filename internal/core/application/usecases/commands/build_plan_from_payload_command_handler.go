package commands

import (
	"context"
	"errors"
	"fmt"

	"routing/internal/core/application/payload"
	"routing/internal/core/domain/model/kernel"
	"routing/internal/core/domain/model/plan"
	"routing/internal/core/domain/model/point"
	"routing/internal/core/domain/model/vehicle"
	"routing/internal/core/domain/services"
	"routing/internal/pkg/errs"
)

// BuildPlanFromPayloadCommandHandler decodes structured payloads into plans.
//
// The point space starts with customers_vec in order, so vec ids are matrix
// indices. Every depot_vec record is matched to a customers_vec record with the
// same id, or appended after them. Trip metrics use straight-line distances.
type BuildPlanFromPayloadCommandHandler struct {
	matrices MatrixBuilder
}

func NewBuildPlanFromPayloadCommandHandler(matrices MatrixBuilder) BuildPlanFromPayloadCommandHandler {
	return BuildPlanFromPayloadCommandHandler{matrices: matrices}
}

// Handle builds the plan. An empty distance_matrix is recomputed from the points.
//
// Errors:
//   - ReferenceOutOfRange when a vehicle references a vec id outside customers_vec
//   - ValueIsRequired or ValueIsInvalid for incomplete records
func (h BuildPlanFromPayloadCommandHandler) Handle(
	ctx context.Context,
	cmd BuildPlanFromPayloadCommand,
) (*plan.RoutingPlan, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	body := cmd.Payload()

	points, depotIndices, err := payloadPoints(body)
	if err != nil {
		return nil, fmt.Errorf("build plan from payload: %w", err)
	}

	distances := services.EuclideanDistance{}
	var matrix kernel.DistanceMatrix
	if len(body.DistanceMatrix) == 0 {
		matrix, err = h.matrices.Build(ctx, points, distances)
	} else {
		matrix, err = kernel.NewDistanceMatrix(body.DistanceMatrix)
	}
	if err != nil {
		return nil, fmt.Errorf("build plan from payload: %w", err)
	}

	vehicles := make([]*vehicle.Vehicle, len(body.Vehicles))
	for k, rec := range body.Vehicles {
		if vehicles[k], err = payloadVehicle(rec, points, len(body.CustomersVec)); err != nil {
			return nil, fmt.Errorf("build plan from payload: vehicle %d: %w", k, err)
		}
	}

	p, err := plan.NewRoutingPlan(body.Name, points, depotIndices, vehicles, matrix, body.TimeWindowed, distances)
	if err != nil {
		return nil, fmt.Errorf("build plan from payload: %w", err)
	}
	return p, nil
}

func payloadPoints(body payload.Plan) ([]*point.Point, []int, error) {
	depotIDs := make(map[int]struct{}, len(body.DepotVec))
	for _, rec := range body.DepotVec {
		depotIDs[rec.ID] = struct{}{}
	}

	points := make([]*point.Point, 0, len(body.CustomersVec)+len(body.DepotVec))
	byID := make(map[int]int, len(body.CustomersVec))
	for i, rec := range body.CustomersVec {
		_, isDepot := depotIDs[rec.ID]
		p, err := payloadPoint(rec, isDepot)
		if err != nil {
			return nil, nil, fmt.Errorf("customers_vec %d: %w", i, err)
		}
		points = append(points, p)
		byID[rec.ID] = i
	}

	depotIndices := make([]int, 0, len(body.DepotVec))
	for i, rec := range body.DepotVec {
		index, ok := byID[rec.ID]
		if !ok {
			p, err := payloadPoint(rec, true)
			if err != nil {
				return nil, nil, fmt.Errorf("depot_vec %d: %w", i, err)
			}
			index = len(points)
			points = append(points, p)
			byID[rec.ID] = index
		}
		depotIndices = append(depotIndices, index)
	}

	return points, depotIndices, nil
}

func payloadPoint(rec payload.Point, isDepot bool) (*point.Point, error) {
	coordinates, err := kernel.NewCoordinates(rec.Latitude, rec.Longitude)
	if err != nil {
		return nil, err
	}

	window, err := payloadWindow(rec)
	if err != nil {
		return nil, err
	}

	return point.NewPoint(rec.ID, rec.Name, coordinates, rec.Demand, window, isDepot)
}

// payloadWindow requires start and end together; service time defaults to 0
// and needs a window.
func payloadWindow(rec payload.Point) (*kernel.TimeWindow, error) {
	switch {
	case rec.TimeWindowStart == nil && rec.TimeWindowEnd == nil:
		if rec.ServiceTime != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause("service_time",
				errors.New("service time without time window"))
		}
		return nil, nil
	case rec.TimeWindowStart == nil || rec.TimeWindowEnd == nil:
		return nil, errs.NewValueIsInvalidErrorWithCause("time window",
			errors.New("time_window_start and time_window_end must be given together"))
	}

	var service int64
	if rec.ServiceTime != nil {
		service = *rec.ServiceTime
	}
	w, err := kernel.NewTimeWindow(*rec.TimeWindowStart, *rec.TimeWindowEnd, service)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func payloadVehicle(rec payload.Vehicle, points []*point.Point, vecSize int) (*vehicle.Vehicle, error) {
	if rec.Depot == nil {
		return nil, errs.NewValueIsRequiredError("depot")
	}
	depot, err := resolveVecID(rec.Depot.VecID, points, vecSize)
	if err != nil {
		return nil, err
	}

	var route []*point.Point
	if rec.Customers != nil {
		route = make([]*point.Point, len(rec.Customers))
		for s, ref := range rec.Customers {
			if route[s], err = resolveVecID(ref.VecID, points, vecSize); err != nil {
				return nil, err
			}
		}
	}

	return vehicle.NewVehicle(depot, rec.Depot.VecID, rec.WorkDayStart, rec.WorkDayEnd, rec.Capacity, route, rec.MaxStops)
}

func resolveVecID(id int, points []*point.Point, vecSize int) (*point.Point, error) {
	if id < 0 || id >= vecSize {
		return nil, errs.NewReferenceOutOfRangeError("vec_id", id, vecSize)
	}
	return points[id], nil
}
