package commands

import (
	"context"
	"fmt"
	"io"

	"routing/internal/core/domain/model/kernel"
	"routing/internal/core/domain/model/plan"
	"routing/internal/core/domain/model/point"
	"routing/internal/core/domain/model/vehicle"
	"routing/internal/core/domain/services"
	"routing/internal/core/ports"
)

// instanceBuilder turns instance text into a RoutingPlan. It is shared by the
// file and text command handlers.
type instanceBuilder struct {
	reader   ports.InstanceReader
	matrices MatrixBuilder
}

func (b instanceBuilder) build(ctx context.Context, r io.Reader) (*plan.RoutingPlan, error) {
	raw, err := b.reader.Read(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("read instance: %w", err)
	}
	if len(raw.DepotIndices) == 0 {
		return nil, plan.ErrDepotsAreRequired
	}

	points, err := rawPoints(raw)
	if err != nil {
		return nil, err
	}

	var (
		matrix    kernel.DistanceMatrix
		distances point.DistanceProvider = services.EuclideanDistance{}
	)
	if raw.HasExplicitMatrix() {
		if matrix, err = kernel.NewDistanceMatrix(raw.Matrix); err != nil {
			return nil, err
		}
		if distances, err = services.NewPeerDistances(points, matrix); err != nil {
			return nil, err
		}
	} else if matrix, err = b.matrices.Build(ctx, points, distances); err != nil {
		return nil, err
	}

	vehicles, err := roundRobinVehicles(raw, points)
	if err != nil {
		return nil, err
	}

	return plan.NewRoutingPlan(
		raw.Metadata.DatasetName,
		points,
		raw.DepotIndices,
		vehicles,
		matrix,
		raw.TimeWindowed,
		distances,
	)
}

// rawPoints builds the point space in parse order. Demand records attach by
// line order.
func rawPoints(raw ports.RawInstance) ([]*point.Point, error) {
	depots := make(map[int]struct{}, len(raw.DepotIndices))
	for _, i := range raw.DepotIndices {
		depots[i] = struct{}{}
	}

	points := make([]*point.Point, len(raw.Points))
	for i, rp := range raw.Points {
		coordinates, err := kernel.NewCoordinates(rp.Latitude, rp.Longitude)
		if err != nil {
			return nil, fmt.Errorf("point %d: %w", rp.ID, err)
		}

		var (
			demand *float64
			window *kernel.TimeWindow
		)
		if i < len(raw.Demands) {
			rd := raw.Demands[i]
			demand = &rd.Demand
			if rd.Window != nil {
				w, err := kernel.NewTimeWindow(rd.Window.Start, rd.Window.End, rd.Window.ServiceTime)
				if err != nil {
					return nil, fmt.Errorf("point %d: %w", rp.ID, err)
				}
				window = &w
			}
		}

		_, isDepot := depots[i]
		if points[i], err = point.NewPoint(rp.ID, rp.Name, coordinates, demand, window, isDepot); err != nil {
			return nil, err
		}
	}

	return points, nil
}

// roundRobinVehicles creates the unsolved fleet: vehicle k is based at the
// depot listed at position k mod depot count.
func roundRobinVehicles(raw ports.RawInstance, points []*point.Point) ([]*vehicle.Vehicle, error) {
	depotCount := len(raw.DepotIndices)
	maxStops := len(points) - depotCount

	vehicles := make([]*vehicle.Vehicle, raw.Metadata.VehicleCount)
	for k := range vehicles {
		index := raw.DepotIndices[k%depotCount]
		depot := points[index]

		var start, end int64
		if w, ok := depot.TimeWindow(); ok {
			start, end = w.Start(), w.End()
		}

		v, err := vehicle.NewVehicle(depot, index, start, end, float64(raw.Metadata.VehicleCapacity), nil, maxStops)
		if err != nil {
			return nil, fmt.Errorf("vehicle %d: %w", k, err)
		}
		vehicles[k] = v
	}

	return vehicles, nil
}
