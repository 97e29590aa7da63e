package payload

import (
	"fmt"

	"routing/internal/core/domain/model/plan"
	"routing/internal/core/domain/model/point"
	"routing/internal/pkg/errs"
)

// Encode converts p into its payload form. The whole point space goes into
// customers_vec in matrix order, so vec ids equal matrix indices.
func Encode(p *plan.RoutingPlan) (Plan, error) {
	if err := p.Validate(); err != nil {
		return Plan{}, err
	}

	points := p.Points()
	out := Plan{
		Name:           p.Name(),
		TimeWindowed:   p.IsTimeWindowed(),
		DistanceMatrix: p.Matrix().Rows(),
		CustomersVec:   make([]Point, len(points)),
		DepotVec:       make([]Point, 0, len(p.DepotIndices())),
		Vehicles:       make([]Vehicle, 0, len(p.Vehicles())),
	}
	for i, pt := range points {
		out.CustomersVec[i] = encodePoint(pt)
	}
	for _, depot := range p.Depots() {
		out.DepotVec = append(out.DepotVec, encodePoint(depot))
	}

	for k, v := range p.Vehicles() {
		vehicle := Vehicle{
			Depot:        &VecRef{VecID: v.DepotMatrixIndex()},
			WorkDayStart: v.WorkDayStart(),
			WorkDayEnd:   v.WorkDayEnd(),
			Capacity:     v.Capacity(),
			MaxStops:     v.MaxStops(),
		}
		if v.IsRouteResolved() {
			route := v.Route()
			vehicle.Customers = make([]VecRef, len(route))
			for s, stop := range route {
				i, ok := p.IndexOf(stop)
				if !ok {
					return Plan{}, fmt.Errorf("encode vehicle %d: %w", k, errs.NewObjectNotFoundError("route stop", s))
				}
				vehicle.Customers[s] = VecRef{VecID: i}
			}
		}
		out.Vehicles = append(out.Vehicles, vehicle)
	}

	return out, nil
}

func encodePoint(p *point.Point) Point {
	out := Point{
		ID:        p.ID(),
		Name:      p.Name(),
		Latitude:  p.Coordinates().Latitude(),
		Longitude: p.Coordinates().Longitude(),
	}
	if demand, ok := p.Demand(); ok {
		out.Demand = &demand
	}
	if w, ok := p.TimeWindow(); ok {
		start, end, service := w.Start(), w.End(), w.ServiceTime()
		out.TimeWindowStart = &start
		out.TimeWindowEnd = &end
		out.ServiceTime = &service
	}
	return out
}
