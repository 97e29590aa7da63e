package plan

import (
	"routing/internal/core/domain/model/point"
	"routing/internal/core/domain/model/vehicle"
	"routing/internal/pkg/errs"
)

// UniqueStopCount returns how many distinct customers appear across all routes.
// Depots are not counted and unresolved routes contribute nothing. Two stops are
// the same only when they are the same point.
func (p *RoutingPlan) UniqueStopCount() int {
	seen := make(map[*point.Point]struct{})
	for _, v := range p.vehicles {
		for _, stop := range v.Route() {
			if stop.IsDepot() {
				continue
			}
			seen[stop] = struct{}{}
		}
	}
	return len(seen)
}

// TotalDistance sums TripLength over all vehicles.
func (p *RoutingPlan) TotalDistance() (float64, error) {
	var total float64
	for _, v := range p.vehicles {
		length, err := p.TripLength(v)
		if err != nil {
			return 0, err
		}
		total += length
	}
	return total, nil
}

// TripLength returns the length of the depot, route, depot path of v. An empty
// route has length 0.
//
// Errors:
//   - ObjectNotFound if v does not belong to the plan
//   - RouteNotResolved if v has no route yet
//   - any failure of the distance provider, such as UnknownPeer
func (p *RoutingPlan) TripLength(v *vehicle.Vehicle) (float64, error) {
	route, err := p.resolvedRoute(v)
	if err != nil {
		return 0, err
	}
	if len(route) == 0 {
		return 0, nil
	}

	var length float64
	prev := v.Depot()
	for _, stop := range append(route, v.Depot()) {
		d, err := p.distances.Distance(prev, stop)
		if err != nil {
			return 0, err
		}
		length += d
		prev = stop
	}
	return length, nil
}

// TripDemand returns the total demand served by v. Stops without a demand
// record count as 0.
func (p *RoutingPlan) TripDemand(v *vehicle.Vehicle) (float64, error) {
	route, err := p.resolvedRoute(v)
	if err != nil {
		return 0, err
	}

	var demand float64
	for _, stop := range route {
		d, _ := stop.Demand()
		demand += d
	}
	return demand, nil
}

// Trip returns the stops of v from its depot through the route back to the depot.
func (p *RoutingPlan) Trip(v *vehicle.Vehicle) ([]*point.Point, error) {
	route, err := p.resolvedRoute(v)
	if err != nil {
		return nil, err
	}

	trip := make([]*point.Point, 0, len(route)+2)
	trip = append(trip, v.Depot())
	trip = append(trip, route...)
	return append(trip, v.Depot()), nil
}

func (p *RoutingPlan) resolvedRoute(v *vehicle.Vehicle) ([]*point.Point, error) {
	k := p.vehicleIndex(v)
	if k < 0 {
		return nil, errs.NewObjectNotFoundError("vehicle", "not part of plan "+p.name)
	}
	if !v.IsRouteResolved() {
		return nil, errs.NewRouteNotResolvedError(k)
	}
	return v.Route(), nil
}

func (p *RoutingPlan) vehicleIndex(v *vehicle.Vehicle) int {
	for k, own := range p.vehicles {
		if own == v {
			return k
		}
	}
	return -1
}
