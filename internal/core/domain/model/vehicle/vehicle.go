package vehicle

import (
	"errors"
	"fmt"

	"routing/internal/core/domain/model/point"
	"routing/internal/pkg/errs"
	"routing/internal/pkg/guard"
)

var (
	// ErrVehicleIsNotConstructed is returned when a Vehicle was not created through NewVehicle.
	ErrVehicleIsNotConstructed = errors.New("Vehicle must be created via NewVehicle constructor")
	// ErrDepotIsRequired is returned when a vehicle has no depot.
	ErrDepotIsRequired = errs.NewValueIsRequiredError("depot")
)

// Vehicle is one truck of a routing plan.
//
// The depot and the route entries are references into the owning plan's point
// collection. A nil route means the plan has not been solved yet; an empty route
// is a solved vehicle that stays at its depot.
type Vehicle struct {
	depot            *point.Point
	depotMatrixIndex int
	workDayStart     int64
	workDayEnd       int64
	capacity         float64
	route            []*point.Point
	maxStops         int
	guard            guard.ConstructorGuard
}

// NewVehicle creates a Vehicle.
//
// Parameters:
//   - depot: the point the vehicle starts and ends at (must be a depot)
//   - depotMatrixIndex: position of the depot in the plan's point space
//   - workDayStart, workDayEnd: working hours, end must not precede start
//   - capacity: maximum total demand the vehicle may carry (non-negative)
//   - route: ordered stops, nil for an unsolved plan
//   - maxStops: upper bound on the number of stops (non-negative)
func NewVehicle(
	depot *point.Point,
	depotMatrixIndex int,
	workDayStart, workDayEnd int64,
	capacity float64,
	route []*point.Point,
	maxStops int,
) (*Vehicle, error) {
	v := &Vehicle{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		v.setDepot(depot, depotMatrixIndex),
		v.setWorkDay(workDayStart, workDayEnd),
		v.setCapacity(capacity),
		v.setRoute(route),
		v.setMaxStops(maxStops),
	); err != nil {
		return nil, err
	}

	return v, nil
}

// Validate ensures the vehicle was created through NewVehicle.
func (v *Vehicle) Validate() error {
	if v == nil {
		return ErrVehicleIsNotConstructed
	}
	return v.guard.Validate(ErrVehicleIsNotConstructed)
}

func (v *Vehicle) Depot() *point.Point {
	return v.depot
}

func (v *Vehicle) DepotMatrixIndex() int {
	return v.depotMatrixIndex
}

func (v *Vehicle) WorkDayStart() int64 {
	return v.workDayStart
}

func (v *Vehicle) WorkDayEnd() int64 {
	return v.workDayEnd
}

func (v *Vehicle) Capacity() float64 {
	return v.capacity
}

func (v *Vehicle) MaxStops() int {
	return v.maxStops
}

// Route returns a copy of the ordered stops, or nil when the route is not resolved.
func (v *Vehicle) Route() []*point.Point {
	if v.route == nil {
		return nil
	}
	return append([]*point.Point{}, v.route...)
}

// IsRouteResolved reports whether a route was assigned, including an empty one.
func (v *Vehicle) IsRouteResolved() bool {
	return v.route != nil
}

func (v *Vehicle) setDepot(depot *point.Point, matrixIndex int) error {
	if depot == nil {
		return ErrDepotIsRequired
	}
	if err := depot.Validate(); err != nil {
		return err
	}
	if !depot.IsDepot() {
		return errs.NewValueIsInvalidErrorWithCause("depot",
			fmt.Errorf("point %q is not a depot", depot.Name()))
	}
	if matrixIndex < 0 {
		return errs.NewValueIsOutOfRangeError("depot matrix index", matrixIndex, 0, "unbounded")
	}
	v.depot = depot
	v.depotMatrixIndex = matrixIndex
	return nil
}

func (v *Vehicle) setWorkDay(start, end int64) error {
	if end < start {
		return errs.NewValueIsInvalidErrorWithCause("work day",
			fmt.Errorf("end %d precedes start %d", end, start))
	}
	v.workDayStart = start
	v.workDayEnd = end
	return nil
}

func (v *Vehicle) setCapacity(capacity float64) error {
	if capacity < 0 {
		return errs.NewValueIsOutOfRangeError("capacity", capacity, 0, "unbounded")
	}
	v.capacity = capacity
	return nil
}

func (v *Vehicle) setRoute(route []*point.Point) error {
	if route == nil {
		return nil
	}
	for i, stop := range route {
		if err := stop.Validate(); err != nil {
			return fmt.Errorf("route stop %d: %w", i, err)
		}
	}
	v.route = append([]*point.Point{}, route...)
	return nil
}

func (v *Vehicle) setMaxStops(maxStops int) error {
	if maxStops < 0 {
		return errs.NewValueIsOutOfRangeError("max stops", maxStops, 0, "unbounded")
	}
	v.maxStops = maxStops
	return nil
}
