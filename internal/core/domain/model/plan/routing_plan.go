package plan

import (
	"errors"
	"fmt"

	"routing/internal/core/domain/model/kernel"
	"routing/internal/core/domain/model/point"
	"routing/internal/core/domain/model/vehicle"
	"routing/internal/pkg/errs"
	"routing/internal/pkg/guard"
)

var (
	// ErrRoutingPlanIsNotConstructed is returned when a RoutingPlan was not created through NewRoutingPlan.
	ErrRoutingPlanIsNotConstructed = errors.New("RoutingPlan must be created via NewRoutingPlan constructor")
	// ErrNameIsRequired is returned when a plan has no dataset name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrDepotsAreRequired is returned when a plan has no depot.
	ErrDepotsAreRequired = errs.NewValueIsRequiredError("depots")
	// ErrDistanceProviderIsRequired is returned when a plan has no way to measure distances.
	ErrDistanceProviderIsRequired = errs.NewValueIsRequiredError("distance provider")
)

// RoutingPlan is the aggregate root of a routing instance.
//
// Invariants:
//   - Point ids and point names are unique within the plan
//   - Either every point carries a time window or none does, matching timeWindowed
//   - The distance matrix is square with side equal to the point count
//   - Every depot index refers to a point flagged as depot
//   - Every vehicle's depot is the plan point at its depot matrix index
//   - Every route stop is a point owned by the plan
//
// Example:
//
//	p, err := plan.NewRoutingPlan(
//	    "A-n32-k5", points, []int{0}, vehicles, matrix, false, services.EuclideanDistance{},
//	)
//	if err != nil {
//	    return err
//	}
//	total, err := p.TotalDistance()
type RoutingPlan struct {
	// id identifies this build of the plan
	id kernel.UUID
	// name is the dataset name of the instance
	name string
	// points is the contiguous point space, customers and depots together
	points []*point.Point
	// depotIndices lists the matrix indices of the depots in instance order
	depotIndices []int
	// indexToExternalID maps a matrix index to the point's external id
	indexToExternalID []int
	// vehicles in instance order
	vehicles []*vehicle.Vehicle
	// matrix is aligned to points
	matrix kernel.DistanceMatrix
	// timeWindowed marks instances where every point carries a time window
	timeWindowed bool
	// distances measures trips for metrics
	distances point.DistanceProvider
	guard     guard.ConstructorGuard
}

// NewRoutingPlan creates a RoutingPlan and checks every aggregate invariant.
//
// Parameters:
//   - name: dataset name (must be non-empty)
//   - points: the contiguous point space in matrix order
//   - depotIndices: matrix indices of the depots (at least one)
//   - vehicles: vehicles referencing points of this plan
//   - matrix: square distance matrix aligned to points
//   - timeWindowed: whether the instance carries time windows
//   - distances: provider used by trip metrics
//
// Returns:
//   - *RoutingPlan: the constructed plan with a fresh identifier
//   - error: all invariant violations joined together
func NewRoutingPlan(
	name string,
	points []*point.Point,
	depotIndices []int,
	vehicles []*vehicle.Vehicle,
	matrix kernel.DistanceMatrix,
	timeWindowed bool,
	distances point.DistanceProvider,
) (*RoutingPlan, error) {
	p := &RoutingPlan{
		id:           kernel.NewUUID(),
		timeWindowed: timeWindowed,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setName(name),
		p.setDistances(distances),
		p.setPoints(points),
	); err != nil {
		return nil, err
	}

	// the rest depends on a valid point space
	if err := errors.Join(
		p.setMatrix(matrix),
		p.setDepotIndices(depotIndices),
		p.setVehicles(vehicles),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// Validate ensures the plan was created through NewRoutingPlan.
func (p *RoutingPlan) Validate() error {
	if p == nil {
		return ErrRoutingPlanIsNotConstructed
	}
	return p.guard.Validate(ErrRoutingPlanIsNotConstructed)
}

// ID returns the identifier assigned when the plan was built.
func (p *RoutingPlan) ID() kernel.UUID {
	return p.id
}

// Name returns the dataset name.
func (p *RoutingPlan) Name() string {
	return p.name
}

// IsTimeWindowed reports whether the instance carries time windows.
func (p *RoutingPlan) IsTimeWindowed() bool {
	return p.timeWindowed
}

// Points returns the point space in matrix order. The slice is a copy; the
// points are the plan's own.
func (p *RoutingPlan) Points() []*point.Point {
	out := make([]*point.Point, len(p.points))
	copy(out, p.points)
	return out
}

// PointAt returns the point at matrix index i.
func (p *RoutingPlan) PointAt(i int) (*point.Point, error) {
	if i < 0 || i >= len(p.points) {
		return nil, errs.NewReferenceOutOfRangeError("matrix index", i, len(p.points))
	}
	return p.points[i], nil
}

// Depots returns the depot points in depot list order.
func (p *RoutingPlan) Depots() []*point.Point {
	out := make([]*point.Point, 0, len(p.depotIndices))
	for _, i := range p.depotIndices {
		out = append(out, p.points[i])
	}
	return out
}

// DepotIndices returns the matrix indices of the depots.
func (p *RoutingPlan) DepotIndices() []int {
	return append([]int(nil), p.depotIndices...)
}

// IndexToExternalID returns the external point id for every matrix index.
func (p *RoutingPlan) IndexToExternalID() []int {
	return append([]int(nil), p.indexToExternalID...)
}

// Vehicles returns the vehicles in instance order.
func (p *RoutingPlan) Vehicles() []*vehicle.Vehicle {
	out := make([]*vehicle.Vehicle, len(p.vehicles))
	copy(out, p.vehicles)
	return out
}

// Matrix returns the distance matrix aligned to Points.
func (p *RoutingPlan) Matrix() kernel.DistanceMatrix {
	return p.matrix
}

// IndexOf returns the matrix index of pt when it belongs to the plan.
func (p *RoutingPlan) IndexOf(pt *point.Point) (int, bool) {
	for i, own := range p.points {
		if own == pt {
			return i, true
		}
	}
	return 0, false
}

func (p *RoutingPlan) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	p.name = name
	return nil
}

func (p *RoutingPlan) setDistances(distances point.DistanceProvider) error {
	if distances == nil {
		return ErrDistanceProviderIsRequired
	}
	p.distances = distances
	return nil
}

func (p *RoutingPlan) setPoints(points []*point.Point) error {
	ids := make(map[int]int, len(points))
	names := make(map[string]int, len(points))
	externalIDs := make([]int, len(points))

	var problems []error
	for i, pt := range points {
		if err := pt.Validate(); err != nil {
			problems = append(problems, fmt.Errorf("point %d: %w", i, err))
			continue
		}
		if prev, ok := ids[pt.ID()]; ok {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause("point id",
				fmt.Errorf("id %d is used at indices %d and %d", pt.ID(), prev, i)))
		}
		if prev, ok := names[pt.Name()]; ok {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause("point name",
				fmt.Errorf("name %q is used at indices %d and %d", pt.Name(), prev, i)))
		}
		if _, windowed := pt.TimeWindow(); windowed != p.timeWindowed {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause("time window",
				fmt.Errorf("point %q disagrees with time windowed=%t", pt.Name(), p.timeWindowed)))
		}
		ids[pt.ID()] = i
		names[pt.Name()] = i
		externalIDs[i] = pt.ID()
	}
	if err := errors.Join(problems...); err != nil {
		return err
	}

	p.points = append([]*point.Point(nil), points...)
	p.indexToExternalID = externalIDs
	return nil
}

func (p *RoutingPlan) setMatrix(matrix kernel.DistanceMatrix) error {
	if err := matrix.Validate(); err != nil {
		return err
	}
	if matrix.Size() != len(p.points) {
		return errs.NewValueIsInvalidErrorWithCause("distance matrix",
			fmt.Errorf("side is %d, want %d", matrix.Size(), len(p.points)))
	}
	p.matrix = matrix
	return nil
}

func (p *RoutingPlan) setDepotIndices(indices []int) error {
	if len(indices) == 0 {
		return ErrDepotsAreRequired
	}
	for _, i := range indices {
		if i < 0 || i >= len(p.points) {
			return errs.NewReferenceOutOfRangeError("depot index", i, len(p.points))
		}
		if !p.points[i].IsDepot() {
			return errs.NewValueIsInvalidErrorWithCause("depot index",
				fmt.Errorf("point %q at %d is not a depot", p.points[i].Name(), i))
		}
	}
	p.depotIndices = append([]int(nil), indices...)
	return nil
}

func (p *RoutingPlan) setVehicles(vehicles []*vehicle.Vehicle) error {
	var problems []error
	for k, v := range vehicles {
		if err := v.Validate(); err != nil {
			problems = append(problems, fmt.Errorf("vehicle %d: %w", k, err))
			continue
		}
		i := v.DepotMatrixIndex()
		if i >= len(p.points) {
			problems = append(problems, fmt.Errorf("vehicle %d: %w", k,
				errs.NewReferenceOutOfRangeError("depot matrix index", i, len(p.points))))
			continue
		}
		if p.points[i] != v.Depot() {
			problems = append(problems, fmt.Errorf("vehicle %d: %w", k,
				errs.NewValueIsInvalidErrorWithCause("depot",
					fmt.Errorf("depot %q is not the plan point at index %d", v.Depot().Name(), i))))
		}
		for s, stop := range v.Route() {
			if _, ok := p.IndexOf(stop); !ok {
				problems = append(problems, fmt.Errorf("vehicle %d: %w", k,
					errs.NewObjectNotFoundError("route stop", s)))
			}
		}
	}
	if err := errors.Join(problems...); err != nil {
		return err
	}

	p.vehicles = append([]*vehicle.Vehicle(nil), vehicles...)
	return nil
}
