package point

import (
	"errors"
	"fmt"
	"strings"

	"routing/internal/core/domain/model/kernel"
	"routing/internal/pkg/errs"
	"routing/internal/pkg/guard"
)

var (
	// ErrPointIsNotConstructed is returned when a Point was not created through NewPoint.
	ErrPointIsNotConstructed = errors.New("Point must be created via NewPoint constructor")
	// ErrNameIsRequired is returned when a point has an empty display name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrDemandIsRequired is returned when a customer point has no demand.
	ErrDemandIsRequired = errs.NewValueIsRequiredError("demand")
)

// Point is a customer or a depot of a routing instance.
//
// Identity within an instance is the pointer itself: routes and vehicle depots
// hold *Point values that refer back into the plan's point collection, and two
// route entries are the same stop only when they are the same pointer.
//
// Example:
//
//	coords, _ := kernel.NewCoordinates(3, 4)
//	demand := 12.0
//	p, err := point.NewPoint(2, "B", coords, &demand, nil, false)
type Point struct {
	// id is the external identifier from the instance source
	id int
	// name is the display label, also the key for peer distance lookups
	name string
	// coordinates is the planar position of the point
	coordinates kernel.Coordinates
	// demand is nil only for depots without a demand record
	demand *float64
	// window is nil unless the instance is time-windowed
	window *kernel.TimeWindow
	// depot marks points referenced by the instance's depot list
	depot bool
	guard guard.ConstructorGuard
}

// NewPoint creates a Point.
//
// Parameters:
//   - id: external identifier, unique within the instance
//   - name: display label, unique within the instance (must be non-empty)
//   - coordinates: planar position (must be constructed)
//   - demand: quantity to deliver; may be nil only when isDepot is true
//   - window: service window, nil for instances without time windows
//   - isDepot: whether vehicles start and end their trips here
//
// Returns:
//   - *Point: the constructed point
//   - error: all validation failures joined together
func NewPoint(
	id int,
	name string,
	coordinates kernel.Coordinates,
	demand *float64,
	window *kernel.TimeWindow,
	isDepot bool,
) (*Point, error) {
	p := &Point{
		id:    id,
		depot: isDepot,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setName(name),
		p.setCoordinates(coordinates),
		p.setDemand(demand),
		p.setWindow(window),
	); err != nil {
		return nil, fmt.Errorf("point %d: %w", id, err)
	}

	return p, nil
}

// Validate ensures the point was created through NewPoint.
func (p *Point) Validate() error {
	if p == nil {
		return ErrPointIsNotConstructed
	}
	return p.guard.Validate(ErrPointIsNotConstructed)
}

// ID returns the external identifier of the point.
func (p *Point) ID() int {
	return p.id
}

// Name returns the display label of the point.
func (p *Point) Name() string {
	return p.name
}

// Coordinates returns the planar position of the point.
func (p *Point) Coordinates() kernel.Coordinates {
	return p.coordinates
}

// Demand returns the demand and whether one was recorded.
func (p *Point) Demand() (float64, bool) {
	if p.demand == nil {
		return 0, false
	}
	return *p.demand, true
}

// TimeWindow returns the service window and whether the point has one.
func (p *Point) TimeWindow() (kernel.TimeWindow, bool) {
	if p.window == nil {
		return kernel.TimeWindow{}, false
	}
	return *p.window, true
}

// IsDepot reports whether vehicles are based at this point.
func (p *Point) IsDepot() bool {
	return p.depot
}

func (p *Point) String() string {
	kind := "customer"
	if p.depot {
		kind = "depot"
	}
	return fmt.Sprintf("%s id: %d | %s: %s", kind, p.id, p.name, p.coordinates)
}

func (p *Point) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	p.name = name
	return nil
}

func (p *Point) setCoordinates(coordinates kernel.Coordinates) error {
	if err := coordinates.Validate(); err != nil {
		return err
	}
	p.coordinates = coordinates
	return nil
}

func (p *Point) setDemand(demand *float64) error {
	if demand == nil {
		if !p.depot {
			return ErrDemandIsRequired
		}
		return nil
	}
	d := *demand
	p.demand = &d
	return nil
}

func (p *Point) setWindow(window *kernel.TimeWindow) error {
	if window == nil {
		return nil
	}
	if err := window.Validate(); err != nil {
		return err
	}
	w := *window
	p.window = &w
	return nil
}
