package kernel

import (
	"fmt"
	"math"

	"routing/internal/pkg/errs"
	"routing/internal/pkg/guard"
)

// ErrCoordinatesAreNotConstructed is returned when Coordinates were not created via NewCoordinates.
var ErrCoordinatesAreNotConstructed = errs.NewValueIsRequiredError(
	"coordinates must be created via NewCoordinates constructor")

// Coordinates is a position on the instance plane. Instances use the
// latitude/longitude names for the two axes but distances are planar.
//
// Example:
//
//	a, _ := kernel.NewCoordinates(0, 0)
//	b, _ := kernel.NewCoordinates(3, 4)
//	a.EuclideanDistance(b) // 5
type Coordinates struct {
	latitude  float64
	longitude float64
	guard     guard.ConstructorGuard
}

// NewCoordinates creates Coordinates. Both values must be finite numbers.
func NewCoordinates(latitude, longitude float64) (Coordinates, error) {
	if math.IsNaN(latitude) || math.IsInf(latitude, 0) {
		return Coordinates{}, errs.NewValueIsInvalidErrorWithCause("latitude", fmt.Errorf("%v is not finite", latitude))
	}
	if math.IsNaN(longitude) || math.IsInf(longitude, 0) {
		return Coordinates{}, errs.NewValueIsInvalidErrorWithCause("longitude", fmt.Errorf("%v is not finite", longitude))
	}

	return Coordinates{
		latitude:  latitude,
		longitude: longitude,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate reports whether the coordinates were built by NewCoordinates.
func (c Coordinates) Validate() error {
	return c.guard.Validate(ErrCoordinatesAreNotConstructed)
}

func (c Coordinates) Latitude() float64 {
	return c.latitude
}

func (c Coordinates) Longitude() float64 {
	return c.longitude
}

// EuclideanDistance returns the straight-line distance to other. It is symmetric
// and zero for identical coordinates.
func (c Coordinates) EuclideanDistance(other Coordinates) float64 {
	return math.Hypot(other.latitude-c.latitude, other.longitude-c.longitude)
}

func (c Coordinates) String() string {
	return fmt.Sprintf("lat=%v, lon=%v", c.latitude, c.longitude)
}
