package services

import (
	"fmt"

	"routing/internal/core/domain/model/kernel"
	"routing/internal/core/domain/model/point"
	"routing/internal/pkg/errs"
)

// ErrPointIsRequired is returned when a distance is requested for a nil point.
var ErrPointIsRequired = errs.NewValueIsRequiredError("point")

// EuclideanDistance measures the straight-line distance between the coordinates
// of two points. It is symmetric and zero for a point and itself.
type EuclideanDistance struct{}

var _ point.DistanceProvider = EuclideanDistance{}

func (EuclideanDistance) Distance(from, to *point.Point) (float64, error) {
	if from == nil || to == nil {
		return 0, ErrPointIsRequired
	}
	return from.Coordinates().EuclideanDistance(to.Coordinates()), nil
}

// PeerDistances serves distances supplied together with an instance, keyed by
// the display names of the two points.
//
// A point that has a row in the table must find every peer in it: a missing peer
// fails with UnknownPeer. Points without a row fall back to Euclidean distance.
// The table is read-only after construction and safe for concurrent use.
type PeerDistances struct {
	rows map[string]map[string]float64
}

var _ point.DistanceProvider = (*PeerDistances)(nil)

// NewPeerDistances builds the lookup from a matrix aligned to points: cell (i, j)
// becomes the distance from points[i] to points[j].
func NewPeerDistances(points []*point.Point, matrix kernel.DistanceMatrix) (*PeerDistances, error) {
	if err := matrix.Validate(); err != nil {
		return nil, err
	}
	if matrix.Size() != len(points) {
		return nil, errs.NewValueIsInvalidErrorWithCause("distance matrix",
			fmt.Errorf("side is %d, want %d", matrix.Size(), len(points)))
	}

	rows := make(map[string]map[string]float64, len(points))
	for i, from := range points {
		if from == nil {
			return nil, ErrPointIsRequired
		}
		if _, dup := rows[from.Name()]; dup {
			return nil, errs.NewValueIsInvalidErrorWithCause("point name",
				fmt.Errorf("name %q is not unique", from.Name()))
		}
		row := make(map[string]float64, len(points))
		for j, to := range points {
			row[to.Name()] = matrix.At(i, j)
		}
		rows[from.Name()] = row
	}

	return &PeerDistances{rows: rows}, nil
}

func (d *PeerDistances) Distance(from, to *point.Point) (float64, error) {
	if from == nil || to == nil {
		return 0, ErrPointIsRequired
	}

	row, ok := d.rows[from.Name()]
	if !ok {
		return EuclideanDistance{}.Distance(from, to)
	}
	distance, ok := row[to.Name()]
	if !ok {
		return 0, errs.NewUnknownPeerError(from.Name(), to.Name())
	}
	return distance, nil
}
