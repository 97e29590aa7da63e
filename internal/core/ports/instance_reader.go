// Package ports defines the contracts between the routing core and its
// infrastructure: reading instance text into raw section records and publishing
// built plans to downstream consumers.
package ports

import (
	"context"
	"io"
)

// EuclideanEdgeWeight is the edge weight type whose instances carry no explicit
// distance matrix.
const EuclideanEdgeWeight = "EUC_2D"

// InstanceReader turns an instance text stream into its raw section records.
// Implementations must not close r.
type InstanceReader interface {
	// Read consumes r to the end of the depot section.
	//
	// Errors:
	//   - MalformedMetadata when a required metadata key is missing or unparsable
	//   - UnexpectedEndOfInput when the stream ends inside a section
	//   - ValueIsInvalid for malformed record lines
	Read(ctx context.Context, r io.Reader) (RawInstance, error)
}

// RawInstance holds the five sections of an instance in file order. Slices are
// indexed by matrix index, which is the 0-based parse order of the points.
type RawInstance struct {
	Metadata RawMetadata
	Points   []RawPoint
	// Matrix is nil unless the edge weight type requires an explicit matrix.
	Matrix  [][]float64
	Demands []RawDemand
	// DepotIndices are matrix indices in depot section order.
	DepotIndices []int
	// TimeWindowed is set when the demand records carry windows.
	TimeWindowed bool
}

// HasExplicitMatrix reports whether the instance is expected to supply its own distances.
func (r RawInstance) HasExplicitMatrix() bool {
	return r.Metadata.EdgeWeightType != EuclideanEdgeWeight
}

// RawMetadata is the metadata section.
type RawMetadata struct {
	DatasetName     string
	Type            string
	EdgeWeightType  string
	VehicleCount    int
	VehicleCapacity int
}

// RawPoint is one line of the coordinates section.
type RawPoint struct {
	ID        int
	Latitude  float64
	Longitude float64
	Name      string
}

// RawDemand is one line of the demand section. Records attach to points by
// line order; MatrixIndex is kept as written.
type RawDemand struct {
	MatrixIndex int
	Demand      float64
	// Window is nil for instances without time windows.
	Window *RawWindow
}

// RawWindow holds the time window columns of a demand record.
type RawWindow struct {
	Start       int64
	End         int64
	ServiceTime int64
}
