// Package kernel provides core domain primitives shared by the routing domain model.
//
// The package includes:
//   - Coordinates: a planar position (latitude, longitude) with Euclidean distance
//   - TimeWindow: a service window with its service duration
//   - DistanceMatrix: a square, immutable matrix of inter-point distances
//   - UUID: a value object identifying built plans
//
// All primitives are immutable value objects created through constructors; the
// zero value of each fails Validate.
package kernel
