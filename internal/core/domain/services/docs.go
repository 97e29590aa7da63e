// Package services provides the domain services of routing instances that do not
// belong to a single entity: distance measurement between points and the
// construction of full distance matrices.
//
// The package includes:
//   - EuclideanDistance: straight-line distance from coordinates
//   - PeerDistances: lookup of authoritative distances supplied with an instance
//   - MatrixBuilder: parallel construction of a scaled integer distance matrix
package services
