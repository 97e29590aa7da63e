// Package point provides the Point entity: a customer or depot location of a
// routing instance, together with the DistanceProvider contract used to measure
// the distance between two points.
//
// Key business rules:
//   - A point has a stable external id and a display name unique within its instance
//   - Demand is optional only for depots
//   - The time window is present only for time-windowed instances
//   - Points are immutable once constructed; routes reference them by pointer
package point
