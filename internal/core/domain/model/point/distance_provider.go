package point

// DistanceProvider measures the distance between two points of the same instance.
// Implementations must be safe for concurrent use.
type DistanceProvider interface {
	Distance(from, to *Point) (float64, error)
}
