// Package commands contains the operations that build routing plans from their
// two sources: instance text and structured payloads.
// Every command follows the same pattern: a validated command value and a
// handler that turns it into a RoutingPlan.
package commands

import (
	"context"

	"routing/internal/core/domain/model/kernel"
	"routing/internal/core/domain/model/point"
)

// MatrixBuilder computes the distance matrix of a point space when the source
// does not supply one.
type MatrixBuilder interface {
	Build(ctx context.Context, points []*point.Point, distances point.DistanceProvider) (kernel.DistanceMatrix, error)
}
