package services

import (
	"context"
	"fmt"
	"math"
	"runtime"

	"routing/internal/core/domain/model/kernel"
	"routing/internal/core/domain/model/point"

	"golang.org/x/sync/errgroup"
)

// MatrixScale is the fixed-point factor applied to every distance stored in a
// built matrix. Solvers work on the rounded integers.
const MatrixScale = 1000

// MatrixBuilder builds a full distance matrix for a point space.
//
// Each row is computed by its own goroutine; at most Workers rows are in flight.
// The matrix is returned only after every cell has been written.
type MatrixBuilder struct {
	// Workers bounds the number of rows computed concurrently. Zero means GOMAXPROCS.
	Workers int
}

// NewMatrixBuilder returns a MatrixBuilder bounded by GOMAXPROCS.
func NewMatrixBuilder() MatrixBuilder {
	return MatrixBuilder{}
}

// Build computes cell (i, j) as round(MatrixScale * distance(points[i], points[j]))
// for every ordered pair, the diagonal included.
func (b MatrixBuilder) Build(
	ctx context.Context,
	points []*point.Point,
	distances point.DistanceProvider,
) (kernel.DistanceMatrix, error) {
	if distances == nil {
		distances = EuclideanDistance{}
	}

	n := len(points)
	rows := make([][]float64, n)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.workers())

	for i := range points {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			row := make([]float64, n)
			for j := range points {
				d, err := distances.Distance(points[i], points[j])
				if err != nil {
					return fmt.Errorf("build matrix: cell (%d, %d): %w", i, j, err)
				}
				row[j] = Scale(d)
			}
			rows[i] = row
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return kernel.DistanceMatrix{}, err
	}

	return kernel.NewDistanceMatrix(rows)
}

func (b MatrixBuilder) workers() int {
	if b.Workers > 0 {
		return b.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// Scale converts a raw distance into its stored matrix value.
func Scale(distance float64) float64 {
	return math.Round(MatrixScale * distance)
}
