package kernel

import (
	"fmt"

	"routing/internal/pkg/errs"
	"routing/internal/pkg/guard"
)

// ErrDistanceMatrixIsNotConstructed is returned when a DistanceMatrix was not created via NewDistanceMatrix.
var ErrDistanceMatrixIsNotConstructed = errs.NewValueIsRequiredError(
	"distance matrix must be created via NewDistanceMatrix constructor")

// DistanceMatrix is a square matrix of distances whose rows and columns follow
// the plan's point ordering. Cell (i, j) is the distance from point i to point j.
//
// The matrix owns a private copy of its cells; accessors never expose the
// backing storage.
type DistanceMatrix struct {
	cells [][]float64
	guard guard.ConstructorGuard
}

// NewDistanceMatrix copies rows into a DistanceMatrix. Every row must have
// exactly len(rows) cells. An empty input yields an empty matrix.
//
// Example:
//
//	m, err := kernel.NewDistanceMatrix([][]float64{
//	    {0, 3000},
//	    {3000, 0},
//	})
func NewDistanceMatrix(rows [][]float64) (DistanceMatrix, error) {
	size := len(rows)
	cells := make([][]float64, size)
	for i, row := range rows {
		if len(row) != size {
			return DistanceMatrix{}, errs.NewValueIsInvalidErrorWithCause(
				"distance matrix", fmt.Errorf("row %d has %d cells, want %d", i, len(row), size))
		}
		cells[i] = append([]float64(nil), row...)
	}

	return DistanceMatrix{cells: cells, guard: guard.NewConstructorGuard()}, nil
}

func (m DistanceMatrix) Validate() error {
	return m.guard.Validate(ErrDistanceMatrixIsNotConstructed)
}

// Size returns the side length of the matrix.
func (m DistanceMatrix) Size() int {
	return len(m.cells)
}

// At returns cell (i, j). It panics when either index is outside [0..Size).
func (m DistanceMatrix) At(i, j int) float64 {
	return m.cells[i][j]
}

// Row returns a copy of row i.
func (m DistanceMatrix) Row(i int) []float64 {
	return append([]float64(nil), m.cells[i]...)
}

// Rows returns a deep copy of all cells.
func (m DistanceMatrix) Rows() [][]float64 {
	out := make([][]float64, len(m.cells))
	for i := range m.cells {
		out[i] = m.Row(i)
	}
	return out
}
