package commands_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"routing/internal/adapters/out/tsplib"
	"routing/internal/core/application/usecases/commands"
	"routing/internal/core/domain/model/kernel"
	"routing/internal/core/domain/model/point"
	"routing/internal/core/domain/services"
	"routing/internal/core/ports"
	"routing/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const twoDepots = `NAME : T-n5-k5
TYPE : CVRP
EDGE_WEIGHT_TYPE : EUC_2D
CAPACITY : 30
NODE_COORD_SECTION
1 0 0 north
2 10 0 south
3 3 0
4 3 4
5 6 8
DEMAND_SECTION
1 0
2 0
3 5
4 7
5 9
DEPOT_SECTION
0
1
-1
EOF
`

const explicitWindows = `NAME : W-n3-k2
EDGE_WEIGHT_TYPE : EXPLICIT
CAPACITY : 10
NODE_COORD_SECTION
1 0 0 D
2 3 0 A
3 3 4 B
EDGE_WEIGHT_SECTION
0 30 50
30 0 40
50 40 0
EOF
DEMAND_SECTION
1 0 8 18 0
2 4 10 12 1
3 6 9 14 1
DEPOT_SECTION
0
-1
EOF
`

func writeInstance(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "instance.vrp")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o600))
	return path
}

func newFileHandler() commands.BuildPlanFromFileCommandHandler {
	return commands.NewBuildPlanFromFileCommandHandler(tsplib.NewReader(), services.NewMatrixBuilder())
}

func TestBuildPlanFromFileCommandHandler_Handle(t *testing.T) {
	t.Run("should assign depots round robin", func(t *testing.T) {
		cmd, _ := commands.NewBuildPlanFromFileCommand(writeInstance(t, twoDepots))

		p, err := newFileHandler().Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.Equal(t, "T-n5-k5", p.Name())
		assert.Equal(t, []int{0, 1}, p.DepotIndices())
		vehicles := p.Vehicles()
		require.Len(t, vehicles, 5)
		for i, v := range vehicles {
			assert.Equal(t, i%2, v.DepotMatrixIndex(), "vehicle %d", i)
			depot, _ := p.PointAt(i % 2)
			assert.Same(t, depot, v.Depot())
			assert.False(t, v.IsRouteResolved())
			assert.Equal(t, 3, v.MaxStops())
			assert.InDelta(t, 30.0, v.Capacity(), 0)
		}
	})

	t.Run("should build scaled matrix from coordinates", func(t *testing.T) {
		cmd, _ := commands.NewBuildPlanFromFileCommand(writeInstance(t, twoDepots))

		p, err := newFileHandler().Handle(t.Context(), cmd)

		require.NoError(t, err)
		m := p.Matrix()
		require.Equal(t, 5, m.Size())
		assert.InDelta(t, 3000.0, m.At(0, 2), 0)
		assert.InDelta(t, 5000.0, m.At(0, 3), 0)
		assert.InDelta(t, 10000.0, m.At(0, 4), 0)
		assert.Equal(t, []int{1, 2, 3, 4, 5}, p.IndexToExternalID())
	})

	t.Run("should keep supplied matrix and copy depot windows into work days", func(t *testing.T) {
		cmd, _ := commands.NewBuildPlanFromFileCommand(writeInstance(t, explicitWindows))

		p, err := newFileHandler().Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.True(t, p.IsTimeWindowed())
		assert.Equal(t, [][]float64{{0, 30, 50}, {30, 0, 40}, {50, 40, 0}}, p.Matrix().Rows())
		for _, v := range p.Vehicles() {
			assert.Equal(t, int64(8), v.WorkDayStart())
			assert.Equal(t, int64(18), v.WorkDayEnd())
		}
		b, _ := p.PointAt(2)
		w, ok := b.TimeWindow()
		require.True(t, ok)
		assert.Equal(t, int64(9), w.Start())
		assert.Equal(t, int64(1), w.ServiceTime())
	})

	t.Run("should fail with malformed metadata", func(t *testing.T) {
		path := writeInstance(t, "NAME : A-n1-k1\nCAPACITY : 1\nNODE_COORD_SECTION\n")
		cmd, _ := commands.NewBuildPlanFromFileCommand(path)

		_, err := newFileHandler().Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrMalformedMetadata)
		assert.Contains(t, err.Error(), path)
	})

	t.Run("should fail for a missing file", func(t *testing.T) {
		cmd, _ := commands.NewBuildPlanFromFileCommand(filepath.Join(t.TempDir(), "absent.vrp"))

		_, err := newFileHandler().Handle(t.Context(), cmd)

		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("should reject command built without constructor", func(t *testing.T) {
		_, err := newFileHandler().Handle(t.Context(), commands.BuildPlanFromFileCommand{})

		assert.ErrorIs(t, err, commands.ErrBuildPlanFromFileCommandIsNotConstructed)
	})
}

func TestBuildPlanFromTextCommandHandler_Handle(t *testing.T) {
	raw := ports.RawInstance{
		Metadata: ports.RawMetadata{
			DatasetName:     "M-n3-k3",
			EdgeWeightType:  ports.EuclideanEdgeWeight,
			VehicleCount:    3,
			VehicleCapacity: 12,
		},
		Points: []ports.RawPoint{
			{ID: 10, Latitude: 0, Longitude: 0, Name: "D"},
			{ID: 20, Latitude: 3, Longitude: 0, Name: "A"},
			{ID: 30, Latitude: 3, Longitude: 4, Name: "B"},
		},
		Demands:      []ports.RawDemand{{MatrixIndex: 1}, {MatrixIndex: 2, Demand: 4}, {MatrixIndex: 3, Demand: 6}},
		DepotIndices: []int{0},
	}

	t.Run("should build plan through the reader port", func(t *testing.T) {
		reader := new(MockInstanceReader)
		reader.On("Read", mock.Anything, mock.Anything).Return(raw, nil).Once()
		matrix, _ := kernel.NewDistanceMatrix([][]float64{{0, 3000, 5000}, {3000, 0, 4000}, {5000, 4000, 0}})
		matrices := new(MockMatrixBuilder)
		matrices.On("Build", mock.Anything, mock.AnythingOfType("[]*point.Point"), services.EuclideanDistance{}).
			Return(matrix, nil).Once()

		cmd, _ := commands.NewBuildPlanFromTextCommand("instance")
		p, err := commands.NewBuildPlanFromTextCommandHandler(reader, matrices).Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.Equal(t, []int{10, 20, 30}, p.IndexToExternalID())
		assert.Len(t, p.Vehicles(), 3)
		assert.Equal(t, matrix.Rows(), p.Matrix().Rows())
		reader.AssertExpectations(t)
		matrices.AssertExpectations(t)
	})

	t.Run("should fail when the instance lists no depot", func(t *testing.T) {
		noDepots := raw
		noDepots.DepotIndices = nil
		reader := new(MockInstanceReader)
		reader.On("Read", mock.Anything, mock.Anything).Return(noDepots, nil).Once()

		cmd, _ := commands.NewBuildPlanFromTextCommand("instance")
		_, err := commands.NewBuildPlanFromTextCommandHandler(reader, new(MockMatrixBuilder)).Handle(t.Context(), cmd)

		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should fail when a customer has no demand record", func(t *testing.T) {
		short := raw
		short.Demands = raw.Demands[:2]
		reader := new(MockInstanceReader)
		reader.On("Read", mock.Anything, mock.Anything).Return(short, nil).Once()

		cmd, _ := commands.NewBuildPlanFromTextCommand("instance")
		_, err := commands.NewBuildPlanFromTextCommandHandler(reader, new(MockMatrixBuilder)).Handle(t.Context(), cmd)

		assert.ErrorIs(t, err, point.ErrDemandIsRequired)
	})

	t.Run("should propagate matrix failures", func(t *testing.T) {
		boom := errors.New("boom")
		reader := new(MockInstanceReader)
		reader.On("Read", mock.Anything, mock.Anything).Return(raw, nil).Once()
		matrices := new(MockMatrixBuilder)
		matrices.On("Build", mock.Anything, mock.Anything, mock.Anything).Return(kernel.DistanceMatrix{}, boom).Once()

		cmd, _ := commands.NewBuildPlanFromTextCommand("instance")
		_, err := commands.NewBuildPlanFromTextCommandHandler(reader, matrices).Handle(t.Context(), cmd)

		assert.ErrorIs(t, err, boom)
	})

	t.Run("should read real instance text", func(t *testing.T) {
		cmd, _ := commands.NewBuildPlanFromTextCommand(twoDepots)
		handler := commands.NewBuildPlanFromTextCommandHandler(tsplib.NewReader(), services.NewMatrixBuilder())

		p, err := handler.Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.Len(t, p.Points(), 5)
	})
}
