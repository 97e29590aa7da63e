package jobs_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"routing/internal/adapters/out/tsplib"
	"routing/internal/core/application/usecases/commands"
	"routing/internal/core/domain/model/plan"
	"routing/internal/core/domain/services"
	"routing/internal/jobs"
	"routing/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPlanPublisher struct {
	mock.Mock
}

func (m *MockPlanPublisher) Publish(ctx context.Context, p *plan.RoutingPlan) error {
	return m.Called(ctx, p).Error(0)
}

const instance = `NAME : J-n3-k1
EDGE_WEIGHT_TYPE : EUC_2D
CAPACITY : 9
NODE_COORD_SECTION
1 0 0 D
2 3 0 A
3 3 4 B
DEMAND_SECTION
1 0
2 5
3 4
DEPOT_SECTION
0
-1
EOF
`

func writeFile(t *testing.T, dir, name, text string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(text), 0o600))
}

func newJob(inbox string, publisher *MockPlanPublisher) *jobs.InstanceImportJob {
	handler := commands.NewBuildPlanFromFileCommandHandler(tsplib.NewReader(), services.NewMatrixBuilder())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return jobs.NewInstanceImportJob(handler, publisher, inbox, "", logger)
}

func TestInstanceImportJob_RunOnce(t *testing.T) {
	t.Run("should publish each new instance once", func(t *testing.T) {
		inbox := t.TempDir()
		writeFile(t, inbox, "a.vrp", instance)
		writeFile(t, inbox, "notes.txt", "not an instance")
		publisher := new(MockPlanPublisher)
		publisher.On("Publish", mock.Anything, mock.AnythingOfType("*plan.RoutingPlan")).Return(nil).Once()
		job := newJob(inbox, publisher)

		published, err := job.RunOnce(t.Context())
		require.NoError(t, err)
		assert.Equal(t, 1, published)

		published, err = job.RunOnce(t.Context())
		require.NoError(t, err)
		assert.Zero(t, published)
		publisher.AssertExpectations(t)
	})

	t.Run("should pick up files added later", func(t *testing.T) {
		inbox := t.TempDir()
		writeFile(t, inbox, "a.vrp", instance)
		publisher := new(MockPlanPublisher)
		publisher.On("Publish", mock.Anything, mock.Anything).Return(nil).Twice()
		job := newJob(inbox, publisher)

		_, err := job.RunOnce(t.Context())
		require.NoError(t, err)
		writeFile(t, inbox, "b.vrp", instance)
		published, err := job.RunOnce(t.Context())

		require.NoError(t, err)
		assert.Equal(t, 1, published)
		publisher.AssertExpectations(t)
	})

	t.Run("should skip a broken instance without retrying it", func(t *testing.T) {
		inbox := t.TempDir()
		writeFile(t, inbox, "a.vrp", instance)
		writeFile(t, inbox, "broken.vrp", "NAME : B-n1-k1\n")
		publisher := new(MockPlanPublisher)
		publisher.On("Publish", mock.Anything, mock.Anything).Return(nil).Once()
		job := newJob(inbox, publisher)

		published, err := job.RunOnce(t.Context())
		assert.Equal(t, 1, published)
		require.ErrorIs(t, err, errs.ErrUnexpectedEndOfInput)
		assert.Contains(t, err.Error(), "broken.vrp")

		_, err = job.RunOnce(t.Context())
		assert.NoError(t, err)
	})

	t.Run("should retry when publishing fails", func(t *testing.T) {
		inbox := t.TempDir()
		writeFile(t, inbox, "a.vrp", instance)
		boom := errors.New("broker down")
		publisher := new(MockPlanPublisher)
		publisher.On("Publish", mock.Anything, mock.Anything).Return(boom).Once()
		publisher.On("Publish", mock.Anything, mock.Anything).Return(nil).Once()
		job := newJob(inbox, publisher)

		published, err := job.RunOnce(t.Context())
		assert.Zero(t, published)
		assert.ErrorIs(t, err, boom)

		published, err = job.RunOnce(t.Context())
		require.NoError(t, err)
		assert.Equal(t, 1, published)
	})

	t.Run("should stop on cancelled context", func(t *testing.T) {
		inbox := t.TempDir()
		writeFile(t, inbox, "a.vrp", instance)
		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		published, err := newJob(inbox, new(MockPlanPublisher)).RunOnce(ctx)

		assert.Zero(t, published)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestInstanceImportJob_Start(t *testing.T) {
	t.Run("should reject an invalid schedule", func(t *testing.T) {
		handler := commands.NewBuildPlanFromFileCommandHandler(tsplib.NewReader(), services.NewMatrixBuilder())
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		job := jobs.NewInstanceImportJob(handler, new(MockPlanPublisher), t.TempDir(), "every minute", logger)

		assert.Error(t, job.Start())
	})

	t.Run("should start and stop", func(t *testing.T) {
		job := newJob(t.TempDir(), new(MockPlanPublisher))

		require.NoError(t, job.Start())
		job.Stop()
	})
}
