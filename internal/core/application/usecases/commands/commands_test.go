package commands_test

import (
	"context"
	"io"

	"routing/internal/core/domain/model/kernel"
	"routing/internal/core/domain/model/point"
	"routing/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockInstanceReader struct{ mock.Mock }

func (m *MockInstanceReader) Read(ctx context.Context, r io.Reader) (ports.RawInstance, error) {
	args := m.Called(ctx, r)
	return args.Get(0).(ports.RawInstance), args.Error(1)
}

type MockMatrixBuilder struct{ mock.Mock }

func (m *MockMatrixBuilder) Build(
	ctx context.Context,
	points []*point.Point,
	distances point.DistanceProvider,
) (kernel.DistanceMatrix, error) {
	args := m.Called(ctx, points, distances)
	return args.Get(0).(kernel.DistanceMatrix), args.Error(1)
}

func ptr[T any](v T) *T {
	return &v
}
