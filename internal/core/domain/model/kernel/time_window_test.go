package kernel_test

import (
	"testing"

	"routing/internal/core/domain/model/kernel"
	"routing/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeWindow(t *testing.T) {
	t.Run("should create window", func(t *testing.T) {
		w, err := kernel.NewTimeWindow(0, 1236, 90)

		require.NoError(t, err)
		require.NoError(t, w.Validate())
		assert.Equal(t, int64(0), w.Start())
		assert.Equal(t, int64(1236), w.End())
		assert.Equal(t, int64(90), w.ServiceTime())
	})

	t.Run("should accept an instant window", func(t *testing.T) {
		_, err := kernel.NewTimeWindow(5, 5, 0)

		require.NoError(t, err)
	})

	t.Run("should reject end before start", func(t *testing.T) {
		_, err := kernel.NewTimeWindow(10, 9, 0)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject negative service time", func(t *testing.T) {
		_, err := kernel.NewTimeWindow(0, 10, -1)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}
