package jobs_test

import (
	"errors"
	"testing"

	"routing/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockJob struct {
	mock.Mock
}

func (m *MockJob) Start() error {
	return m.Called().Error(0)
}

func (m *MockJob) Stop() {
	m.Called()
}

func TestJobManager(t *testing.T) {
	t.Run("should start and stop every job", func(t *testing.T) {
		first, second := new(MockJob), new(MockJob)
		first.On("Start").Return(nil).Once()
		second.On("Start").Return(nil).Once()
		first.On("Stop").Once()
		second.On("Stop").Once()
		manager := jobs.NewJobManager(first, second)

		assert.NoError(t, manager.StartAll())
		manager.StopAll()

		first.AssertExpectations(t)
		second.AssertExpectations(t)
	})

	t.Run("should stop started jobs when one fails to start", func(t *testing.T) {
		boom := errors.New("bad schedule")
		first, second, third := new(MockJob), new(MockJob), new(MockJob)
		first.On("Start").Return(nil).Once()
		first.On("Stop").Once()
		second.On("Start").Return(boom).Once()

		err := jobs.NewJobManager(first, second, third).StartAll()

		assert.ErrorIs(t, err, boom)
		first.AssertExpectations(t)
		second.AssertNotCalled(t, "Stop")
		third.AssertNotCalled(t, "Start")
	})
}
