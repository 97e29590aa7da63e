package kernel

import (
	"fmt"

	"routing/internal/pkg/errs"
	"routing/internal/pkg/guard"
)

// ErrTimeWindowIsNotConstructed is returned when a TimeWindow was not created via NewTimeWindow.
var ErrTimeWindowIsNotConstructed = errs.NewValueIsRequiredError(
	"time window must be created via NewTimeWindow constructor")

// TimeWindow is the interval in which a point accepts service together with the
// duration of the service itself. Only time-windowed instances carry one.
type TimeWindow struct {
	start       int64
	end         int64
	serviceTime int64
	guard       guard.ConstructorGuard
}

// NewTimeWindow creates a TimeWindow. The window must not end before it starts
// and the service time must not be negative.
func NewTimeWindow(start, end, serviceTime int64) (TimeWindow, error) {
	if end < start {
		return TimeWindow{}, errs.NewValueIsInvalidErrorWithCause(
			"time window", fmt.Errorf("end %d precedes start %d", end, start))
	}
	if serviceTime < 0 {
		return TimeWindow{}, errs.NewValueIsOutOfRangeError("service time", serviceTime, 0, "unbounded")
	}

	return TimeWindow{
		start:       start,
		end:         end,
		serviceTime: serviceTime,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (w TimeWindow) Validate() error {
	return w.guard.Validate(ErrTimeWindowIsNotConstructed)
}

func (w TimeWindow) Start() int64 {
	return w.start
}

func (w TimeWindow) End() int64 {
	return w.end
}

func (w TimeWindow) ServiceTime() int64 {
	return w.serviceTime
}
