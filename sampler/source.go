package sampler

import (
	"time"

	"github.com/sgostarter/librecorder/recorder"
)

// Source reads the observed value at a point in time.
type Source func(at time.Time) (float64, error)

// FunctionSource replays f with x measured in seconds since origin. f is
// evaluated from the sampling goroutine only and must not be used elsewhere
// meanwhile.
func FunctionSource(f recorder.Function, origin time.Time) Source {
	return func(at time.Time) (float64, error) {
		return f.Y(at.Sub(origin).Seconds()), nil
	}
}
