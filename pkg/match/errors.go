package match

import (
	"errors"
	"fmt"
)

var (
	// ErrNilMetric is returned by NewMatcher when no metric is supplied.
	ErrNilMetric = errors.New("match: metric is required")

	// ErrNegativeDistance indicates a metric produced a negative distance.
	// Errors carrying it are always of type *MetricError.
	ErrNegativeDistance = errors.New("match: metric returned negative distance")
)

// MetricError reports a metric failure on a specific input pair. It either
// wraps ErrNegativeDistance or carries the value recovered from a metric
// panic. A MetricError is terminal for the whole pass.
type MetricError struct {
	LeftIndex  int
	RightIndex int
	LeftValue  string
	RightValue string
	Distance   int
	Recovered  any
}

func (e *MetricError) Error() string {
	if e.Recovered != nil {
		return fmt.Sprintf("match: metric panicked on pair (%d, %d) %q vs %q: %v",
			e.LeftIndex, e.RightIndex, e.LeftValue, e.RightValue, e.Recovered)
	}
	return fmt.Sprintf("match: metric returned negative distance %d on pair (%d, %d) %q vs %q",
		e.Distance, e.LeftIndex, e.RightIndex, e.LeftValue, e.RightValue)
}

func (e *MetricError) Unwrap() error {
	if e.Recovered != nil {
		return nil
	}
	return ErrNegativeDistance
}
