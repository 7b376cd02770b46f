package match

import (
	"log/slog"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	// DefaultMinChunkSize is the smallest left-side chunk worth handing to
	// its own worker. Inputs that would partition below it run sequentially.
	DefaultMinChunkSize = 32
)

// Metric computes a non-negative edit distance between two text values.
// Implementations must be pure and safe for concurrent use; the engine calls
// them from several workers at once.
type Metric func(left, right string) int

// Options configures the matching behavior
type Options struct {
	// Workers is the maximum number of concurrent scoring goroutines.
	// Defaults to runtime.NumCPU().
	Workers int
	// MinChunkSize is the smallest left-side chunk that still gets its own
	// worker. Defaults to DefaultMinChunkSize.
	MinChunkSize int
	// Logger receives pass and progress logs. Defaults to slog.Default().
	Logger *slog.Logger
	// Registerer receives the engine's metrics. A private registry is used
	// when nil.
	Registerer prometheus.Registerer
}

// DefaultOptions returns sensible defaults
func DefaultOptions() Options {
	return Options{
		Workers:      runtime.NumCPU(),
		MinChunkSize: DefaultMinChunkSize,
	}
}

func (o Options) workers() int {
	if o.Workers <= 0 {
		return runtime.NumCPU()
	}
	return o.Workers
}

func (o Options) minChunkSize() int {
	if o.MinChunkSize <= 0 {
		return DefaultMinChunkSize
	}
	return o.MinChunkSize
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

// ScoredPair is one scored combination of a left value and a right value,
// keyed by the positions of both values in their sequences.
type ScoredPair struct {
	LeftIndex  int
	RightIndex int
	LeftValue  string
	RightValue string
	Distance   int
}

// MatchRecord is the best match found for one distinct left value. Ties on
// distance resolve to the right value scored earliest in right-sequence
// order.
type MatchRecord struct {
	LeftValue    string
	MatchedValue string
	Distance     int
}

// Result contains the selected matches and pass metadata
type Result struct {
	// RunID correlates logs, metrics, and persisted records for one pass.
	RunID   string
	Records []MatchRecord

	LeftRows    int
	RightRows   int
	PairsScored int
	// Chunks is the number of scoring partitions actually used; 1 means the
	// pass ran sequentially.
	Chunks  int
	Elapsed time.Duration
}
