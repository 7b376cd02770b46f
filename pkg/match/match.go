// Package match implements fuzzy matching between two text sequences: every
// left value is scored against every right value with a caller-supplied edit
// distance metric, and the best-scoring right value is selected per distinct
// left value. Scoring runs across parallel contiguous chunks of the left
// side; results are deterministic regardless of chunking.
package match

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/crosswalklabs/crosswalk/internal/logging"
	"github.com/crosswalklabs/crosswalk/pkg/dataset"
)

// Matcher runs matching passes between two text sequences.
type Matcher struct {
	metric Metric
	opts   Options
	inst   *instruments
}

// NewMatcher creates a new Matcher with the given metric and options
func NewMatcher(metric Metric, opts Options) (*Matcher, error) {
	if metric == nil {
		return nil, ErrNilMetric
	}
	return &Matcher{
		metric: metric,
		opts:   opts,
		inst:   newInstruments(opts.Registerer),
	}, nil
}

// Match scores every left value against every right value and returns the
// best match per distinct left value, ordered by each value's first
// appearance on the left. An empty side yields an empty result, not an
// error. A metric failure in any chunk fails the whole pass and discards
// partial results.
func (m *Matcher) Match(ctx context.Context, left, right []string) (*Result, error) {
	start := time.Now()
	result := &Result{
		RunID:     uuid.NewString(),
		LeftRows:  len(left),
		RightRows: len(right),
	}
	logger := m.opts.logger().With(
		slog.String("component", "matcher"),
		slog.String("run_id", result.RunID),
	)

	if len(left) == 0 || len(right) == 0 {
		logger.Warn("nothing to match, returning empty result",
			slog.Int("left_rows", len(left)),
			slog.Int("right_rows", len(right)))
		result.Records = []MatchRecord{}
		result.Elapsed = time.Since(start)
		m.inst.passes.WithLabelValues("empty").Inc()
		return result, nil
	}

	spans := partitionSpans(len(left), m.opts.workers(), m.opts.minChunkSize())
	result.Chunks = len(spans)

	pairs, err := m.scoreAll(ctx, spans, left, right, logger)
	if err != nil {
		m.inst.passes.WithLabelValues("error").Inc()
		return nil, err
	}

	result.Records = selectBest(pairs)
	result.PairsScored = len(pairs)
	result.Elapsed = time.Since(start)

	m.inst.pairsScored.Add(float64(result.PairsScored))
	m.inst.duration.Observe(result.Elapsed.Seconds())
	m.inst.passes.WithLabelValues("ok").Inc()

	logging.LogOperation(logger, "match_pass_complete",
		slog.Int("records", len(result.Records)),
		slog.Int("pairs_scored", result.PairsScored),
		slog.Int("chunks", result.Chunks),
		slog.Duration("elapsed", result.Elapsed))

	return result, nil
}

// MatchColumns extracts one text column from each table and matches them.
func (m *Matcher) MatchColumns(ctx context.Context, left *dataset.Table, leftColumn string, right *dataset.Table, rightColumn string) (*Result, error) {
	leftValues, err := left.Column(leftColumn)
	if err != nil {
		return nil, fmt.Errorf("left table: %w", err)
	}
	rightValues, err := right.Column(rightColumn)
	if err != nil {
		return nil, fmt.Errorf("right table: %w", err)
	}
	return m.Match(ctx, leftValues, rightValues)
}

// scoreAll fans the spans out across workers and merges their pairs. A single
// span is scored inline on the calling goroutine. The first chunk failure
// cancels the remaining workers; when several chunks fail, the error from
// the earliest chunk by start position wins so reruns fail the same way.
func (m *Matcher) scoreAll(ctx context.Context, spans []span, left, right []string, logger *slog.Logger) ([]ScoredPair, error) {
	if len(spans) == 1 {
		pairs, err := m.scoreSpan(ctx, spans[0], left, right, logger)
		if err != nil {
			return nil, spanError(spans[0], err)
		}
		return pairs, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([][]ScoredPair, len(spans))
	errs := make([]error, len(spans))
	var wg sync.WaitGroup

	for w, sp := range spans {
		wg.Add(1)
		go func(w int, sp span) {
			defer wg.Done()
			pairs, err := m.scoreSpan(ctx, sp, left, right, logger)
			if err != nil {
				errs[w] = err
				cancel()
				return
			}
			results[w] = pairs
		}(w, sp)
	}
	wg.Wait()

	// Cancellation errors in sibling chunks are a consequence, not a cause;
	// only surface one when no chunk failed on its own.
	var ctxErr error
	for w, err := range errs {
		if err == nil {
			continue
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			if ctxErr == nil {
				ctxErr = err
			}
			continue
		}
		return nil, spanError(spans[w], err)
	}
	if ctxErr != nil {
		return nil, ctxErr
	}

	total := 0
	for _, pairs := range results {
		total += len(pairs)
	}
	merged := make([]ScoredPair, 0, total)
	for _, pairs := range results {
		merged = append(merged, pairs...)
	}
	return merged, nil
}

func spanError(sp span, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("scoring rows %d-%d: %w", sp.start, sp.end-1, err)
}
