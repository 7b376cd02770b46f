package match

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/crosswalklabs/crosswalk/internal/logging"
)

// scoreSpan computes the full cross product of left[sp.start:sp.end] against
// right. The context is checked between left rows so a canceled pass stops
// without finishing its span.
func (m *Matcher) scoreSpan(ctx context.Context, sp span, left, right []string, logger *slog.Logger) ([]ScoredPair, error) {
	progress := rate.Sometimes{Interval: 2 * time.Second}

	pairs := make([]ScoredPair, 0, (sp.end-sp.start)*len(right))
	for i := sp.start; i < sp.end; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		progress.Do(func() {
			logging.LogOperation(logger, "scoring_progress",
				slog.Int("row", i),
				slog.Int("span_start", sp.start),
				slog.Int("span_end", sp.end))
		})

		for j := range right {
			d, err := m.safeScore(left[i], right[j], i, j)
			if err != nil {
				return nil, err
			}
			pairs = append(pairs, ScoredPair{
				LeftIndex:  i,
				RightIndex: j,
				LeftValue:  left[i],
				RightValue: right[j],
				Distance:   d,
			})
		}
	}
	return pairs, nil
}

// safeScore runs the metric on one pair, converting a panic or a negative
// distance into a *MetricError naming the pair.
func (m *Matcher) safeScore(leftValue, rightValue string, i, j int) (d int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &MetricError{
				LeftIndex:  i,
				RightIndex: j,
				LeftValue:  leftValue,
				RightValue: rightValue,
				Recovered:  r,
			}
		}
	}()

	d = m.metric(leftValue, rightValue)
	if d < 0 {
		return 0, &MetricError{
			LeftIndex:  i,
			RightIndex: j,
			LeftValue:  leftValue,
			RightValue: rightValue,
			Distance:   d,
		}
	}
	return d, nil
}
