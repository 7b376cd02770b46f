package dataset

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/crosswalklabs/crosswalk/internal/logging"
)

// ReadCSVPair loads the two sides of a matching pass concurrently. The first
// load error wins and the other side's result is discarded.
func ReadCSVPair(ctx context.Context, leftPath, rightPath string) (*Table, *Table, error) {
	logger := logging.FromContext(ctx).With(slog.String("component", "dataset_loader"))

	var left, right *Table
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		left, err = readCSVContext(ctx, leftPath)
		return err
	})
	g.Go(func() error {
		var err error
		right, err = readCSVContext(ctx, rightPath)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	logging.LogOperation(logger, "dataset_pair_loaded",
		slog.String("left", leftPath),
		slog.Int("left_rows", left.Len()),
		slog.String("right", rightPath),
		slog.Int("right_rows", right.Len()))
	return left, right, nil
}

// readCSVContext skips the read when the group context is already dead.
func readCSVContext(ctx context.Context, path string) (*Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ReadCSV(path)
}
