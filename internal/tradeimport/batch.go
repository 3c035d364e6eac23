package tradeimport

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// ValidateFiles validates every path with at most parallel runs in flight.
// Results come back in the order of paths; a failing file never stops the
// others, it just yields an invalid report.
func (e *Engine) ValidateFiles(ctx context.Context, paths []string, parallel int) []*Result {
	results := make([]*Result, len(paths))
	if len(paths) == 0 {
		return results
	}
	if parallel < 1 {
		parallel = 1
	}

	e.logger.InfoContext(ctx, "batch validation started",
		slog.Int("files", len(paths)),
		slog.Int("parallel", parallel))

	var g errgroup.Group
	g.SetLimit(parallel)
	for i, path := range paths {
		g.Go(func() error {
			results[i] = e.ValidateFile(ctx, path)
			return nil
		})
	}
	_ = g.Wait()

	invalid := 0
	for _, res := range results {
		if !res.Report.Valid {
			invalid++
		}
	}
	e.logger.InfoContext(ctx, "batch validation completed",
		slog.Int("files", len(paths)),
		slog.Int("invalid", invalid))

	return results
}
