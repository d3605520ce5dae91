package wordgrid

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// FindAll runs FindWords over many grids concurrently, with at most workers
// searches in flight (unlimited if workers <= 0). Results are in input order.
// The first failing grid aborts the batch; a cancelled ctx stops scheduling
// further grids and is reported as the error.
func FindAll(ctx context.Context, f *Finder, grids []CharGrid, workers int) ([][]string, error) {
	results := make([][]string, len(grids))

	g, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	for i, grid := range grids {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			words, err := f.FindWords(grid)
			if err != nil {
				return fmt.Errorf("grid %d: %w", i, err)
			}
			results[i] = words
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
