package reconcile

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Sweep walks every item the adapter exposes: fetch a page after the cursor, split it
// into chunks of opts.Concurrency, run each chunk concurrently and wait for it before
// starting the next one. Pages are strictly ordered by key.
//
// Per-item errors are isolated. Sweep only fails when a page cannot be fetched or the
// context is cancelled.
func Sweep[T any](ctx context.Context, adapter Adapter[T], opts Options) (Stats, error) {
	opts = opts.withDefaults()
	l := opts.Logger.With(zap.String("sweep", adapter.Name()))

	var (
		total  Stats
		cursor string
	)

	for {
		if err := ctx.Err(); err != nil {
			return total, err
		}

		page, err := adapter.FetchPage(ctx, cursor, opts.PageSize)
		if err != nil {
			return total, fmt.Errorf("%s: fetch page after %q: %w", adapter.Name(), cursor, err)
		}
		if len(page) == 0 {
			break
		}
		total.Pages++

		stats := RunChunked(ctx, page, opts.Concurrency, l, func(ctx context.Context, item T) error {
			if err := adapter.Handle(ctx, item); err != nil {
				l.Error("Item failed", zap.String("key", adapter.Key(item)), zap.Error(err))
				return err
			}
			return nil
		})
		total.Processed += stats.Processed
		total.Failed += stats.Failed

		next := adapter.Key(page[len(page)-1])
		if next <= cursor {
			return total, fmt.Errorf("%s: cursor did not advance past %q", adapter.Name(), cursor)
		}
		cursor = next

		if len(page) < opts.PageSize {
			break
		}
	}

	l.Info("Sweep finished",
		zap.Int("pages", total.Pages),
		zap.Int("processed", total.Processed),
		zap.Int("failed", total.Failed),
	)
	return total, nil
}
