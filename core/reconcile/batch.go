package reconcile

import (
	"context"
	"runtime"
	"sync"

	"go.uber.org/zap"
)

// RunChunked runs fn over items, width at a time. Every chunk is joined before the next
// one starts. Failures are counted, never propagated, and do not cancel siblings.
// Items of chunks not yet started when ctx is cancelled are skipped. A width of zero
// uses the CPU count. Panics are recovered, counted as failures and logged.
func RunChunked[T any](ctx context.Context, items []T, width int, logger *zap.Logger, fn func(ctx context.Context, item T) error) Stats {
	width = chunkWidth(width)
	if logger == nil {
		logger = zap.NewNop()
	}

	var c counter
	for start := 0; start < len(items); start += width {
		if ctx.Err() != nil {
			break
		}
		end := start + width
		if end > len(items) {
			end = len(items)
		}

		var wg sync.WaitGroup
		for _, item := range items[start:end] {
			wg.Add(1)
			go func(item T) {
				defer wg.Done()
				defer func() {
					if r := recover(); r != nil {
						c.failed.Add(1)
						logger.Error("Recovered panic while processing item",
							zap.Any("item", item),
							zap.Any("panic", r),
							zap.Stack("stack"),
						)
					}
				}()
				if err := fn(ctx, item); err != nil {
					c.failed.Add(1)
					return
				}
				c.processed.Add(1)
			}(item)
		}
		wg.Wait()
	}
	return c.stats()
}

func chunkWidth(width int) int {
	if width > 0 {
		return width
	}
	if n := runtime.NumCPU(); n > 0 {
		return n
	}
	return DefaultConcurrency
}
