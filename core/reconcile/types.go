package reconcile

import (
	"sync/atomic"

	"go.uber.org/zap"
)

const (
	// DefaultPageSize is the number of items loaded per page.
	DefaultPageSize = 50
	// DefaultConcurrency is the chunk width used when the CPU count is unavailable.
	DefaultConcurrency = 4
)

// Options tunes a sweep.
type Options struct {
	// PageSize is the number of items fetched per page.
	PageSize int
	// Concurrency is the chunk width. Zero derives it from the CPU count.
	Concurrency int
	// Logger receives per-item failures and progress.
	Logger *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.PageSize <= 0 {
		o.PageSize = DefaultPageSize
	}
	o.Concurrency = chunkWidth(o.Concurrency)
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// Stats summarizes a sweep or a chunked run.
type Stats struct {
	Pages     int
	Processed int
	Failed    int
}

// Add merges other into s.
func (s *Stats) Add(other Stats) {
	s.Pages += other.Pages
	s.Processed += other.Processed
	s.Failed += other.Failed
}

type counter struct {
	processed atomic.Int64
	failed    atomic.Int64
}

func (c *counter) stats() Stats {
	return Stats{Processed: int(c.processed.Load()), Failed: int(c.failed.Load())}
}
