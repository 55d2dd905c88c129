package reconcile

import "context"

// Adapter plugs an entity type into the sweep engine.
//
// FetchPage must return items ordered by Key, strictly after the cursor. Items written
// by Handle may drop out of (or stay in) later pages; the cursor only moves forward,
// so neither case skips or repeats an item within one sweep.
type Adapter[T any] interface {
	// Name is used in logs.
	Name() string
	// FetchPage loads up to limit items with a key greater than after ("" for the first page).
	FetchPage(ctx context.Context, after string, limit int) ([]T, error)
	// Key returns the cursor key of an item (its primary key).
	Key(item T) string
	// Handle processes a single item. A returned error is logged and counted; it never
	// stops the sweep.
	Handle(ctx context.Context, item T) error
}

// FuncAdapter builds an Adapter from plain functions.
type FuncAdapter[T any] struct {
	AdapterName string
	Fetch       func(ctx context.Context, after string, limit int) ([]T, error)
	KeyOf       func(item T) string
	Process     func(ctx context.Context, item T) error
}

func (f FuncAdapter[T]) Name() string { return f.AdapterName }

func (f FuncAdapter[T]) FetchPage(ctx context.Context, after string, limit int) ([]T, error) {
	return f.Fetch(ctx, after, limit)
}

func (f FuncAdapter[T]) Key(item T) string { return f.KeyOf(item) }

func (f FuncAdapter[T]) Handle(ctx context.Context, item T) error { return f.Process(ctx, item) }
