// Package reconcile provides the sweep engine shared by every pipeline that walks a
// large set of rows and does slow work (network calls, writes) per row.
//
// # Model
//
// A sweep repeatedly fetches a page of items ordered by primary key, strictly after the
// last key it has seen (keyset pagination), splits the page into chunks and processes
// each chunk concurrently. A chunk is joined before the next one starts, and a page is
// finished before the next one is fetched:
//
//	page -> chunk -> spawn -> join -> next chunk ... -> next page
//
// Keyset pagination keeps sweeps correct while handlers mutate the rows being paged
// over: an item that stops matching the page query after being handled can not shift
// later items out of the next page, which is what offset pagination over a join does.
//
// # Failure Containment
//
// A failing item is logged with its key and counted in Stats. It never aborts the chunk,
// the page or the sweep. Only a failing page fetch or context cancellation ends a sweep
// early.
//
// # Components
//
//   - Adapter: plugs an entity type in (FetchPage, Key, Handle).
//   - Sweep: the paginated driver.
//   - RunChunked: the chunk/spawn/join primitive, also usable on in-memory slices.
//   - RunLock: keeps runs of the pipeline from overlapping inside one process.
//
// # Usage
//
//	stats, err := reconcile.Sweep(ctx, reconcile.FuncAdapter[models.Publisher]{
//	    AdapterName: "publishers",
//	    Fetch:       store.UnmatchedPublishers,
//	    KeyOf:       func(p models.Publisher) string { return p.ID.String() },
//	    Process:     matcher.MatchPublisher,
//	}, reconcile.Options{PageSize: 50, Concurrency: 4, Logger: logger})
package reconcile
