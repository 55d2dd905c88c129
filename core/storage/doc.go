// Package storage wraps the MinIO client used for DAT sources in object storage.
//
// The Client interface carries only the calls the application makes, so tests can
// swap in core/storage/mocks:
//
//   - BucketExists / MakeBucket: bucket checks before reads and archive writes.
//   - ListObjects / GetObject: fetching DAT documents and zip archives.
//   - PutObject: archiving downloads and creating folder markers.
//   - RemoveObjects: pruning old archives.
//
// Storage is optional. NewClient returns ErrNotConfigured when no endpoint is set.
//
//	client, err := storage.NewClient(cfg.Storage)
//	if errors.Is(err, storage.ErrNotConfigured) {
//	    // run without the bucket source
//	}
package storage
