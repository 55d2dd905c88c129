package catalog

import (
	"context"
	"errors"

	"catalog-manager/feature/catalog/store"

	"go.uber.org/zap"
)

// SyncOptions selects the sources of a catalog sync.
type SyncOptions struct {
	// Dir overrides the configured DAT directory.
	Dir string
	// Download fetches the configured archive URLs first.
	Download bool
	// FromStorage fetches the storage prefix first.
	FromStorage bool
}

// Service runs catalog syncs: fetch sources, then import the DAT directory.
type Service struct {
	store      *store.Store
	importer   *Importer
	downloader *Downloader
	bucket     *BucketSource
	cfg        Config
	logger     *zap.Logger
}

// NewService creates a catalog service. downloader and bucket may be nil when the
// corresponding source is not available.
func NewService(s *store.Store, cfg Config, downloader *Downloader, bucket *BucketSource, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:      s,
		importer:   NewImporter(s, cfg, logger),
		downloader: downloader,
		bucket:     bucket,
		cfg:        cfg,
		logger:     logger,
	}
}

// Importer returns the service's importer.
func (s *Service) Importer() *Importer {
	return s.importer
}

// Sync fetches the requested sources and imports every DAT in the directory. Failing
// sources are logged; the import still runs over what is on disk.
func (s *Service) Sync(ctx context.Context, opts SyncOptions) (Summary, error) {
	dir := opts.Dir
	if dir == "" {
		dir = s.cfg.DatsDir
	}

	if _, err := s.store.SeedCatalogs(ctx); err != nil {
		return Summary{}, err
	}

	if opts.Download {
		if s.downloader == nil {
			return Summary{}, errors.New("download requested but no downloader is configured")
		}
		for _, u := range s.cfg.DownloadURLs {
			files, err := s.downloader.Download(ctx, u, dir)
			if err != nil {
				s.logger.Error("Catalog download failed", zap.String("url", u), zap.Error(err))
				continue
			}
			s.archive(ctx, files)
		}
		if s.bucket != nil {
			if n, err := s.bucket.Prune(ctx); err != nil {
				s.logger.Warn("Failed to prune archived catalogs", zap.Int("removed", n), zap.Error(err))
			} else if n > 0 {
				s.logger.Info("Pruned archived catalogs", zap.Int("removed", n))
			}
		}
	}

	if opts.FromStorage {
		if s.bucket == nil {
			return Summary{}, errors.New("storage source requested but storage is not configured")
		}
		files, err := s.bucket.Fetch(ctx, dir)
		if err != nil {
			s.logger.Error("Catalog storage fetch failed", zap.Error(err))
		} else {
			s.logger.Info("Fetched catalogs from storage", zap.Int("files", len(files)))
		}
	}

	return s.importer.ImportDir(ctx, dir)
}

func (s *Service) archive(ctx context.Context, files []string) {
	if s.bucket == nil {
		return
	}
	for _, f := range files {
		catalog := CatalogFromPath(f)
		if catalog == "" {
			continue
		}
		key, err := s.bucket.Archive(ctx, catalog, f)
		if err != nil {
			s.logger.Warn("Failed to archive catalog file", zap.String("file", f), zap.Error(err))
			continue
		}
		if key != "" {
			s.logger.Debug("Archived catalog file", zap.String("key", key))
		}
	}
}
