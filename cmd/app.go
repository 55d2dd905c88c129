package cmd

import (
	"errors"
	"fmt"

	"catalog-manager/core/config"
	"catalog-manager/core/database"
	"catalog-manager/core/logger"
	"catalog-manager/core/reconcile"
	"catalog-manager/core/storage"
	"catalog-manager/core/transport"
	"catalog-manager/feature/catalog"
	"catalog-manager/feature/catalog/store"
	"catalog-manager/feature/igdb"
	"catalog-manager/feature/matching"

	"go.uber.org/zap"
)

// app holds the components shared by every command.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	store   *store.Store
	storage storage.Client
	lock    *reconcile.RunLock
}

// bootstrap loads configuration, builds the logger and connects to the database.
// Object storage is optional and stays nil when no endpoint is configured.
func bootstrap() (*app, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.Connect(cfg.Database, logg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	logg.Info("Connected to database", zap.String("driver", db.Dialector.Name()))

	a := &app{
		cfg:    cfg,
		logger: logg,
		store:  store.New(db),
		lock:   &reconcile.RunLock{},
	}

	client, err := storage.NewClient(cfg.Storage)
	switch {
	case errors.Is(err, storage.ErrNotConfigured):
		logg.Info("Object storage not configured")
	case err != nil:
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	default:
		a.storage = client
	}
	return a, nil
}

// catalogService wires the downloader and, when storage is configured, the bucket source.
func (a *app) catalogService() *catalog.Service {
	downloader := catalog.NewDownloader(transport.NewClient(a.cfg.Download, a.logger), a.logger)
	var bucket *catalog.BucketSource
	if a.storage != nil {
		bucket = catalog.NewBucketSource(a.storage, a.cfg.Storage.Bucket, a.cfg.Catalog, a.logger)
	}
	return catalog.NewService(a.store, a.cfg.Catalog, downloader, bucket, a.logger)
}

// igdbClient returns the cached provider client, or nil without credentials.
func (a *app) igdbClient() *igdb.CachedClient {
	if !a.cfg.IGDB.Enabled() {
		return nil
	}
	return igdb.NewCachedClient(igdb.NewClient(a.cfg.IGDB, a.logger), a.cfg.IGDB)
}

// engine builds the reconciliation engine. It fails without IGDB credentials.
func (a *app) engine() (*matching.Engine, error) {
	client := a.igdbClient()
	if client == nil {
		return nil, errors.New("IGDB credentials are not configured (IGDB_CLIENT_ID, IGDB_CLIENT_SECRET)")
	}
	return matching.NewEngine(a.store, client, a.cfg.Reconcile, a.logger), nil
}

func logSummary(l *zap.Logger, sum catalog.Summary) {
	l.Info("Catalog import finished",
		zap.Int("files", sum.Files),
		zap.Int("imported", sum.Imported),
		zap.Int("skipped", sum.Skipped),
		zap.Int("failed", sum.Failed),
		zap.Int("games", sum.Games.Processed),
		zap.Int("games_failed", sum.Games.Failed),
	)
}

func logReport(l *zap.Logger, report matching.Report) {
	for _, p := range matching.AllPhases {
		stats, ok := report[p]
		if !ok {
			continue
		}
		l.Info("Reconciliation phase finished",
			zap.String("phase", string(p)),
			zap.Int("pages", stats.Pages),
			zap.Int("processed", stats.Processed),
			zap.Int("failed", stats.Failed),
		)
	}
}
