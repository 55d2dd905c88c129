package catalog

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"catalog-manager/core/reconcile"
	"catalog-manager/feature/catalog/dat"
	"catalog-manager/feature/catalog/models"
	"catalog-manager/feature/catalog/naming"
	"catalog-manager/feature/catalog/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// ErrAlreadyImported is returned when the content hash is already in the import ledger.
var ErrAlreadyImported = errors.New("catalog content already imported")

// Result describes one imported file.
type Result struct {
	CatalogFile    *models.CatalogFile
	Import         *models.CatalogImport
	Games          reconcile.Stats
	GamesCreated   int
	FilesAdded     int
	FilesRemoved   int
	ClonesResolved int
	Duration       time.Duration
}

// Importer loads DAT files into the catalog graph.
type Importer struct {
	store  *store.Store
	cfg    Config
	logger *zap.Logger
}

// NewImporter creates an importer.
func NewImporter(s *store.Store, cfg Config, logger *zap.Logger) *Importer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Extension == "" {
		cfg.Extension = "dat"
	}
	return &Importer{store: s, cfg: cfg, logger: logger}
}

// Import loads the DAT at path into catalogID. Content already recorded under
// contentHash is skipped with ErrAlreadyImported.
//
// Publisher and platform are created on first sighting and the catalog file is
// version-bumped in place. A pending ledger row is written before any game so every
// game always references an existing import. Games are written in chunks; a game that
// fails is logged and skipped. The row is only marked complete once every game
// succeeded, so a partial import is retried by the next run and reuses the row.
func (i *Importer) Import(ctx context.Context, path string, catalogID uuid.UUID, contentHash string) (*Result, error) {
	start := time.Now()
	l := i.logger.With(zap.String("file", filepath.Base(path)))

	exists, err := i.store.ImportExists(ctx, contentHash)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyImported
	}

	doc, err := dat.ParseFile(path)
	if err != nil {
		return nil, err
	}

	header := naming.ParsePublisherAndPlatform(doc.Header.Name, doc.Header.Version, doc.Header.Subset)
	if header.Platform == "" {
		return nil, fmt.Errorf("%s: header %q names no platform", path, doc.Header.Name)
	}

	var publisherID *uuid.UUID
	if header.Publisher != nil {
		pub, err := i.store.FindOrCreatePublisher(ctx, *header.Publisher)
		if err != nil {
			return nil, err
		}
		publisherID = &pub.ID
	}

	platform, err := i.store.FindOrCreatePlatform(ctx, header.Platform, publisherID)
	if err != nil {
		return nil, err
	}

	file := &models.CatalogFile{
		CatalogID:      catalogID,
		Name:           naming.SanitizeName(filepath.Base(path), i.cfg.Extension, doc.Header.Version),
		PublisherID:    publisherID,
		PlatformID:     platform.ID,
		CurrentVersion: doc.Header.Version,
		Tags:           datatypes.JSONSlice[string](header.Tags),
		Subset:         doc.Header.Subset,
	}
	if _, err := i.store.UpsertCatalogFile(ctx, file); err != nil {
		return nil, err
	}

	imp := &models.CatalogImport{
		ID:             uuid.New(),
		CatalogFileID:  file.ID,
		SourceFileName: filepath.Base(path),
		ContentHash:    contentHash,
		Version:        doc.Header.Version,
	}
	if err := i.store.BeginImport(ctx, imp); err != nil {
		if errors.Is(err, store.ErrImportCompleted) {
			return nil, ErrAlreadyImported
		}
		return nil, err
	}

	games := mergeDuplicates(doc.Games)
	res := &Result{CatalogFile: file, Import: imp}
	var tally tally
	res.Games = reconcile.RunChunked(ctx, games, i.cfg.Concurrency, l, func(ctx context.Context, g dat.Game) error {
		if err := i.importGame(ctx, file.ID, imp.ID, g, &tally); err != nil {
			l.Error("Failed to import game", zap.String("game", g.Name), zap.Error(err))
			return err
		}
		return nil
	})
	res.GamesCreated, res.FilesAdded, res.FilesRemoved = tally.totals()

	res.ClonesResolved, err = i.store.ResolveClones(ctx, file.ID)
	if err != nil {
		return res, fmt.Errorf("resolve clones of %s: %w", file.Name, err)
	}

	if err := ctx.Err(); err != nil {
		return res, err
	}
	if res.Games.Failed > 0 {
		return res, fmt.Errorf("%s: %d of %d games failed", file.Name, res.Games.Failed, len(games))
	}
	if err := i.store.CompleteImport(ctx, imp); err != nil {
		return res, err
	}

	res.Duration = time.Since(start)
	l.Info("Catalog file imported",
		zap.String("catalog_file", file.Name),
		zap.String("version", file.CurrentVersion),
		zap.Int("games", res.Games.Processed),
		zap.Int("games_created", res.GamesCreated),
		zap.Int("files_added", res.FilesAdded),
		zap.Int("files_removed", res.FilesRemoved),
		zap.Int("clones_resolved", res.ClonesResolved),
		zap.Duration("duration", res.Duration),
	)
	return res, nil
}

func (i *Importer) importGame(ctx context.Context, catalogFileID, importID uuid.UUID, g dat.Game, t *tally) error {
	incoming := toGame(catalogFileID, importID, g)

	existing, err := i.store.FindGame(ctx, catalogFileID, g.Name)
	if err != nil {
		return err
	}
	if existing == nil {
		if err := i.store.CreateGame(ctx, incoming); err != nil {
			return err
		}
		t.add(1, len(incoming.Files), 0)
		return nil
	}

	diff, err := i.store.SyncGameFiles(ctx, existing, incoming)
	if err != nil {
		return err
	}
	t.add(0, diff.Added, diff.Removed)
	return nil
}

func toGame(catalogFileID, importID uuid.UUID, g dat.Game) *models.Game {
	game := &models.Game{
		CatalogFileID:     catalogFileID,
		CatalogImportID:   importID,
		Name:              g.Name,
		InternalID:        g.InternalID,
		InternalCloneOfID: g.CloneOfInternalID,
	}
	if g.Description != "" && g.Description != g.Name {
		desc := g.Description
		game.Description = &desc
	}
	if len(g.Categories) > 0 {
		game.Categories = datatypes.JSONSlice[string](g.Categories)
	}
	game.Files = make([]models.GameFile, 0, len(g.Files))
	for _, f := range g.Files {
		gf := models.GameFile{
			FileName: f.Name,
			Size:     f.Size,
			MD5:      f.MD5,
			SHA1:     f.SHA1,
			SHA256:   f.SHA256,
			Status:   f.Status,
			Serial:   f.Serial,
		}
		if f.CRC != "" {
			crc := f.CRC
			gf.CRC = &crc
		}
		game.Files = append(game.Files, gf)
	}
	return game
}

// mergeDuplicates folds games repeated under the same name into the first entry, so
// concurrent writers never race on one (catalog file, name) row.
func mergeDuplicates(games []dat.Game) []dat.Game {
	index := make(map[string]int, len(games))
	out := make([]dat.Game, 0, len(games))
	for _, g := range games {
		if at, ok := index[g.Name]; ok {
			out[at].Files = append(out[at].Files, g.Files...)
			continue
		}
		index[g.Name] = len(out)
		out = append(out, g)
	}
	return out
}

type tally struct {
	mu      sync.Mutex
	created int
	added   int
	removed int
}

func (t *tally) add(created, added, removed int) {
	t.mu.Lock()
	t.created += created
	t.added += added
	t.removed += removed
	t.mu.Unlock()
}

func (t *tally) totals() (int, int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.created, t.added, t.removed
}
