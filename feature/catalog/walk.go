package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"catalog-manager/core/reconcile"
	"catalog-manager/feature/catalog/dat"
	"catalog-manager/feature/catalog/store"

	"github.com/cespare/xxhash"
	"github.com/docker/go-units"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// catalogSegments maps directory names to signature catalog names.
var catalogSegments = map[string]string{
	"no-intro": "No-Intro",
	"nointro":  "No-Intro",
	"redump":   "Redump",
	"tosec":    "TOSEC",
	"mame":     "MAME",
}

// CatalogFromPath returns the catalog named by a segment of path, or "".
func CatalogFromPath(path string) string {
	for _, seg := range strings.FieldsFunc(filepath.ToSlash(path), func(r rune) bool { return r == '/' }) {
		if name, ok := catalogSegments[strings.ToLower(seg)]; ok {
			return name
		}
	}
	return ""
}

// SourceFile is a DAT document found on disk.
type SourceFile struct {
	Path    string
	Catalog string
	Size    int64
}

// Discover lists the DAT documents under dir, sorted by path. Files whose name contains
// the skip pattern, and files of other extensions, are ignored.
func (i *Importer) Discover(dir string) ([]SourceFile, error) {
	ext := "." + strings.TrimPrefix(i.cfg.Extension, ".")
	var out []SourceFile
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		name := d.Name()
		if !strings.EqualFold(filepath.Ext(name), ext) {
			return nil
		}
		if i.cfg.SkipPattern != "" && strings.Contains(name, i.cfg.SkipPattern) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(dir, path)
		out = append(out, SourceFile{Path: path, Catalog: CatalogFromPath(rel), Size: info.Size()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Path < out[b].Path })
	return out, nil
}

// HashFile returns the content hash recorded in the import ledger.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := xxhash.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	return fmt.Sprintf("%016x", h.Sum64()), nil
}

// Summary describes a directory import.
type Summary struct {
	Files    int
	Imported int
	Skipped  int
	Failed   int
	Games    reconcile.Stats
}

// ImportDir imports every DAT under dir. A file that cannot be parsed or written is
// logged and skipped; the run goes on with the next file.
func (i *Importer) ImportDir(ctx context.Context, dir string) (Summary, error) {
	var sum Summary

	files, err := i.Discover(dir)
	if err != nil {
		return sum, err
	}
	sum.Files = len(files)

	catalogs, err := i.store.ListCatalogs(ctx)
	if err != nil {
		return sum, fmt.Errorf("load catalogs: %w", err)
	}
	ids := make(map[string]uuid.UUID, len(catalogs))
	for _, c := range catalogs {
		ids[c.Name] = c.ID
	}

	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		l := i.logger.With(zap.String("file", f.Path))

		catalogID, ok := ids[f.Catalog]
		if !ok {
			l.Warn("Skipping file outside a known catalog directory")
			sum.Skipped++
			continue
		}

		hash, err := HashFile(f.Path)
		if err != nil {
			l.Error("Failed to hash file", zap.Error(err))
			sum.Failed++
			continue
		}

		res, err := i.Import(ctx, f.Path, catalogID, hash)
		if res != nil {
			sum.Games.Add(res.Games)
		}
		var perr *dat.ParseError
		switch {
		case errors.Is(err, ErrAlreadyImported):
			l.Debug("Already imported", zap.String("hash", hash))
			sum.Skipped++
		case errors.As(err, &perr):
			l.Error("Skipping malformed DAT", zap.Error(err))
			sum.Failed++
		case err != nil:
			l.Error("Import failed", zap.String("size", units.HumanSize(float64(f.Size))), zap.Error(err))
			sum.Failed++
		default:
			sum.Imported++
		}
	}

	i.logger.Info("Catalog import finished",
		zap.String("dir", dir),
		zap.Int("files", sum.Files),
		zap.Int("imported", sum.Imported),
		zap.Int("skipped", sum.Skipped),
		zap.Int("failed", sum.Failed),
	)
	return sum, nil
}

// CatalogDirs returns the directory name of every default signature catalog.
func CatalogDirs() []string {
	var dirs []string
	for _, c := range store.DefaultCatalogs() {
		dirs = append(dirs, catalogDir(c.Name))
	}
	return dirs
}
