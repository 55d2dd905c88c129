package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"catalog-manager/feature/catalog/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Store is the gorm repository of the catalog graph.
type Store struct {
	db *gorm.DB
}

// New creates a store over db.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB returns the underlying connection.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// DefaultCatalogs are the signature catalogs every installation knows about.
func DefaultCatalogs() []models.SignatureCatalog {
	link := func(s string) *string { return &s }
	return []models.SignatureCatalog{
		{Name: "No-Intro", Link: link("https://no-intro.org/"), Description: link("Cartridge and digital dumps")},
		{Name: "Redump", Link: link("http://redump.org/"), Description: link("Optical disc dumps")},
		{Name: "TOSEC", Link: link("https://www.tosecdev.org/"), Description: link("The Old School Emulation Center")},
		{Name: "MAME", Link: link("https://mamedev.org/"), Description: link("Arcade machine sets")},
	}
}

// SeedCatalogs inserts the default catalogs that do not exist yet and returns how
// many were created.
func (s *Store) SeedCatalogs(ctx context.Context) (int, error) {
	created := 0
	for _, c := range DefaultCatalogs() {
		existing, err := s.FindCatalogByName(ctx, c.Name)
		if err != nil {
			return created, fmt.Errorf("seed catalog %s: %w", c.Name, err)
		}
		if existing != nil {
			continue
		}
		if err := s.db.WithContext(ctx).Create(&c).Error; err != nil {
			return created, fmt.Errorf("seed catalog %s: %w", c.Name, err)
		}
		created++
	}
	return created, nil
}

// FindCatalogByName returns the catalog named name, ignoring case, or nil.
func (s *Store) FindCatalogByName(ctx context.Context, name string) (*models.SignatureCatalog, error) {
	var c models.SignatureCatalog
	err := s.db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name).First(&c).Error
	return found(&c, err)
}

// ListCatalogs returns every catalog ordered by name.
func (s *Store) ListCatalogs(ctx context.Context) ([]models.SignatureCatalog, error) {
	var out []models.SignatureCatalog
	err := s.db.WithContext(ctx).Order("name").Find(&out).Error
	return out, err
}

// FindOrCreatePublisher returns the publisher named name, creating it on first sighting.
func (s *Store) FindOrCreatePublisher(ctx context.Context, name string) (*models.Publisher, error) {
	p := models.Publisher{Name: name}
	if err := s.db.WithContext(ctx).Where(models.Publisher{Name: name}).FirstOrCreate(&p).Error; err != nil {
		return nil, fmt.Errorf("find or create publisher %q: %w", name, err)
	}
	return &p, nil
}

// FindOrCreatePlatform returns the platform named name, creating it on first sighting.
// An existing platform without a publisher is linked to publisherID.
func (s *Store) FindOrCreatePlatform(ctx context.Context, name string, publisherID *uuid.UUID) (*models.Platform, error) {
	db := s.db.WithContext(ctx)
	p := models.Platform{Name: name, PublisherID: publisherID}
	if err := db.Where(models.Platform{Name: name}).Attrs(models.Platform{PublisherID: publisherID}).FirstOrCreate(&p).Error; err != nil {
		return nil, fmt.Errorf("find or create platform %q: %w", name, err)
	}
	if p.PublisherID == nil && publisherID != nil {
		if err := db.Model(&p).Update("publisher_id", publisherID).Error; err != nil {
			return nil, fmt.Errorf("link platform %q to publisher: %w", name, err)
		}
		p.PublisherID = publisherID
	}
	return &p, nil
}

// UpsertCatalogFile finds the catalog file by its identity (catalog, name, publisher,
// platform) and bumps its version in place, or inserts it. The returned flag reports
// whether anything was written.
func (s *Store) UpsertCatalogFile(ctx context.Context, file *models.CatalogFile) (bool, error) {
	db := s.db.WithContext(ctx)

	q := db.Where("catalog_id = ? AND name = ? AND platform_id = ?", file.CatalogID, file.Name, file.PlatformID)
	if file.PublisherID == nil {
		q = q.Where("publisher_id IS NULL")
	} else {
		q = q.Where("publisher_id = ?", *file.PublisherID)
	}

	var existing models.CatalogFile
	err := q.First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := db.Create(file).Error; err != nil {
			return false, fmt.Errorf("create catalog file %q: %w", file.Name, err)
		}
		return true, nil
	case err != nil:
		return false, fmt.Errorf("find catalog file %q: %w", file.Name, err)
	}

	file.ID = existing.ID
	file.CreatedAt = existing.CreatedAt
	if existing.CurrentVersion == file.CurrentVersion {
		*file = existing
		return false, nil
	}

	err = db.Model(&existing).Updates(map[string]any{
		"current_version": file.CurrentVersion,
		"tags":            file.Tags,
		"subset":          file.Subset,
	}).Error
	if err != nil {
		return false, fmt.Errorf("update catalog file %q: %w", file.Name, err)
	}
	return true, nil
}

// ErrImportCompleted is returned when a ledger row for the content hash is already complete.
var ErrImportCompleted = errors.New("import already completed")

// ImportExists reports whether content with this hash was already imported to completion.
func (s *Store) ImportExists(ctx context.Context, contentHash string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.CatalogImport{}).
		Where("content_hash = ? AND completed_at IS NOT NULL", contentHash).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check import %s: %w", contentHash, err)
	}
	return count > 0, nil
}

// BeginImport writes the pending ledger row games of this import will reference. A row
// left pending by an earlier run of the same content is reused and imp takes its ID.
func (s *Store) BeginImport(ctx context.Context, imp *models.CatalogImport) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.CatalogImport
		err := tx.Where("content_hash = ?", imp.ContentHash).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			imp.CompletedAt = nil
			if err := tx.Create(imp).Error; err != nil {
				return fmt.Errorf("record import %s: %w", imp.ContentHash, err)
			}
			return nil
		}
		if err != nil {
			return fmt.Errorf("find import %s: %w", imp.ContentHash, err)
		}
		if existing.CompletedAt != nil {
			return fmt.Errorf("import %s: %w", imp.ContentHash, ErrImportCompleted)
		}

		imp.ID = existing.ID
		imp.ImportedAt = time.Now().UTC()
		imp.CompletedAt = nil
		err = tx.Model(&existing).Updates(map[string]any{
			"catalog_file_id":  imp.CatalogFileID,
			"source_file_name": imp.SourceFileName,
			"version":          imp.Version,
			"imported_at":      imp.ImportedAt,
		}).Error
		if err != nil {
			return fmt.Errorf("reopen import %s: %w", imp.ContentHash, err)
		}
		return nil
	})
}

// CompleteImport marks a pending ledger row as done.
func (s *Store) CompleteImport(ctx context.Context, imp *models.CatalogImport) error {
	now := time.Now().UTC()
	if err := s.db.WithContext(ctx).Model(imp).Update("completed_at", now).Error; err != nil {
		return fmt.Errorf("complete import %s: %w", imp.ContentHash, err)
	}
	imp.CompletedAt = &now
	return nil
}

// ListImports returns the most recent imports first, pending ones included.
func (s *Store) ListImports(ctx context.Context, limit int) ([]models.CatalogImport, error) {
	var out []models.CatalogImport
	err := s.db.WithContext(ctx).Order("imported_at DESC").Limit(limit).Find(&out).Error
	return out, err
}

// found turns gorm's not-found error into a nil result.
func found[T any](v *T, err error) (*T, error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

// CountCatalogFiles returns the number of catalog files per signature catalog.
func (s *Store) CountCatalogFiles(ctx context.Context) (map[uuid.UUID]int64, error) {
	var rows []struct {
		CatalogID uuid.UUID
		N         int64
	}
	err := s.db.WithContext(ctx).Model(&models.CatalogFile{}).
		Select("catalog_id, COUNT(*) AS n").Group("catalog_id").Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count catalog files: %w", err)
	}
	out := make(map[uuid.UUID]int64, len(rows))
	for _, r := range rows {
		out[r.CatalogID] = r.N
	}
	return out, nil
}
