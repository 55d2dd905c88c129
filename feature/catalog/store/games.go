package store

import (
	"context"
	"fmt"

	"catalog-manager/feature/catalog/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FindGame looks a game up by its catalog file and name, with its files.
func (s *Store) FindGame(ctx context.Context, catalogFileID uuid.UUID, name string) (*models.Game, error) {
	var g models.Game
	err := s.db.WithContext(ctx).Preload("Files").
		Where("catalog_file_id = ? AND name = ?", catalogFileID, name).
		First(&g).Error
	return found(&g, err)
}

// GetGame returns a game by id, or nil.
func (s *Store) GetGame(ctx context.Context, id uuid.UUID) (*models.Game, error) {
	var g models.Game
	err := s.db.WithContext(ctx).Preload("Files").First(&g, "id = ?", id).Error
	return found(&g, err)
}

// CreateGame inserts a game and its files. Files with the same identity are stored once.
func (s *Store) CreateGame(ctx context.Context, g *models.Game) error {
	g.Files = DedupeFiles(g.Files)
	if err := s.db.WithContext(ctx).Create(g).Error; err != nil {
		return fmt.Errorf("create game %q: %w", g.Name, err)
	}
	return nil
}

// FileDiff counts the rows written by SyncGameFiles.
type FileDiff struct {
	Added   int
	Removed int
}

// SyncGameFiles refreshes an existing game from a new import: the game's attributes
// are overwritten and its files are diffed by identity. Files no longer listed are
// deleted, new ones inserted, unchanged ones left alone.
func (s *Store) SyncGameFiles(ctx context.Context, existing *models.Game, incoming *models.Game) (FileDiff, error) {
	var diff FileDiff
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Game{ID: existing.ID}).Updates(map[string]any{
			"catalog_import_id":    incoming.CatalogImportID,
			"internal_id":          incoming.InternalID,
			"internal_clone_of_id": incoming.InternalCloneOfID,
			"description":          incoming.Description,
			"categories":           incoming.Categories,
		}).Error
		if err != nil {
			return fmt.Errorf("update game: %w", err)
		}

		var current []models.GameFile
		if err := tx.Where("game_id = ?", existing.ID).Find(&current).Error; err != nil {
			return fmt.Errorf("load files: %w", err)
		}

		wanted := make(map[models.FileIdentity]bool)
		var toAdd []models.GameFile
		have := make(map[models.FileIdentity]bool, len(current))
		for _, f := range current {
			have[f.Identity()] = true
		}
		for _, f := range DedupeFiles(incoming.Files) {
			id := f.Identity()
			wanted[id] = true
			if !have[id] {
				f.ID = uuid.Nil
				f.GameID = existing.ID
				toAdd = append(toAdd, f)
			}
		}

		var toRemove []uuid.UUID
		seen := make(map[models.FileIdentity]bool, len(current))
		for _, f := range current {
			id := f.Identity()
			// Duplicates left behind by older imports are removed too.
			if !wanted[id] || seen[id] {
				toRemove = append(toRemove, f.ID)
			}
			seen[id] = true
		}

		if len(toRemove) > 0 {
			if err := tx.Where("id IN ?", toRemove).Delete(&models.GameFile{}).Error; err != nil {
				return fmt.Errorf("delete files: %w", err)
			}
		}
		if len(toAdd) > 0 {
			if err := tx.Create(&toAdd).Error; err != nil {
				return fmt.Errorf("insert files: %w", err)
			}
		}
		diff = FileDiff{Added: len(toAdd), Removed: len(toRemove)}
		return nil
	})
	if err != nil {
		return FileDiff{}, fmt.Errorf("sync game %q: %w", existing.Name, err)
	}
	return diff, nil
}

// DedupeFiles drops files whose identity was already seen, keeping the first.
func DedupeFiles(files []models.GameFile) []models.GameFile {
	if len(files) < 2 {
		return files
	}
	seen := make(map[models.FileIdentity]bool, len(files))
	out := files[:0:0]
	for _, f := range files {
		id := f.Identity()
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, f)
	}
	return out
}

// ResolveClones sets clone_of for every game of the catalog file that names a parent
// by internal id. Edges already in place are left unchanged, so running it again
// writes nothing. It returns the number of games updated.
func (s *Store) ResolveClones(ctx context.Context, catalogFileID uuid.UUID) (int, error) {
	db := s.db.WithContext(ctx)

	type parentRow struct {
		ID         uuid.UUID
		InternalID string
	}
	var parents []parentRow
	err := db.Model(&models.Game{}).Select("id, internal_id").
		Where("catalog_file_id = ? AND internal_id IS NOT NULL", catalogFileID).
		Scan(&parents).Error
	if err != nil {
		return 0, fmt.Errorf("load internal ids: %w", err)
	}
	byInternal := make(map[string]uuid.UUID, len(parents))
	for _, p := range parents {
		if _, dup := byInternal[p.InternalID]; !dup {
			byInternal[p.InternalID] = p.ID
		}
	}

	type cloneRow struct {
		ID                uuid.UUID
		InternalCloneOfID string
		CloneOfID         *uuid.UUID
	}
	var clones []cloneRow
	err = db.Model(&models.Game{}).Select("id, internal_clone_of_id, clone_of_id").
		Where("catalog_file_id = ? AND internal_clone_of_id IS NOT NULL", catalogFileID).
		Scan(&clones).Error
	if err != nil {
		return 0, fmt.Errorf("load clones: %w", err)
	}

	updated := 0
	for _, c := range clones {
		parent, ok := byInternal[c.InternalCloneOfID]
		if !ok || parent == c.ID {
			continue
		}
		if c.CloneOfID != nil && *c.CloneOfID == parent {
			continue
		}
		if err := db.Model(&models.Game{ID: c.ID}).Update("clone_of_id", parent).Error; err != nil {
			return updated, fmt.Errorf("set clone_of of %s: %w", c.ID, err)
		}
		updated++
	}
	return updated, nil
}

// CatalogFilePlatform returns the platform id of a catalog file.
func (s *Store) CatalogFilePlatform(ctx context.Context, catalogFileID uuid.UUID) (uuid.UUID, error) {
	var f models.CatalogFile
	err := s.db.WithContext(ctx).Select("id, platform_id").First(&f, "id = ?", catalogFileID).Error
	if err != nil {
		return uuid.Nil, fmt.Errorf("load catalog file %s: %w", catalogFileID, err)
	}
	return f.PlatformID, nil
}

// CountGames returns the number of games in a catalog file.
func (s *Store) CountGames(ctx context.Context, catalogFileID uuid.UUID) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Game{}).Where("catalog_file_id = ?", catalogFileID).Count(&n).Error
	return n, err
}
