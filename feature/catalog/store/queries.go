package store

import (
	"context"
	"fmt"

	"catalog-manager/feature/catalog/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// retryable lists the match types a reconciliation pass picks up again.
var retryable = []models.MatchType{models.MatchTypeNone, models.MatchTypeFailed}

// unmatched restricts table to rows without a usable mapping for provider, after the
// keyset cursor, in id order.
func (s *Store) unmatched(ctx context.Context, table, ownerCol string, provider models.Provider, after string, limit int) *gorm.DB {
	return s.db.WithContext(ctx).Table(table).
		Select(table+".*").
		Joins("LEFT JOIN external_metadata_mappings m ON m."+ownerCol+" = "+table+".id AND m.provider = ?", provider).
		Where("(m.id IS NULL OR m.match_type IN ?)", retryable).
		Where(table+".id > ?", after).
		Order(table + ".id").
		Limit(limit)
}

// UnmatchedPublishers returns the next page of publishers without a usable mapping.
func (s *Store) UnmatchedPublishers(ctx context.Context, provider models.Provider, after string, limit int) ([]models.Publisher, error) {
	var out []models.Publisher
	if err := s.unmatched(ctx, "publishers", "publisher_id", provider, after, limit).Scan(&out).Error; err != nil {
		return nil, fmt.Errorf("page unmatched publishers: %w", err)
	}
	return out, nil
}

// UnmatchedPlatforms returns the next page of platforms without a usable mapping.
func (s *Store) UnmatchedPlatforms(ctx context.Context, provider models.Provider, after string, limit int) ([]models.Platform, error) {
	var out []models.Platform
	if err := s.unmatched(ctx, "platforms", "platform_id", provider, after, limit).Scan(&out).Error; err != nil {
		return nil, fmt.Errorf("page unmatched platforms: %w", err)
	}
	return out, nil
}

// UnmatchedGames returns the next page of games without a usable mapping, restricted
// to clones or to non-clones.
func (s *Store) UnmatchedGames(ctx context.Context, provider models.Provider, clones bool, after string, limit int) ([]models.Game, error) {
	q := s.unmatched(ctx, "games", "game_id", provider, after, limit)
	if clones {
		q = q.Where("games.clone_of_id IS NOT NULL")
	} else {
		q = q.Where("games.clone_of_id IS NULL")
	}
	var out []models.Game
	if err := q.Scan(&out).Error; err != nil {
		return nil, fmt.Errorf("page unmatched games: %w", err)
	}
	return out, nil
}

// Hash names a GameFile hash column.
type Hash string

const (
	HashSHA256 Hash = "sha256"
	HashSHA1   Hash = "sha1"
	HashMD5    Hash = "md5"
)

// FindFileByHash returns the first game file whose hash column equals value, or nil.
func (s *Store) FindFileByHash(ctx context.Context, hash Hash, value string) (*models.GameFile, error) {
	switch hash {
	case HashSHA256, HashSHA1, HashMD5:
	default:
		return nil, fmt.Errorf("unknown hash column %q", hash)
	}
	var f models.GameFile
	err := s.db.WithContext(ctx).Where(string(hash)+" = ?", value).Order("id").First(&f).Error
	return found(&f, err)
}

// FindFileByNameAndSize returns the first game file with this name and size, or nil.
func (s *Store) FindFileByNameAndSize(ctx context.Context, name string, size int64) (*models.GameFile, error) {
	var f models.GameFile
	err := s.db.WithContext(ctx).Where("file_name = ? AND size = ?", name, size).Order("id").First(&f).Error
	return found(&f, err)
}

// PublisherWithMappings is a publisher with its provider mappings.
type PublisherWithMappings struct {
	models.Publisher
	ExternalMetadata []models.ExternalMetadataMapping `json:"external_metadata"`
}

// PlatformWithMappings is a platform with its provider mappings.
type PlatformWithMappings struct {
	models.Platform
	ExternalMetadata []models.ExternalMetadataMapping `json:"external_metadata"`
}

// ListPublishers returns every publisher ordered by name, with mappings.
func (s *Store) ListPublishers(ctx context.Context) ([]PublisherWithMappings, error) {
	var rows []models.Publisher
	if err := s.db.WithContext(ctx).Order("name").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list publishers: %w", err)
	}
	ids := make([]uuid.UUID, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}
	mappings, err := s.mappingsByOwner(ctx, models.OwnerPublisher, ids)
	if err != nil {
		return nil, err
	}
	out := make([]PublisherWithMappings, len(rows))
	for i, r := range rows {
		out[i] = PublisherWithMappings{Publisher: r, ExternalMetadata: nonNil(mappings[r.ID])}
	}
	return out, nil
}

// ListPlatforms returns every platform ordered by name, with mappings.
func (s *Store) ListPlatforms(ctx context.Context) ([]PlatformWithMappings, error) {
	var rows []models.Platform
	if err := s.db.WithContext(ctx).Order("name").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list platforms: %w", err)
	}
	ids := make([]uuid.UUID, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}
	mappings, err := s.mappingsByOwner(ctx, models.OwnerPlatform, ids)
	if err != nil {
		return nil, err
	}
	out := make([]PlatformWithMappings, len(rows))
	for i, r := range rows {
		out[i] = PlatformWithMappings{Platform: r, ExternalMetadata: nonNil(mappings[r.ID])}
	}
	return out, nil
}

func nonNil(m []models.ExternalMetadataMapping) []models.ExternalMetadataMapping {
	if m == nil {
		return []models.ExternalMetadataMapping{}
	}
	return m
}
