package store

import (
	"context"
	"fmt"
	"time"

	"catalog-manager/feature/catalog/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FindMapping returns the mapping of owner for provider, or nil.
func (s *Store) FindMapping(ctx context.Context, owner models.Owner, provider models.Provider) (*models.ExternalMetadataMapping, error) {
	col, err := owner.Column()
	if err != nil {
		return nil, err
	}
	var m models.ExternalMetadataMapping
	err = s.db.WithContext(ctx).Where(col+" = ? AND provider = ?", owner.ID, provider).First(&m).Error
	return found(&m, err)
}

// UpsertMapping writes the mapping of its owner for its provider, inserting it or
// updating the existing row in place. The write is idempotent.
func (s *Store) UpsertMapping(ctx context.Context, m *models.ExternalMetadataMapping) error {
	if err := m.Validate(); err != nil {
		return err
	}
	owner, err := m.Owner()
	if err != nil {
		return err
	}
	col, err := owner.Column()
	if err != nil {
		return err
	}

	m.UpdatedAt = time.Now().UTC()
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: col}, {Name: "provider"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"provider_id", "match_type", "manual_match_mode", "failed_reason",
			"automatic_reason", "comment", "updated_at",
		}),
	}).Create(m).Error
	if err != nil {
		return fmt.Errorf("upsert %s mapping of %s: %w", m.Provider, owner, err)
	}

	stored, err := s.FindMapping(ctx, owner, m.Provider)
	if err != nil {
		return fmt.Errorf("reload %s mapping of %s: %w", m.Provider, owner, err)
	}
	if stored != nil {
		*m = *stored
	}
	return nil
}

// ClaimMapping writes m only while its owner has no usable mapping for the provider:
// no row yet, or a none/failed one. It reports whether m was written. Concurrent
// claims on one owner resolve to the first writer.
func (s *Store) ClaimMapping(ctx context.Context, m *models.ExternalMetadataMapping) (bool, error) {
	if err := m.Validate(); err != nil {
		return false, err
	}
	owner, err := m.Owner()
	if err != nil {
		return false, err
	}
	col, err := owner.Column()
	if err != nil {
		return false, err
	}

	m.UpdatedAt = time.Now().UTC()
	var claimed bool
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.ExternalMetadataMapping{}).
			Where(col+" = ? AND provider = ? AND match_type IN ?", owner.ID, m.Provider, retryable).
			Updates(map[string]any{
				"provider_id":       m.ProviderID,
				"match_type":        m.MatchType,
				"manual_match_mode": m.ManualMatchMode,
				"failed_reason":     m.FailedReason,
				"automatic_reason":  m.AutomaticReason,
				"comment":           m.Comment,
				"updated_at":        m.UpdatedAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			claimed = true
			return nil
		}

		res = tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: col}, {Name: "provider"}},
			DoNothing: true,
		}).Create(m)
		if res.Error != nil {
			return res.Error
		}
		claimed = res.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("claim %s mapping of %s: %w", m.Provider, owner, err)
	}

	stored, err := s.FindMapping(ctx, owner, m.Provider)
	if err != nil {
		return claimed, fmt.Errorf("reload %s mapping of %s: %w", m.Provider, owner, err)
	}
	if stored != nil {
		*m = *stored
	}
	return claimed, nil
}

// MappingsFor returns every provider mapping of owner.
func (s *Store) MappingsFor(ctx context.Context, owner models.Owner) ([]models.ExternalMetadataMapping, error) {
	col, err := owner.Column()
	if err != nil {
		return nil, err
	}
	var out []models.ExternalMetadataMapping
	err = s.db.WithContext(ctx).Where(col+" = ?", owner.ID).Order("provider").Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("load mappings of %s: %w", owner, err)
	}
	return out, nil
}

// mappingsByOwner loads the mappings of many owners of one kind, grouped by owner id.
func (s *Store) mappingsByOwner(ctx context.Context, kind models.OwnerKind, ids []uuid.UUID) (map[uuid.UUID][]models.ExternalMetadataMapping, error) {
	out := make(map[uuid.UUID][]models.ExternalMetadataMapping)
	if len(ids) == 0 {
		return out, nil
	}
	col, err := models.Owner{Kind: kind}.Column()
	if err != nil {
		return nil, err
	}
	var rows []models.ExternalMetadataMapping
	if err := s.db.WithContext(ctx).Where(col+" IN ?", ids).Order("provider").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load %s mappings: %w", kind, err)
	}
	for _, m := range rows {
		owner, err := m.Owner()
		if err != nil {
			continue
		}
		out[owner.ID] = append(out[owner.ID], m)
	}
	return out, nil
}

// MatchCounts summarises mappings per owner kind and match type.
type MatchCounts map[models.OwnerKind]map[models.MatchType]int64

// CountMappings returns mapping counts for provider.
func (s *Store) CountMappings(ctx context.Context, provider models.Provider) (MatchCounts, error) {
	out := MatchCounts{}
	for _, kind := range []models.OwnerKind{models.OwnerPublisher, models.OwnerPlatform, models.OwnerGame} {
		col, _ := models.Owner{Kind: kind}.Column()
		var rows []struct {
			MatchType models.MatchType
			N         int64
		}
		err := s.db.WithContext(ctx).Model(&models.ExternalMetadataMapping{}).
			Select("match_type, COUNT(*) AS n").
			Where(col+" IS NOT NULL AND provider = ?", provider).
			Group("match_type").Scan(&rows).Error
		if err != nil {
			return nil, fmt.Errorf("count %s mappings: %w", kind, err)
		}
		counts := make(map[models.MatchType]int64, len(rows))
		for _, r := range rows {
			counts[r.MatchType] = r.N
		}
		out[kind] = counts
	}
	return out, nil
}
