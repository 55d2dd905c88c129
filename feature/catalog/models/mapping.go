package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrInvalidOwner is returned when a mapping does not reference exactly one owner.
var ErrInvalidOwner = errors.New("mapping must reference exactly one of game, publisher or platform")

// OwnerKind names the entity type a mapping belongs to.
type OwnerKind string

const (
	OwnerPublisher OwnerKind = "publisher"
	OwnerPlatform  OwnerKind = "platform"
	OwnerGame      OwnerKind = "game"
)

// Owner is the entity a mapping belongs to.
type Owner struct {
	Kind OwnerKind
	ID   uuid.UUID
}

func PublisherOwner(id uuid.UUID) Owner { return Owner{Kind: OwnerPublisher, ID: id} }
func PlatformOwner(id uuid.UUID) Owner  { return Owner{Kind: OwnerPlatform, ID: id} }
func GameOwner(id uuid.UUID) Owner      { return Owner{Kind: OwnerGame, ID: id} }

// Column returns the foreign-key column holding this owner.
func (o Owner) Column() (string, error) {
	switch o.Kind {
	case OwnerPublisher:
		return "publisher_id", nil
	case OwnerPlatform:
		return "platform_id", nil
	case OwnerGame:
		return "game_id", nil
	default:
		return "", fmt.Errorf("unknown owner kind %q: %w", o.Kind, ErrInvalidOwner)
	}
}

func (o Owner) String() string {
	return string(o.Kind) + ":" + o.ID.String()
}

// ExternalMetadataMapping links one local entity to a provider record, or records that
// no match could be made.
type ExternalMetadataMapping struct {
	ID              uuid.UUID        `gorm:"type:char(36);primaryKey" json:"id"`
	GameID          *uuid.UUID       `gorm:"type:char(36);uniqueIndex:idx_mapping_game_provider,priority:1;check:chk_mapping_single_owner,(CASE WHEN game_id IS NULL THEN 0 ELSE 1 END) + (CASE WHEN publisher_id IS NULL THEN 0 ELSE 1 END) + (CASE WHEN platform_id IS NULL THEN 0 ELSE 1 END) = 1" json:"game_id,omitempty"`
	PublisherID     *uuid.UUID       `gorm:"type:char(36);uniqueIndex:idx_mapping_publisher_provider,priority:1" json:"publisher_id,omitempty"`
	PlatformID      *uuid.UUID       `gorm:"type:char(36);uniqueIndex:idx_mapping_platform_provider,priority:1" json:"platform_id,omitempty"`
	Provider        Provider         `gorm:"size:32;not null;uniqueIndex:idx_mapping_game_provider,priority:2;uniqueIndex:idx_mapping_publisher_provider,priority:2;uniqueIndex:idx_mapping_platform_provider,priority:2" json:"provider"`
	ProviderID      *string          `gorm:"size:64" json:"provider_id,omitempty"`
	MatchType       MatchType        `gorm:"size:16;not null;index" json:"match_type"`
	ManualMatchMode *ManualMatchMode `gorm:"size:16" json:"manual_match_mode,omitempty"`
	FailedReason    *FailedReason    `gorm:"size:32" json:"failed_reason,omitempty"`
	AutomaticReason *AutomaticReason `gorm:"size:32" json:"automatic_reason,omitempty"`
	Comment         *string          `gorm:"type:text" json:"comment,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

func (ExternalMetadataMapping) TableName() string { return "external_metadata_mappings" }

// Owner reads the owner back from the three nullable columns.
func (m ExternalMetadataMapping) Owner() (Owner, error) {
	var owners []Owner
	if m.GameID != nil {
		owners = append(owners, GameOwner(*m.GameID))
	}
	if m.PublisherID != nil {
		owners = append(owners, PublisherOwner(*m.PublisherID))
	}
	if m.PlatformID != nil {
		owners = append(owners, PlatformOwner(*m.PlatformID))
	}
	if len(owners) != 1 {
		return Owner{}, ErrInvalidOwner
	}
	return owners[0], nil
}

// SetOwner spreads the owner over the foreign-key columns, clearing the others.
func (m *ExternalMetadataMapping) SetOwner(o Owner) error {
	if o.ID == uuid.Nil {
		return ErrInvalidOwner
	}
	id := o.ID
	m.GameID, m.PublisherID, m.PlatformID = nil, nil, nil
	switch o.Kind {
	case OwnerGame:
		m.GameID = &id
	case OwnerPublisher:
		m.PublisherID = &id
	case OwnerPlatform:
		m.PlatformID = &id
	default:
		return fmt.Errorf("unknown owner kind %q: %w", o.Kind, ErrInvalidOwner)
	}
	return nil
}

// Validate checks the row before it is written.
func (m ExternalMetadataMapping) Validate() error {
	if _, err := m.Owner(); err != nil {
		return err
	}
	if m.Provider == "" {
		return errors.New("mapping provider is required")
	}
	if m.MatchType.IsMatched() && (m.ProviderID == nil || *m.ProviderID == "") {
		return fmt.Errorf("%s mapping requires a provider id", m.MatchType)
	}
	return nil
}

func (m *ExternalMetadataMapping) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return m.Validate()
}

func (m *ExternalMetadataMapping) BeforeUpdate(_ *gorm.DB) error {
	return m.Validate()
}

// NewMapping builds a validated mapping for the owner.
func NewMapping(owner Owner, provider Provider, matchType MatchType) (*ExternalMetadataMapping, error) {
	m := &ExternalMetadataMapping{Provider: provider, MatchType: matchType}
	if err := m.SetOwner(owner); err != nil {
		return nil, err
	}
	return m, nil
}

// All lists every model for migrations, parents first.
func All() []any {
	return []any{
		&SignatureCatalog{},
		&Publisher{},
		&Platform{},
		&CatalogFile{},
		&CatalogImport{},
		&Game{},
		&GameFile{},
		&ExternalMetadataMapping{},
	}
}
