package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SignatureCatalog is a DAT maintainer group such as No-Intro or Redump.
type SignatureCatalog struct {
	ID          uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	Name        string    `gorm:"size:128;not null;uniqueIndex" json:"name"`
	Link        *string   `gorm:"size:255" json:"link,omitempty"`
	Description *string   `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (SignatureCatalog) TableName() string { return "signature_catalogs" }

func (s *SignatureCatalog) BeforeCreate(_ *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// Publisher is a hardware publisher named by catalog headers ("Nintendo", "Sega").
type Publisher struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null;uniqueIndex" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Publisher) TableName() string { return "publishers" }

func (p *Publisher) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Platform is a system a catalog file covers ("Game Boy", "Mega Drive").
type Platform struct {
	ID          uuid.UUID  `gorm:"type:char(36);primaryKey" json:"id"`
	Name        string     `gorm:"size:255;not null;uniqueIndex" json:"name"`
	PublisherID *uuid.UUID `gorm:"type:char(36);index" json:"publisher_id,omitempty"`
	Publisher   *Publisher `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Platform) TableName() string { return "platforms" }

func (p *Platform) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// CatalogFile is one logical DAT document, versioned in place across imports.
type CatalogFile struct {
	ID             uuid.UUID                   `gorm:"type:char(36);primaryKey" json:"id"`
	CatalogID      uuid.UUID                   `gorm:"type:char(36);not null;uniqueIndex:idx_catalog_file_identity,priority:1" json:"catalog_id"`
	Name           string                      `gorm:"size:255;not null;uniqueIndex:idx_catalog_file_identity,priority:2" json:"name"`
	PublisherID    *uuid.UUID                  `gorm:"type:char(36);uniqueIndex:idx_catalog_file_identity,priority:3" json:"publisher_id,omitempty"`
	PlatformID     uuid.UUID                   `gorm:"type:char(36);not null;uniqueIndex:idx_catalog_file_identity,priority:4" json:"platform_id"`
	CurrentVersion string                      `gorm:"size:64;not null" json:"current_version"`
	Tags           datatypes.JSONSlice[string] `json:"tags,omitempty"`
	Subset         *string                     `gorm:"size:128" json:"subset,omitempty"`
	Catalog        *SignatureCatalog           `gorm:"foreignKey:CatalogID" json:"-"`
	Platform       *Platform                   `json:"-"`
	Publisher      *Publisher                  `json:"-"`
	CreatedAt      time.Time                   `json:"created_at"`
	UpdatedAt      time.Time                   `json:"updated_at"`
}

func (CatalogFile) TableName() string { return "catalog_files" }

func (c *CatalogFile) BeforeCreate(_ *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// CatalogImport is the import history ledger. One row exists per distinct content hash.
// The row is written before any game references it and CompletedAt is set once every
// game of the document was stored.
type CatalogImport struct {
	ID             uuid.UUID    `gorm:"type:char(36);primaryKey" json:"id"`
	CatalogFileID  uuid.UUID    `gorm:"type:char(36);not null;index" json:"catalog_file_id"`
	SourceFileName string       `gorm:"size:512;not null" json:"source_file_name"`
	ContentHash    string       `gorm:"size:64;not null;uniqueIndex" json:"content_hash"`
	Version        string       `gorm:"size:64;not null" json:"version"`
	ImportedAt     time.Time    `gorm:"not null" json:"imported_at"`
	CompletedAt    *time.Time   `gorm:"index" json:"completed_at,omitempty"`
	CatalogFile    *CatalogFile `json:"-"`
}

func (CatalogImport) TableName() string { return "catalog_imports" }

func (c *CatalogImport) BeforeCreate(_ *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.ImportedAt.IsZero() {
		c.ImportedAt = time.Now().UTC()
	}
	return nil
}
