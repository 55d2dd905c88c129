package models

import (
	"time"

	"catalog-manager/core/utils"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Game is a single game entry of a catalog file.
type Game struct {
	ID                uuid.UUID                   `gorm:"type:char(36);primaryKey" json:"id"`
	CatalogFileID     uuid.UUID                   `gorm:"type:char(36);not null;uniqueIndex:idx_game_file_name,priority:1" json:"catalog_file_id"`
	CatalogImportID   uuid.UUID                   `gorm:"type:char(36);not null;index" json:"catalog_import_id"`
	Name              string                      `gorm:"size:512;not null;uniqueIndex:idx_game_file_name,priority:2" json:"name"`
	InternalID        *string                     `gorm:"size:64" json:"internal_id,omitempty"`
	InternalCloneOfID *string                     `gorm:"size:64;index" json:"internal_clone_of_id,omitempty"`
	Description       *string                     `gorm:"type:text" json:"description,omitempty"`
	Categories        datatypes.JSONSlice[string] `json:"categories,omitempty"`
	CloneOfID         *uuid.UUID                  `gorm:"type:char(36);index" json:"clone_of,omitempty"`
	CloneOf           *Game                       `gorm:"foreignKey:CloneOfID;constraint:OnDelete:SET NULL" json:"-"`
	Files             []GameFile                  `gorm:"constraint:OnDelete:CASCADE" json:"files,omitempty"`
	CatalogFile       *CatalogFile                `json:"-"`
	CreatedAt         time.Time                   `json:"created_at"`
	UpdatedAt         time.Time                   `json:"updated_at"`
}

func (Game) TableName() string { return "games" }

func (g *Game) BeforeCreate(_ *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

// GameFile is a ROM or track entry of a game.
type GameFile struct {
	ID       uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	GameID   uuid.UUID `gorm:"type:char(36);not null;index" json:"game_id"`
	FileName string    `gorm:"size:512;not null;index:idx_game_file_name_size,priority:1" json:"file_name"`
	Size     *int64    `gorm:"index:idx_game_file_name_size,priority:2" json:"size,omitempty"`
	CRC      *string   `gorm:"column:crc;size:8" json:"crc,omitempty"`
	MD5      *string   `gorm:"column:md5;size:32;index" json:"md5,omitempty"`
	SHA1     *string   `gorm:"column:sha1;size:40;index" json:"sha1,omitempty"`
	SHA256   *string   `gorm:"column:sha256;size:64;index" json:"sha256,omitempty"`
	Status   *string   `gorm:"size:16" json:"status,omitempty"`
	Serial   *string   `gorm:"size:128" json:"serial,omitempty"`
}

func (GameFile) TableName() string { return "game_files" }

func (f *GameFile) BeforeCreate(_ *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// FileIdentity is the tuple used to decide whether two file entries are the same file.
// Status and serial are not part of it: a verified and a bad-dump entry with the same
// name and hashes are one file.
type FileIdentity struct {
	FileName string
	Size     int64
	HasSize  bool
	CRC      string
	MD5      string
	SHA1     string
	SHA256   string
}

// Identity returns the dedup key of the file.
func (f GameFile) Identity() FileIdentity {
	id := FileIdentity{
		FileName: f.FileName,
		CRC:      utils.Deref(f.CRC),
		MD5:      utils.Deref(f.MD5),
		SHA1:     utils.Deref(f.SHA1),
		SHA256:   utils.Deref(f.SHA256),
	}
	if f.Size != nil {
		id.Size = *f.Size
		id.HasSize = true
	}
	return id
}
