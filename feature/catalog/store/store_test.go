package store

import (
	"context"
	"testing"

	"catalog-manager/core/database"
	"catalog-manager/feature/catalog/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"}, nil)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, models.All()...))
	return New(db)
}

func strPtr(s string) *string { return &s }
func i64Ptr(n int64) *int64  { return &n }

// seedCatalogFile creates the catalog, publisher, platform and catalog file rows a
// game needs.
func seedCatalogFile(t *testing.T, s *Store) (*models.CatalogFile, *models.CatalogImport) {
	t.Helper()
	ctx := context.Background()
	_, err := s.SeedCatalogs(ctx)
	require.NoError(t, err)
	cat, err := s.FindCatalogByName(ctx, "no-intro")
	require.NoError(t, err)
	require.NotNil(t, cat)

	pub, err := s.FindOrCreatePublisher(ctx, "Nintendo")
	require.NoError(t, err)
	plat, err := s.FindOrCreatePlatform(ctx, "Game Boy", &pub.ID)
	require.NoError(t, err)

	file := &models.CatalogFile{CatalogID: cat.ID, Name: "Nintendo - Game Boy", PublisherID: &pub.ID, PlatformID: plat.ID, CurrentVersion: "1"}
	_, err = s.UpsertCatalogFile(ctx, file)
	require.NoError(t, err)

	imp := &models.CatalogImport{CatalogFileID: file.ID, SourceFileName: "gb.dat", ContentHash: uuid.NewString(), Version: "1"}
	require.NoError(t, s.BeginImport(ctx, imp))
	require.NoError(t, s.CompleteImport(ctx, imp))
	return file, imp
}

func TestSeedCatalogs(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	n, err := s.SeedCatalogs(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	n, err = s.SeedCatalogs(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	cats, err := s.ListCatalogs(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 4)
	assert.Equal(t, "MAME", cats[0].Name)

	missing, err := s.FindCatalogByName(ctx, "GoodTools")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestFindOrCreatePublisherAndPlatform(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a, err := s.FindOrCreatePublisher(ctx, "Sega")
	require.NoError(t, err)
	b, err := s.FindOrCreatePublisher(ctx, "Sega")
	require.NoError(t, err)
	assert.Equal(t, a.ID, b.ID)

	p, err := s.FindOrCreatePlatform(ctx, "Mega Drive", nil)
	require.NoError(t, err)
	assert.Nil(t, p.PublisherID)

	// A later sighting with a publisher links it.
	p2, err := s.FindOrCreatePlatform(ctx, "Mega Drive", &a.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, p2.ID)
	require.NotNil(t, p2.PublisherID)
	assert.Equal(t, a.ID, *p2.PublisherID)
}

func TestUpsertCatalogFile(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	_, err := s.SeedCatalogs(ctx)
	require.NoError(t, err)
	cat, _ := s.FindCatalogByName(ctx, "Redump")
	plat, err := s.FindOrCreatePlatform(ctx, "Arcade", nil)
	require.NoError(t, err)

	f := &models.CatalogFile{CatalogID: cat.ID, Name: "Arcade", PlatformID: plat.ID, CurrentVersion: "2024"}
	written, err := s.UpsertCatalogFile(ctx, f)
	require.NoError(t, err)
	assert.True(t, written)

	same := &models.CatalogFile{CatalogID: cat.ID, Name: "Arcade", PlatformID: plat.ID, CurrentVersion: "2024"}
	written, err = s.UpsertCatalogFile(ctx, same)
	require.NoError(t, err)
	assert.False(t, written)
	assert.Equal(t, f.ID, same.ID)

	bumped := &models.CatalogFile{CatalogID: cat.ID, Name: "Arcade", PlatformID: plat.ID, CurrentVersion: "2025", Tags: []string{"World"}}
	written, err = s.UpsertCatalogFile(ctx, bumped)
	require.NoError(t, err)
	assert.True(t, written)
	assert.Equal(t, f.ID, bumped.ID)

	var count int64
	require.NoError(t, s.DB().Model(&models.CatalogFile{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var stored models.CatalogFile
	require.NoError(t, s.DB().First(&stored, "id = ?", f.ID).Error)
	assert.Equal(t, "2025", stored.CurrentVersion)
	assert.Equal(t, []string{"World"}, []string(stored.Tags))
}

func TestImportLedger(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	file, imp := seedCatalogFile(t, s)

	ok, err := s.ImportExists(ctx, imp.ContentHash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.ImportExists(ctx, "unknown")
	require.NoError(t, err)
	assert.False(t, ok)

	dup := &models.CatalogImport{CatalogFileID: file.ID, SourceFileName: "gb.dat", ContentHash: imp.ContentHash, Version: "1"}
	assert.ErrorIs(t, s.BeginImport(ctx, dup), ErrImportCompleted)

	imports, err := s.ListImports(ctx, 10)
	require.NoError(t, err)
	require.Len(t, imports, 1)
	assert.NotNil(t, imports[0].CompletedAt)
}

func TestBeginImport_ReusesPendingRow(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	file, _ := seedCatalogFile(t, s)

	first := &models.CatalogImport{CatalogFileID: file.ID, SourceFileName: "gb.dat", ContentHash: "pending", Version: "1"}
	require.NoError(t, s.BeginImport(ctx, first))

	ok, err := s.ImportExists(ctx, "pending")
	require.NoError(t, err)
	assert.False(t, ok, "pending rows do not count as imported")

	retry := &models.CatalogImport{ID: uuid.New(), CatalogFileID: file.ID, SourceFileName: "gb (1).dat", ContentHash: "pending", Version: "2"}
	require.NoError(t, s.BeginImport(ctx, retry))
	assert.Equal(t, first.ID, retry.ID)

	require.NoError(t, s.CompleteImport(ctx, retry))
	require.NotNil(t, retry.CompletedAt)

	var stored models.CatalogImport
	require.NoError(t, s.DB().First(&stored, "id = ?", first.ID).Error)
	assert.Equal(t, "gb (1).dat", stored.SourceFileName)
	assert.Equal(t, "2", stored.Version)
	assert.NotNil(t, stored.CompletedAt)

	ok, err = s.ImportExists(ctx, "pending")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSyncGameFiles(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	file, imp := seedCatalogFile(t, s)

	keep := models.GameFile{FileName: "a.gb", Size: i64Ptr(1), SHA1: strPtr("aa")}
	drop := models.GameFile{FileName: "b.gb", Size: i64Ptr(2), SHA1: strPtr("bb")}
	game := &models.Game{CatalogFileID: file.ID, CatalogImportID: imp.ID, Name: "Tetris", Files: []models.GameFile{keep, drop}}
	require.NoError(t, s.CreateGame(ctx, game))

	existing, err := s.FindGame(ctx, file.ID, "Tetris")
	require.NoError(t, err)
	require.Len(t, existing.Files, 2)
	keptID := ""
	for _, f := range existing.Files {
		if f.FileName == "a.gb" {
			keptID = f.ID.String()
		}
	}

	add := models.GameFile{FileName: "c.gb", Size: i64Ptr(3), SHA1: strPtr("cc")}
	incoming := &models.Game{CatalogImportID: imp.ID, Name: "Tetris", Description: strPtr("Tetris (World)"), Files: []models.GameFile{keep, add}}
	diff, err := s.SyncGameFiles(ctx, existing, incoming)
	require.NoError(t, err)
	assert.Equal(t, FileDiff{Added: 1, Removed: 1}, diff)

	after, err := s.FindGame(ctx, file.ID, "Tetris")
	require.NoError(t, err)
	require.Len(t, after.Files, 2)
	names := map[string]string{}
	for _, f := range after.Files {
		names[f.FileName] = f.ID.String()
	}
	assert.Contains(t, names, "a.gb")
	assert.Contains(t, names, "c.gb")
	assert.Equal(t, keptID, names["a.gb"], "unchanged files keep their row")
	assert.Equal(t, "Tetris (World)", *after.Description)

	// Running the same diff again writes nothing.
	diff, err = s.SyncGameFiles(ctx, after, incoming)
	require.NoError(t, err)
	assert.Equal(t, FileDiff{}, diff)
}

func TestDedupeFilesIgnoresStatus(t *testing.T) {
	verified := models.GameFile{FileName: "a.bin", Size: i64Ptr(10), CRC: strPtr("01"), Status: strPtr("verified")}
	bad := models.GameFile{FileName: "a.bin", Size: i64Ptr(10), CRC: strPtr("01"), Status: strPtr("baddump")}
	other := models.GameFile{FileName: "b.bin", Size: i64Ptr(10), CRC: strPtr("01")}

	out := DedupeFiles([]models.GameFile{verified, bad, other})
	require.Len(t, out, 2)
	assert.Equal(t, "verified", *out[0].Status)
	assert.Equal(t, "b.bin", out[1].FileName)
}

func TestResolveClones(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	file, imp := seedCatalogFile(t, s)

	parent := &models.Game{CatalogFileID: file.ID, CatalogImportID: imp.ID, Name: "Game (USA)", InternalID: strPtr("0001")}
	clone := &models.Game{CatalogFileID: file.ID, CatalogImportID: imp.ID, Name: "Game (Europe)", InternalID: strPtr("0002"), InternalCloneOfID: strPtr("0001")}
	orphan := &models.Game{CatalogFileID: file.ID, CatalogImportID: imp.ID, Name: "Lost (Japan)", InternalID: strPtr("0003"), InternalCloneOfID: strPtr("9999")}
	for _, g := range []*models.Game{parent, clone, orphan} {
		require.NoError(t, s.CreateGame(ctx, g))
	}

	n, err := s.ResolveClones(ctx, file.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := s.GetGame(ctx, clone.ID)
	require.NoError(t, err)
	require.NotNil(t, got.CloneOfID)
	assert.Equal(t, parent.ID, *got.CloneOfID)

	lost, err := s.GetGame(ctx, orphan.ID)
	require.NoError(t, err)
	assert.Nil(t, lost.CloneOfID)

	n, err = s.ResolveClones(ctx, file.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
