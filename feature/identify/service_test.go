package identify

import (
	"context"
	"testing"

	"catalog-manager/core/database"
	"catalog-manager/feature/catalog/models"
	"catalog-manager/feature/catalog/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func strPtr(s string) *string { return &s }
func i64Ptr(n int64) *int64  { return &n }

// seed stores two games: Tetris with a file carrying every hash and Dr. Mario whose
// file shares Tetris' MD5 but has its own SHA1. Tetris has an IGDB mapping.
func seed(t *testing.T) (*store.Store, *models.Game, *models.Game) {
	t.Helper()
	ctx := context.Background()
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"}, nil)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, models.All()...))
	s := store.New(db)

	_, err = s.SeedCatalogs(ctx)
	require.NoError(t, err)
	cat, err := s.FindCatalogByName(ctx, "No-Intro")
	require.NoError(t, err)
	plat, err := s.FindOrCreatePlatform(ctx, "Game Boy", nil)
	require.NoError(t, err)
	file := &models.CatalogFile{CatalogID: cat.ID, Name: "Nintendo - Game Boy", PlatformID: plat.ID, CurrentVersion: "1"}
	_, err = s.UpsertCatalogFile(ctx, file)
	require.NoError(t, err)

	importID := uuid.New()
	tetris := &models.Game{CatalogFileID: file.ID, CatalogImportID: importID, Name: "Tetris (World)", Files: []models.GameFile{{
		FileName: "Tetris (World).gb",
		Size:     i64Ptr(32768),
		CRC:      strPtr("46df91ad"),
		MD5:      strPtr("084f1e457749cdec86183189bd88ce69"),
		SHA1:     strPtr("74591cc9501af93873f9a5d3eb12da12c0723bbc"),
		SHA256:   strPtr("0d6535f6a4d7d44a0ef3b8a5ee4d1e35e4d9b1a79d3a7c0e2f4e1e0b9c3b8a71"),
	}}}
	require.NoError(t, s.CreateGame(ctx, tetris))

	mario := &models.Game{CatalogFileID: file.ID, CatalogImportID: importID, Name: "Dr. Mario (World)", Files: []models.GameFile{{
		FileName: "Dr. Mario (World).gb",
		Size:     i64Ptr(32768),
		MD5:      strPtr("084f1e457749cdec86183189bd88ce69"),
		SHA1:     strPtr("0000000000000000000000000000000000000001"),
	}}}
	require.NoError(t, s.CreateGame(ctx, mario))

	m, err := models.NewMapping(models.GameOwner(tetris.ID), models.ProviderIGDB, models.MatchTypeAutomatic)
	require.NoError(t, err)
	m.ProviderID = strPtr("1942")
	reason := models.AutomaticReasonDirectName
	m.AutomaticReason = &reason
	require.NoError(t, s.UpsertMapping(ctx, m))

	return s, tetris, mario
}

func TestIdentify(t *testing.T) {
	s, tetris, mario := seed(t)
	svc := NewService(s, zap.NewNop())
	ctx := context.Background()

	t.Run("SHA256 Wins", func(t *testing.T) {
		res, err := svc.Identify(ctx, Search{
			FileName: "renamed.gb",
			FileSize: 1,
			SHA256:   "0D6535F6A4D7D44A0EF3B8A5EE4D1E35E4D9B1A79D3A7C0E2F4E1E0B9C3B8A71",
			SHA1:     "0000000000000000000000000000000000000001",
		})
		require.NoError(t, err)
		assert.Equal(t, MatchTypeSHA256, res.MatchType)
		require.NotNil(t, res.GameID)
		assert.Equal(t, tetris.ID, *res.GameID)
		assert.Equal(t, "Tetris (World)", res.GameName)
		require.Len(t, res.ExternalMetadata, 1)
		md := res.ExternalMetadata[0]
		assert.Equal(t, "igdb", md.Provider)
		assert.Equal(t, "1942", *md.ProviderID)
		assert.Equal(t, "automatic", md.MatchType)
		assert.Equal(t, "direct_name", *md.AutomaticReason)
	})

	t.Run("SHA1 Before MD5", func(t *testing.T) {
		res, err := svc.Identify(ctx, Search{
			FileName: "x.gb",
			FileSize: 32768,
			SHA1:     "0000000000000000000000000000000000000001",
			MD5:      "084f1e457749cdec86183189bd88ce69",
		})
		require.NoError(t, err)
		assert.Equal(t, MatchTypeSHA1, res.MatchType)
		assert.Equal(t, mario.ID, *res.GameID)
		assert.Empty(t, res.ExternalMetadata)
	})

	t.Run("Unknown SHA256 Falls Through", func(t *testing.T) {
		res, err := svc.Identify(ctx, Search{
			FileName: "x.gb",
			SHA256:   "ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff",
			SHA1:     "74591cc9501af93873f9a5d3eb12da12c0723bbc",
		})
		require.NoError(t, err)
		assert.Equal(t, MatchTypeSHA1, res.MatchType)
		assert.Equal(t, tetris.ID, *res.GameID)
	})

	t.Run("Name And Size", func(t *testing.T) {
		res, err := svc.Identify(ctx, Search{FileName: "Dr. Mario (World).gb", FileSize: 32768})
		require.NoError(t, err)
		assert.Equal(t, MatchTypeFileNameAndSize, res.MatchType)
		assert.Equal(t, mario.ID, *res.GameID)
	})

	t.Run("Wrong Size Is No Match", func(t *testing.T) {
		res, err := svc.Identify(ctx, Search{FileName: "Dr. Mario (World).gb", FileSize: 1})
		require.NoError(t, err)
		assert.Equal(t, MatchTypeNoMatch, res.MatchType)
		assert.Nil(t, res.GameID)
		assert.NotNil(t, res.ExternalMetadata)
		assert.Empty(t, res.ExternalMetadata)
	})
}

func TestIdentifyIsReadOnly(t *testing.T) {
	s, _, _ := seed(t)
	svc := NewService(s, nil)
	ctx := context.Background()

	before, err := s.CountMappings(ctx, models.ProviderIGDB)
	require.NoError(t, err)
	_, err = svc.Identify(ctx, Search{FileName: "Tetris (World).gb", FileSize: 32768})
	require.NoError(t, err)
	after, err := s.CountMappings(ctx, models.ProviderIGDB)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}
