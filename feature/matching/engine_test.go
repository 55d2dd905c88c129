package matching

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"catalog-manager/core/database"
	"catalog-manager/feature/catalog/models"
	"catalog-manager/feature/catalog/store"
	"catalog-manager/feature/igdb"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeProvider struct {
	mu          sync.Mutex
	companies   map[string][]igdb.Company
	platforms   map[string][]igdb.Platform
	games       map[string][]igdb.Game
	altNames    map[int64]igdb.AlternativeName
	failCompany error
	searches    []string
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		companies: map[string][]igdb.Company{},
		platforms: map[string][]igdb.Platform{},
		games:     map[string][]igdb.Game{},
		altNames:  map[int64]igdb.AlternativeName{},
	}
}

func (f *fakeProvider) record(s string) {
	f.mu.Lock()
	f.searches = append(f.searches, s)
	f.mu.Unlock()
}

func (f *fakeProvider) gameSearches() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, s := range f.searches {
		if len(s) > 5 && s[:5] == "game:" {
			out = append(out, s[5:])
		}
	}
	return out
}

func (f *fakeProvider) SearchCompaniesByName(_ context.Context, name string) ([]igdb.Company, error) {
	f.record("company:" + name)
	if f.failCompany != nil {
		return nil, f.failCompany
	}
	return f.companies[name], nil
}

func (f *fakeProvider) SearchPlatformsByName(_ context.Context, name string) ([]igdb.Platform, error) {
	f.record("platform:" + name)
	return f.platforms[name], nil
}

func (f *fakeProvider) SearchGames(_ context.Context, name string, platformID *int64) ([]igdb.Game, error) {
	f.record("game:" + name)
	return f.games[name], nil
}

func (f *fakeProvider) GetAlternativeNamesByIDs(_ context.Context, ids []int64) ([]igdb.AlternativeName, error) {
	var out []igdb.AlternativeName
	for _, id := range ids {
		if a, ok := f.altNames[id]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

type fixture struct {
	store    *store.Store
	provider *fakeProvider
	engine   *Engine
	file     *models.CatalogFile
	importID uuid.UUID
	platform *models.Platform
	pub      *models.Publisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"}, nil)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, models.All()...))
	s := store.New(db)
	ctx := context.Background()

	_, err = s.SeedCatalogs(ctx)
	require.NoError(t, err)
	cat, err := s.FindCatalogByName(ctx, "No-Intro")
	require.NoError(t, err)
	pub, err := s.FindOrCreatePublisher(ctx, "Nintendo")
	require.NoError(t, err)
	plat, err := s.FindOrCreatePlatform(ctx, "Game Boy", &pub.ID)
	require.NoError(t, err)
	file := &models.CatalogFile{CatalogID: cat.ID, Name: "Nintendo - Game Boy", PublisherID: &pub.ID, PlatformID: plat.ID, CurrentVersion: "1"}
	_, err = s.UpsertCatalogFile(ctx, file)
	require.NoError(t, err)

	p := newFakeProvider()
	p.companies["Nintendo"] = []igdb.Company{{ID: 1, Name: "Nintendo EAD"}, {ID: 70, Name: "nintendo"}}
	p.platforms["Game Boy"] = []igdb.Platform{{ID: 33, Name: "Game Boy"}}

	return &fixture{
		store:    s,
		provider: p,
		engine:   NewEngine(s, p, Config{PageSize: 2, Concurrency: 2}, zap.NewNop()),
		file:     file,
		importID: uuid.New(),
		platform: plat,
		pub:      pub,
	}
}

func (f *fixture) addGame(t *testing.T, name string, internalID, cloneOf string) *models.Game {
	t.Helper()
	g := &models.Game{CatalogFileID: f.file.ID, CatalogImportID: f.importID, Name: name}
	if internalID != "" {
		g.InternalID = &internalID
	}
	if cloneOf != "" {
		g.InternalCloneOfID = &cloneOf
	}
	require.NoError(t, f.store.CreateGame(context.Background(), g))
	return g
}

func (f *fixture) mapping(t *testing.T, owner models.Owner) *models.ExternalMetadataMapping {
	t.Helper()
	m, err := f.store.FindMapping(context.Background(), owner, models.ProviderIGDB)
	require.NoError(t, err)
	return m
}

func TestRun_FullPass(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tetris := f.addGame(t, "Tetris (World) (Rev 1)", "1", "")
	alt := f.addGame(t, "Pocket Monsters Aka (Japan)", "2", "")
	missing := f.addGame(t, "Unknown Homebrew (World)", "3", "")

	f.provider.games["Tetris"] = []igdb.Game{{ID: 1000, Name: "Tetris Plus"}, {ID: 1001, Name: "TETRIS"}}
	f.provider.games["Pocket Monsters Aka"] = []igdb.Game{{ID: 1500, Name: "Pokemon Red", AlternativeNames: []int64{9, 10}}}
	f.provider.altNames[9] = igdb.AlternativeName{ID: 9, Game: 1500, Name: "Pokemon Red Version"}
	f.provider.altNames[10] = igdb.AlternativeName{ID: 10, Game: 1500, Name: "Pocket Monsters Aka"}

	report, err := f.engine.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report[PhasePublishers].Processed)
	assert.Equal(t, 1, report[PhasePlatforms].Processed)
	assert.Equal(t, 3, report[PhaseGames].Processed)
	assert.Equal(t, 0, report[PhaseGames].Failed)

	pub := f.mapping(t, models.PublisherOwner(f.pub.ID))
	require.NotNil(t, pub)
	assert.Equal(t, models.MatchTypeAutomatic, pub.MatchType)
	assert.Equal(t, "70", *pub.ProviderID)
	assert.Equal(t, models.AutomaticReasonDirectName, *pub.AutomaticReason)

	plat := f.mapping(t, models.PlatformOwner(f.platform.ID))
	require.NotNil(t, plat)
	assert.Equal(t, "33", *plat.ProviderID)

	m := f.mapping(t, models.GameOwner(tetris.ID))
	require.NotNil(t, m)
	assert.Equal(t, "1001", *m.ProviderID)
	assert.Equal(t, models.AutomaticReasonDirectName, *m.AutomaticReason)

	m = f.mapping(t, models.GameOwner(alt.ID))
	require.NotNil(t, m)
	assert.Equal(t, "1500", *m.ProviderID)
	assert.Equal(t, models.AutomaticReasonAlternativeName, *m.AutomaticReason)

	m = f.mapping(t, models.GameOwner(missing.ID))
	require.NotNil(t, m)
	assert.Equal(t, models.MatchTypeFailed, m.MatchType)
	assert.Equal(t, models.FailedReasonNoDirectMatch, *m.FailedReason)
	assert.Nil(t, m.ProviderID)
}

func TestRun_MatchedEntitiesAreNotSearchedAgain(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addGame(t, "Tetris (World)", "1", "")
	f.provider.games["Tetris"] = []igdb.Game{{ID: 1001, Name: "Tetris"}}

	_, err := f.engine.Run(ctx)
	require.NoError(t, err)
	first := len(f.provider.searches)

	report, err := f.engine.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, len(f.provider.searches))
	assert.Equal(t, 0, report[PhaseGames].Processed)
}

func TestMatchGame_RequiresPlatformMapping(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	g := f.addGame(t, "Tetris (World)", "1", "")

	report, err := f.engine.Run(ctx, PhaseGames)
	require.NoError(t, err)
	assert.Equal(t, 1, report[PhaseGames].Failed)
	assert.Nil(t, f.mapping(t, models.GameOwner(g.ID)), "ordering errors are not recorded as failed matches")
	assert.Empty(t, f.provider.gameSearches())

	err = f.engine.MatchGame(ctx, *g)
	assert.ErrorIs(t, err, ErrPlatformNotMatched)
}

func TestMatchPublisher_ProviderErrorWritesNothing(t *testing.T) {
	f := newFixture(t)
	f.provider.failCompany = errors.New("igdb companies: unexpected status 503")

	report, err := f.engine.Run(context.Background(), PhasePublishers)
	require.NoError(t, err)
	assert.Equal(t, 1, report[PhasePublishers].Failed)
	assert.Nil(t, f.mapping(t, models.PublisherOwner(f.pub.ID)))
}

func TestFailedMappingsAreRetried(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	delete(f.provider.companies, "Nintendo")

	_, err := f.engine.Run(ctx, PhasePublishers)
	require.NoError(t, err)
	assert.Equal(t, models.MatchTypeFailed, f.mapping(t, models.PublisherOwner(f.pub.ID)).MatchType)

	f.provider.companies["Nintendo"] = []igdb.Company{{ID: 70, Name: "Nintendo"}}
	_, err = f.engine.Run(ctx, PhasePublishers)
	require.NoError(t, err)
	m := f.mapping(t, models.PublisherOwner(f.pub.ID))
	assert.Equal(t, models.MatchTypeAutomatic, m.MatchType)
	assert.Nil(t, m.FailedReason)
}

func TestMatchClone_ViaParent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	parent := f.addGame(t, "Zelda (USA)", "1", "")
	clone := f.addGame(t, "Zelda (Europe) (Rev 1)", "2", "1")
	_, err := f.store.ResolveClones(ctx, f.file.ID)
	require.NoError(t, err)

	f.provider.games["Zelda"] = []igdb.Game{{ID: 1022, Name: "Zelda"}}

	_, err = f.engine.Run(ctx)
	require.NoError(t, err)

	pm := f.mapping(t, models.GameOwner(parent.ID))
	require.NotNil(t, pm)
	assert.Equal(t, models.AutomaticReasonDirectName, *pm.AutomaticReason)

	cm := f.mapping(t, models.GameOwner(clone.ID))
	require.NotNil(t, cm)
	assert.Equal(t, models.MatchTypeAutomatic, cm.MatchType)
	assert.Equal(t, "1022", *cm.ProviderID)
	assert.Equal(t, models.AutomaticReasonViaParent, *cm.AutomaticReason)

	// Only the parent was searched.
	assert.Equal(t, []string{"Zelda"}, f.provider.gameSearches())
}

func TestMatchClone_ViaChild(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	parent := f.addGame(t, "Zeruda no Densetsu (Japan)", "1", "")
	clone := f.addGame(t, "Legend of Zelda, The (USA)", "2", "1")
	_, err := f.store.ResolveClones(ctx, f.file.ID)
	require.NoError(t, err)

	f.provider.games["Legend of Zelda, The"] = []igdb.Game{{ID: 1022, Name: "Legend of Zelda, The"}}

	_, err = f.engine.Run(ctx)
	require.NoError(t, err)

	cm := f.mapping(t, models.GameOwner(clone.ID))
	require.NotNil(t, cm)
	assert.Equal(t, models.AutomaticReasonDirectName, *cm.AutomaticReason)

	pm := f.mapping(t, models.GameOwner(parent.ID))
	require.NotNil(t, pm)
	assert.Equal(t, models.MatchTypeAutomatic, pm.MatchType)
	assert.Equal(t, "1022", *pm.ProviderID)
	assert.Equal(t, models.AutomaticReasonViaChild, *pm.AutomaticReason)
	assert.Nil(t, pm.FailedReason)
}

// barrierProvider holds every game search until all expected searches arrived, then
// releases them with a per-name delay.
type barrierProvider struct {
	*fakeProvider
	arrived sync.WaitGroup
	delay   map[string]time.Duration
}

func (b *barrierProvider) SearchGames(ctx context.Context, name string, platformID *int64) ([]igdb.Game, error) {
	b.arrived.Done()
	b.arrived.Wait()
	time.Sleep(b.delay[name])
	return b.fakeProvider.SearchGames(ctx, name, platformID)
}

func TestMatchClone_SiblingsRaceForParent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	parent := f.addGame(t, "Zeruda no Densetsu (Japan)", "1", "")
	f.addGame(t, "Legend of Zelda, The (USA)", "2", "1")
	f.addGame(t, "Zelda no Densetsu (Europe)", "3", "1")
	_, err := f.store.ResolveClones(ctx, f.file.ID)
	require.NoError(t, err)
	require.NoError(t, f.engine.write(ctx, models.PlatformOwner(f.platform.ID), matchedBy(33, models.AutomaticReasonDirectName)))

	f.provider.games["Legend of Zelda, The"] = []igdb.Game{{ID: 1022, Name: "Legend of Zelda, The"}}
	f.provider.games["Zelda no Densetsu"] = []igdb.Game{{ID: 1023, Name: "Zelda no Densetsu"}}
	// Both clones read the parent as unmatched before either searches; the European
	// one answers last.
	p := &barrierProvider{fakeProvider: f.provider, delay: map[string]time.Duration{"Zelda no Densetsu": 80 * time.Millisecond}}
	p.arrived.Add(2)
	engine := NewEngine(f.store, p, Config{}, zap.NewNop())

	var clones []models.Game
	for _, name := range []string{"Legend of Zelda, The (USA)", "Zelda no Densetsu (Europe)"} {
		g, err := f.store.FindGame(ctx, f.file.ID, name)
		require.NoError(t, err)
		require.NotNil(t, g.CloneOfID)
		clones = append(clones, *g)
	}

	var wg sync.WaitGroup
	for _, g := range clones {
		wg.Add(1)
		go func(g models.Game) {
			defer wg.Done()
			assert.NoError(t, engine.MatchClone(ctx, g))
		}(g)
	}
	wg.Wait()

	// The first clone to finish owns the parent; the slower one does not overwrite it.
	pm := f.mapping(t, models.GameOwner(parent.ID))
	require.NotNil(t, pm)
	assert.Equal(t, "1022", *pm.ProviderID)
	assert.Equal(t, models.AutomaticReasonViaChild, *pm.AutomaticReason)

	eu := f.mapping(t, models.GameOwner(clones[1].ID))
	require.NotNil(t, eu)
	assert.Equal(t, "1023", *eu.ProviderID)

	var rows int64
	require.NoError(t, f.store.DB().Model(&models.ExternalMetadataMapping{}).
		Where("game_id = ?", parent.ID).Count(&rows).Error)
	assert.Equal(t, int64(1), rows)
}

func TestMatchClone_ParentMatchedMeanwhileIsKept(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	parent := f.addGame(t, "Zeruda no Densetsu (Japan)", "1", "")
	clone := f.addGame(t, "Legend of Zelda, The (USA)", "2", "1")
	_, err := f.store.ResolveClones(ctx, f.file.ID)
	require.NoError(t, err)
	require.NoError(t, f.engine.write(ctx, models.PlatformOwner(f.platform.ID), matchedBy(33, models.AutomaticReasonDirectName)))

	// The parent gets matched by a sibling after this clone read it as unmatched.
	f.provider.games["Legend of Zelda, The"] = []igdb.Game{{ID: 1022, Name: "Legend of Zelda, The"}}
	engine := NewEngine(f.store, &parentMatcher{fakeProvider: f.provider, engine: f.engine, parent: parent.ID}, Config{}, zap.NewNop())

	stored, err := f.store.FindGame(ctx, f.file.ID, clone.Name)
	require.NoError(t, err)
	require.NoError(t, engine.MatchClone(ctx, *stored))

	pm := f.mapping(t, models.GameOwner(parent.ID))
	require.NotNil(t, pm)
	assert.Equal(t, "2000", *pm.ProviderID)
	assert.Equal(t, models.AutomaticReasonDirectName, *pm.AutomaticReason)

	cm := f.mapping(t, models.GameOwner(clone.ID))
	require.NotNil(t, cm)
	assert.Equal(t, "1022", *cm.ProviderID)
}

// parentMatcher writes a direct match for parent while the clone's search is in flight.
type parentMatcher struct {
	*fakeProvider
	engine *Engine
	parent uuid.UUID
}

func (p *parentMatcher) SearchGames(ctx context.Context, name string, platformID *int64) ([]igdb.Game, error) {
	if err := p.engine.write(ctx, models.GameOwner(p.parent), matchedBy(2000, models.AutomaticReasonDirectName)); err != nil {
		return nil, err
	}
	return p.fakeProvider.SearchGames(ctx, name, platformID)
}

func TestRun_PagesEverything(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for i := 0; i < 7; i++ {
		f.addGame(t, "Game "+string(rune('A'+i)), "", "")
	}

	report, err := f.engine.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, report[PhaseGames].Processed)
	assert.Equal(t, 4, report[PhaseGames].Pages)

	counts, err := f.store.CountMappings(ctx, models.ProviderIGDB)
	require.NoError(t, err)
	assert.Equal(t, int64(7), counts[models.OwnerGame][models.MatchTypeFailed])
}

func TestParsePhase(t *testing.T) {
	p, err := ParsePhase("Platforms")
	require.NoError(t, err)
	assert.Equal(t, PhasePlatforms, p)

	_, err = ParsePhase("franchises")
	assert.Error(t, err)
}
