package matching

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"catalog-manager/core/reconcile"
	"catalog-manager/feature/catalog/models"
	"catalog-manager/feature/catalog/naming"
	"catalog-manager/feature/catalog/store"
	"catalog-manager/feature/igdb"

	"go.uber.org/zap"
)

// ErrPlatformNotMatched is returned for a game whose platform has no usable provider
// mapping yet. Platforms must be reconciled before games.
var ErrPlatformNotMatched = errors.New("platform has no provider mapping")

// Phase is one sweep of a reconciliation pass.
type Phase string

const (
	PhasePublishers Phase = "publishers"
	PhasePlatforms  Phase = "platforms"
	PhaseGames      Phase = "games"
	PhaseClones     Phase = "clones"
)

// AllPhases is the order of a full pass. Games depend on platform mappings and clones
// on the mappings of their parents.
var AllPhases = []Phase{PhasePublishers, PhasePlatforms, PhaseGames, PhaseClones}

// ParsePhase validates a phase name.
func ParsePhase(s string) (Phase, error) {
	for _, p := range AllPhases {
		if string(p) == strings.ToLower(s) {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown reconciliation phase %q", s)
}

// Report holds the stats of each phase that ran.
type Report map[Phase]reconcile.Stats

// Engine reconciles publishers, platforms and games against the provider.
type Engine struct {
	store    *store.Store
	provider Provider
	name     models.Provider
	opts     reconcile.Options
	logger   *zap.Logger
}

// NewEngine creates an engine writing mappings for the IGDB provider.
func NewEngine(s *store.Store, provider Provider, cfg Config, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		store:    s,
		provider: provider,
		name:     models.ProviderIGDB,
		opts: reconcile.Options{
			PageSize:    cfg.PageSize,
			Concurrency: cfg.Concurrency,
			Logger:      logger,
		},
		logger: logger,
	}
}

// Run executes the given phases, or every phase, in pass order. A phase that cannot
// page through its entities stops the pass; per-entity failures do not.
func (e *Engine) Run(ctx context.Context, phases ...Phase) (Report, error) {
	if len(phases) == 0 {
		phases = AllPhases
	}
	wanted := make(map[Phase]bool, len(phases))
	for _, p := range phases {
		wanted[p] = true
	}

	report := Report{}
	for _, p := range AllPhases {
		if !wanted[p] {
			continue
		}
		stats, err := e.runPhase(ctx, p)
		report[p] = stats
		if err != nil {
			return report, fmt.Errorf("reconcile %s: %w", p, err)
		}
	}
	return report, nil
}

func (e *Engine) runPhase(ctx context.Context, p Phase) (reconcile.Stats, error) {
	switch p {
	case PhasePublishers:
		return reconcile.Sweep[models.Publisher](ctx, reconcile.FuncAdapter[models.Publisher]{
			AdapterName: string(p),
			Fetch: func(ctx context.Context, after string, limit int) ([]models.Publisher, error) {
				return e.store.UnmatchedPublishers(ctx, e.name, after, limit)
			},
			KeyOf:   func(pub models.Publisher) string { return pub.ID.String() },
			Process: e.MatchPublisher,
		}, e.opts)
	case PhasePlatforms:
		return reconcile.Sweep[models.Platform](ctx, reconcile.FuncAdapter[models.Platform]{
			AdapterName: string(p),
			Fetch: func(ctx context.Context, after string, limit int) ([]models.Platform, error) {
				return e.store.UnmatchedPlatforms(ctx, e.name, after, limit)
			},
			KeyOf:   func(plat models.Platform) string { return plat.ID.String() },
			Process: e.MatchPlatform,
		}, e.opts)
	case PhaseGames, PhaseClones:
		clones := p == PhaseClones
		process := e.MatchGame
		if clones {
			process = e.MatchClone
		}
		return reconcile.Sweep[models.Game](ctx, reconcile.FuncAdapter[models.Game]{
			AdapterName: string(p),
			Fetch: func(ctx context.Context, after string, limit int) ([]models.Game, error) {
				return e.store.UnmatchedGames(ctx, e.name, clones, after, limit)
			},
			KeyOf:   func(g models.Game) string { return g.ID.String() },
			Process: process,
		}, e.opts)
	default:
		return reconcile.Stats{}, fmt.Errorf("unknown phase %q", p)
	}
}

// MatchPublisher maps a publisher to the first company with the same name.
func (e *Engine) MatchPublisher(ctx context.Context, pub models.Publisher) error {
	companies, err := e.provider.SearchCompaniesByName(ctx, pub.Name)
	if err != nil {
		return fmt.Errorf("search companies for %q: %w", pub.Name, err)
	}
	d := noMatch(models.FailedReasonNoDirectMatch)
	for _, c := range companies {
		if strings.EqualFold(c.Name, pub.Name) {
			d = matchedBy(c.ID, models.AutomaticReasonDirectName)
			break
		}
	}
	return e.write(ctx, models.PublisherOwner(pub.ID), d)
}

// MatchPlatform maps a platform to the first provider platform with the same name.
func (e *Engine) MatchPlatform(ctx context.Context, plat models.Platform) error {
	platforms, err := e.provider.SearchPlatformsByName(ctx, plat.Name)
	if err != nil {
		return fmt.Errorf("search platforms for %q: %w", plat.Name, err)
	}
	d := noMatch(models.FailedReasonNoDirectMatch)
	for _, p := range platforms {
		if strings.EqualFold(p.Name, plat.Name) {
			d = matchedBy(p.ID, models.AutomaticReasonDirectName)
			break
		}
	}
	return e.write(ctx, models.PlatformOwner(plat.ID), d)
}

// MatchGame maps a game by name within its platform.
func (e *Engine) MatchGame(ctx context.Context, g models.Game) error {
	d, err := e.decideGame(ctx, g)
	if err != nil {
		return err
	}
	return e.write(ctx, models.GameOwner(g.ID), d)
}

// MatchClone maps a clone. A matched parent is copied onto the clone without asking
// the provider. Otherwise the clone is matched by name and, when that succeeds, its
// match is copied back onto the parent unless the parent got matched meanwhile. When
// sibling clones race, the first one to reach the parent wins.
func (e *Engine) MatchClone(ctx context.Context, g models.Game) error {
	if g.CloneOfID == nil {
		return e.MatchGame(ctx, g)
	}
	parentOwner := models.GameOwner(*g.CloneOfID)

	parent, err := e.store.FindMapping(ctx, parentOwner, e.name)
	if err != nil {
		return err
	}
	if parent != nil && parent.MatchType.IsMatched() && parent.ProviderID != nil {
		return e.write(ctx, models.GameOwner(g.ID), copiedFrom(*parent.ProviderID, models.AutomaticReasonViaParent))
	}

	d, err := e.decideGame(ctx, g)
	if err != nil {
		return err
	}
	if err := e.write(ctx, models.GameOwner(g.ID), d); err != nil {
		return err
	}
	if d.matchType != models.MatchTypeAutomatic {
		return nil
	}
	m, err := copiedFrom(*d.providerID, models.AutomaticReasonViaChild).mapping(parentOwner, e.name)
	if err != nil {
		return err
	}
	claimed, err := e.store.ClaimMapping(ctx, m)
	if err != nil {
		return err
	}
	e.logger.Debug("Propagating clone match to parent",
		zap.String("game", g.Name),
		zap.String("parent", g.CloneOfID.String()),
		zap.String("provider_id", *d.providerID),
		zap.Bool("claimed", claimed),
	)
	return nil
}

// decideGame searches the provider for g: exact name first, then alternative names.
func (e *Engine) decideGame(ctx context.Context, g models.Game) (decision, error) {
	platformID, err := e.store.CatalogFilePlatform(ctx, g.CatalogFileID)
	if err != nil {
		return decision{}, err
	}
	pm, err := e.store.FindMapping(ctx, models.PlatformOwner(platformID), e.name)
	if err != nil {
		return decision{}, err
	}
	if pm == nil || !pm.MatchType.IsMatched() || pm.ProviderID == nil {
		return decision{}, fmt.Errorf("game %q: %w", g.Name, ErrPlatformNotMatched)
	}
	providerPlatform, err := strconv.ParseInt(*pm.ProviderID, 10, 64)
	if err != nil {
		return decision{}, fmt.Errorf("game %q: platform provider id %q: %w", g.Name, *pm.ProviderID, err)
	}

	name := naming.CleanDisplayName(g.Name)
	candidates, err := e.provider.SearchGames(ctx, name, &providerPlatform)
	if err != nil {
		return decision{}, fmt.Errorf("search games for %q: %w", name, err)
	}

	for _, c := range candidates {
		if strings.EqualFold(c.Name, name) {
			return matchedBy(c.ID, models.AutomaticReasonDirectName), nil
		}
	}

	id, ok, err := e.matchAlternativeName(ctx, name, candidates)
	if err != nil {
		return decision{}, err
	}
	if ok {
		return matchedBy(id, models.AutomaticReasonAlternativeName), nil
	}
	return noMatch(models.FailedReasonNoDirectMatch), nil
}

// matchAlternativeName resolves the alternative names of the candidates and returns
// the candidate owning the first one equal to name.
func (e *Engine) matchAlternativeName(ctx context.Context, name string, candidates []igdb.Game) (int64, bool, error) {
	var ids []int64
	owner := make(map[int64]int64)
	for _, c := range candidates {
		for _, alt := range c.AlternativeNames {
			if _, seen := owner[alt]; !seen {
				owner[alt] = c.ID
				ids = append(ids, alt)
			}
		}
	}
	if len(ids) == 0 {
		return 0, false, nil
	}

	alts, err := e.provider.GetAlternativeNamesByIDs(ctx, ids)
	if err != nil {
		return 0, false, fmt.Errorf("resolve alternative names for %q: %w", name, err)
	}
	// Candidate order decides, not the order of the provider's answer.
	byID := make(map[int64]igdb.AlternativeName, len(alts))
	for _, a := range alts {
		byID[a.ID] = a
	}
	for _, id := range ids {
		if a, ok := byID[id]; ok && strings.EqualFold(a.Name, name) {
			return owner[id], true, nil
		}
	}
	return 0, false, nil
}

func (e *Engine) write(ctx context.Context, owner models.Owner, d decision) error {
	m, err := d.mapping(owner, e.name)
	if err != nil {
		return err
	}
	return e.store.UpsertMapping(ctx, m)
}
