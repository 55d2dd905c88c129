package igdb

import (
	"context"
	"strconv"
	"time"

	"catalog-manager/core/cache"
)

// lookupCache holds the three lookup shapes of one entity type.
type lookupCache[T any] struct {
	byID   *cache.Cache[int64, *T]
	byIDs  *cache.Cache[string, []T]
	search *cache.Cache[string, []T]
}

func newLookupCache[T any](opts cache.Options) *lookupCache[T] {
	return &lookupCache[T]{
		byID:   cache.New[int64, *T](opts),
		byIDs:  cache.New[string, []T](opts),
		search: cache.New[string, []T](opts),
	}
}

func (l *lookupCache[T]) getByID(ctx context.Context, id int64, load func(context.Context, int64) (*T, error)) (*T, error) {
	return l.byID.GetOrLoad(ctx, id, func(ctx context.Context) (*T, error) {
		return load(ctx, id)
	})
}

func (l *lookupCache[T]) getByIDs(ctx context.Context, ids []int64, load func(context.Context, []int64) ([]T, error)) ([]T, error) {
	return l.byIDs.GetOrLoad(ctx, IDList(ids), func(ctx context.Context) ([]T, error) {
		return load(ctx, ids)
	})
}

func (l *lookupCache[T]) searchBy(ctx context.Context, key string, load func(context.Context) ([]T, error)) ([]T, error) {
	return l.search.GetOrLoad(ctx, key, load)
}

func (l *lookupCache[T]) purge() {
	l.byID.Purge()
	l.byIDs.Purge()
	l.search.Purge()
}

// CachedClient wraps Client with read-through caches, one per entity type and lookup
// shape. Empty answers are cached too.
type CachedClient struct {
	client *Client

	games            *lookupCache[Game]
	companies        *lookupCache[Company]
	platforms        *lookupCache[Platform]
	ageRatings       *lookupCache[AgeRating]
	alternativeNames *lookupCache[AlternativeName]
	artworks         *lookupCache[Artwork]
	collections      *lookupCache[Collection]
	covers           *lookupCache[Cover]
	externalGames    *lookupCache[ExternalGame]
	franchises       *lookupCache[Franchise]
	genres           *lookupCache[Genre]
}

// NewCachedClient wraps client using the cache settings of cfg.
func NewCachedClient(client *Client, cfg Config) *CachedClient {
	opts := cache.Options{
		TTL:             time.Duration(cfg.CacheTTLSeconds) * time.Second,
		MaxEntries:      cfg.CacheMaxEntries,
		RefreshOnAccess: true,
	}
	return &CachedClient{
		client:           client,
		games:            newLookupCache[Game](opts),
		companies:        newLookupCache[Company](opts),
		platforms:        newLookupCache[Platform](opts),
		ageRatings:       newLookupCache[AgeRating](opts),
		alternativeNames: newLookupCache[AlternativeName](opts),
		artworks:         newLookupCache[Artwork](opts),
		collections:      newLookupCache[Collection](opts),
		covers:           newLookupCache[Cover](opts),
		externalGames:    newLookupCache[ExternalGame](opts),
		franchises:       newLookupCache[Franchise](opts),
		genres:           newLookupCache[Genre](opts),
	}
}

// Purge empties every cache.
func (c *CachedClient) Purge() {
	c.games.purge()
	c.companies.purge()
	c.platforms.purge()
	c.ageRatings.purge()
	c.alternativeNames.purge()
	c.artworks.purge()
	c.collections.purge()
	c.covers.purge()
	c.externalGames.purge()
	c.franchises.purge()
	c.genres.purge()
}

func (c *CachedClient) SearchGames(ctx context.Context, name string, platformID *int64) ([]Game, error) {
	key := name
	if platformID != nil {
		key = strconv.FormatInt(*platformID, 10) + "|" + name
	}
	return c.games.searchBy(ctx, key, func(ctx context.Context) ([]Game, error) {
		return c.client.SearchGames(ctx, name, platformID)
	})
}

func (c *CachedClient) SearchCompaniesByName(ctx context.Context, name string) ([]Company, error) {
	return c.companies.searchBy(ctx, name, func(ctx context.Context) ([]Company, error) {
		return c.client.SearchCompaniesByName(ctx, name)
	})
}

func (c *CachedClient) SearchPlatformsByName(ctx context.Context, name string) ([]Platform, error) {
	return c.platforms.searchBy(ctx, name, func(ctx context.Context) ([]Platform, error) {
		return c.client.SearchPlatformsByName(ctx, name)
	})
}

func (c *CachedClient) SearchCollections(ctx context.Context, name string) ([]Collection, error) {
	return c.collections.searchBy(ctx, name, func(ctx context.Context) ([]Collection, error) {
		return c.client.SearchCollections(ctx, name)
	})
}

func (c *CachedClient) SearchFranchises(ctx context.Context, name string) ([]Franchise, error) {
	return c.franchises.searchBy(ctx, name, func(ctx context.Context) ([]Franchise, error) {
		return c.client.SearchFranchises(ctx, name)
	})
}

func (c *CachedClient) GetGameByID(ctx context.Context, id int64) (*Game, error) {
	return c.games.getByID(ctx, id, c.client.GetGameByID)
}

func (c *CachedClient) GetGamesByIDs(ctx context.Context, ids []int64) ([]Game, error) {
	return c.games.getByIDs(ctx, ids, c.client.GetGamesByIDs)
}

func (c *CachedClient) GetCompanyByID(ctx context.Context, id int64) (*Company, error) {
	return c.companies.getByID(ctx, id, c.client.GetCompanyByID)
}

func (c *CachedClient) GetCompaniesByIDs(ctx context.Context, ids []int64) ([]Company, error) {
	return c.companies.getByIDs(ctx, ids, c.client.GetCompaniesByIDs)
}

func (c *CachedClient) GetPlatformByID(ctx context.Context, id int64) (*Platform, error) {
	return c.platforms.getByID(ctx, id, c.client.GetPlatformByID)
}

func (c *CachedClient) GetPlatformsByIDs(ctx context.Context, ids []int64) ([]Platform, error) {
	return c.platforms.getByIDs(ctx, ids, c.client.GetPlatformsByIDs)
}

func (c *CachedClient) GetAgeRatingByID(ctx context.Context, id int64) (*AgeRating, error) {
	return c.ageRatings.getByID(ctx, id, c.client.GetAgeRatingByID)
}

func (c *CachedClient) GetAgeRatingsByIDs(ctx context.Context, ids []int64) ([]AgeRating, error) {
	return c.ageRatings.getByIDs(ctx, ids, c.client.GetAgeRatingsByIDs)
}

func (c *CachedClient) GetAlternativeNameByID(ctx context.Context, id int64) (*AlternativeName, error) {
	return c.alternativeNames.getByID(ctx, id, c.client.GetAlternativeNameByID)
}

func (c *CachedClient) GetAlternativeNamesByIDs(ctx context.Context, ids []int64) ([]AlternativeName, error) {
	return c.alternativeNames.getByIDs(ctx, ids, c.client.GetAlternativeNamesByIDs)
}

func (c *CachedClient) GetArtworkByID(ctx context.Context, id int64) (*Artwork, error) {
	return c.artworks.getByID(ctx, id, c.client.GetArtworkByID)
}

func (c *CachedClient) GetArtworksByIDs(ctx context.Context, ids []int64) ([]Artwork, error) {
	return c.artworks.getByIDs(ctx, ids, c.client.GetArtworksByIDs)
}

func (c *CachedClient) GetCollectionByID(ctx context.Context, id int64) (*Collection, error) {
	return c.collections.getByID(ctx, id, c.client.GetCollectionByID)
}

func (c *CachedClient) GetCollectionsByIDs(ctx context.Context, ids []int64) ([]Collection, error) {
	return c.collections.getByIDs(ctx, ids, c.client.GetCollectionsByIDs)
}

func (c *CachedClient) GetCoverByID(ctx context.Context, id int64) (*Cover, error) {
	return c.covers.getByID(ctx, id, c.client.GetCoverByID)
}

func (c *CachedClient) GetCoversByIDs(ctx context.Context, ids []int64) ([]Cover, error) {
	return c.covers.getByIDs(ctx, ids, c.client.GetCoversByIDs)
}

func (c *CachedClient) GetExternalGameByID(ctx context.Context, id int64) (*ExternalGame, error) {
	return c.externalGames.getByID(ctx, id, c.client.GetExternalGameByID)
}

func (c *CachedClient) GetExternalGamesByIDs(ctx context.Context, ids []int64) ([]ExternalGame, error) {
	return c.externalGames.getByIDs(ctx, ids, c.client.GetExternalGamesByIDs)
}

func (c *CachedClient) GetFranchiseByID(ctx context.Context, id int64) (*Franchise, error) {
	return c.franchises.getByID(ctx, id, c.client.GetFranchiseByID)
}

func (c *CachedClient) GetFranchisesByIDs(ctx context.Context, ids []int64) ([]Franchise, error) {
	return c.franchises.getByIDs(ctx, ids, c.client.GetFranchisesByIDs)
}

func (c *CachedClient) GetGenreByID(ctx context.Context, id int64) (*Genre, error) {
	return c.genres.getByID(ctx, id, c.client.GetGenreByID)
}

func (c *CachedClient) GetGenresByIDs(ctx context.Context, ids []int64) ([]Genre, error) {
	return c.genres.getByIDs(ctx, ids, c.client.GetGenresByIDs)
}
