package matching

import (
	"context"

	"catalog-manager/feature/igdb"
)

// Provider is the subset of the IGDB client the matchers use.
type Provider interface {
	SearchCompaniesByName(ctx context.Context, name string) ([]igdb.Company, error)
	SearchPlatformsByName(ctx context.Context, name string) ([]igdb.Platform, error)
	SearchGames(ctx context.Context, name string, platformID *int64) ([]igdb.Game, error)
	GetAlternativeNamesByIDs(ctx context.Context, ids []int64) ([]igdb.AlternativeName, error)
}

var _ Provider = (*igdb.CachedClient)(nil)
