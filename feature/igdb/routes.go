package igdb

// API routes.
const (
	RouteGames            = "games"
	RouteAgeRatings       = "age_ratings"
	RouteAlternativeNames = "alternative_names"
	RouteArtworks         = "artworks"
	RouteCollections      = "collections"
	RouteCovers           = "covers"
	RouteExternalGames    = "external_games"
	RouteFranchises       = "franchises"
	RouteGenres           = "genres"
	RouteCompanies        = "companies"
	RoutePlatforms        = "platforms"
)

// maxIDsPerRequest is the largest limit IGDB accepts.
const maxIDsPerRequest = 500
