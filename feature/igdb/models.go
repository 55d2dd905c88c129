package igdb

// Game is an IGDB game record.
type Game struct {
	ID                int64   `json:"id"`
	Name              string  `json:"name"`
	Slug              string  `json:"slug,omitempty"`
	Summary           string  `json:"summary,omitempty"`
	Storyline         string  `json:"storyline,omitempty"`
	URL               string  `json:"url,omitempty"`
	Checksum          string  `json:"checksum,omitempty"`
	Category          int     `json:"category,omitempty"`
	FirstReleaseDate  *int64  `json:"first_release_date,omitempty"`
	Cover             *int64  `json:"cover,omitempty"`
	Collection        *int64  `json:"collection,omitempty"`
	Franchise         *int64  `json:"franchise,omitempty"`
	ParentGame        *int64  `json:"parent_game,omitempty"`
	VersionParent     *int64  `json:"version_parent,omitempty"`
	AggregatedRating  float64 `json:"aggregated_rating,omitempty"`
	Rating            float64 `json:"rating,omitempty"`
	AgeRatings        []int64 `json:"age_ratings,omitempty"`
	AlternativeNames  []int64 `json:"alternative_names,omitempty"`
	Artworks          []int64 `json:"artworks,omitempty"`
	Collections       []int64 `json:"collections,omitempty"`
	ExternalGames     []int64 `json:"external_games,omitempty"`
	Franchises        []int64 `json:"franchises,omitempty"`
	Genres            []int64 `json:"genres,omitempty"`
	InvolvedCompanies []int64 `json:"involved_companies,omitempty"`
	Platforms         []int64 `json:"platforms,omitempty"`
	Screenshots       []int64 `json:"screenshots,omitempty"`
}

// Company is an IGDB company record.
type Company struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug,omitempty"`
	Description string  `json:"description,omitempty"`
	URL         string  `json:"url,omitempty"`
	Country     *int    `json:"country,omitempty"`
	Parent      *int64  `json:"parent,omitempty"`
	Developed   []int64 `json:"developed,omitempty"`
	Published   []int64 `json:"published,omitempty"`
	Checksum    string  `json:"checksum,omitempty"`
}

// Platform is an IGDB platform record.
type Platform struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Abbreviation    string `json:"abbreviation,omitempty"`
	AlternativeName string `json:"alternative_name,omitempty"`
	Slug            string `json:"slug,omitempty"`
	Summary         string `json:"summary,omitempty"`
	URL             string `json:"url,omitempty"`
	Generation      *int   `json:"generation,omitempty"`
	PlatformFamily  *int64 `json:"platform_family,omitempty"`
	PlatformLogo    *int64 `json:"platform_logo,omitempty"`
	Checksum        string `json:"checksum,omitempty"`
}

// AgeRating is an IGDB age rating record.
type AgeRating struct {
	ID                  int64   `json:"id"`
	Category            int     `json:"category,omitempty"`
	Rating              int     `json:"rating,omitempty"`
	RatingCoverURL      string  `json:"rating_cover_url,omitempty"`
	Synopsis            string  `json:"synopsis,omitempty"`
	ContentDescriptions []int64 `json:"content_descriptions,omitempty"`
	Checksum            string  `json:"checksum,omitempty"`
}

// AlternativeName is a secondary title of a game.
type AlternativeName struct {
	ID       int64  `json:"id"`
	Game     int64  `json:"game"`
	Name     string `json:"name"`
	Comment  string `json:"comment,omitempty"`
	Checksum string `json:"checksum,omitempty"`
}

// Image is the shape shared by artworks and covers.
type Image struct {
	ID           int64  `json:"id"`
	Game         int64  `json:"game,omitempty"`
	ImageID      string `json:"image_id"`
	URL          string `json:"url,omitempty"`
	Width        int    `json:"width,omitempty"`
	Height       int    `json:"height,omitempty"`
	AlphaChannel bool   `json:"alpha_channel,omitempty"`
	Animated     bool   `json:"animated,omitempty"`
	Checksum     string `json:"checksum,omitempty"`
}

// Artwork is an IGDB artwork record.
type Artwork = Image

// Cover is an IGDB cover record.
type Cover = Image

// Collection is an IGDB collection (series) record.
type Collection struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Slug     string  `json:"slug,omitempty"`
	URL      string  `json:"url,omitempty"`
	Games    []int64 `json:"games,omitempty"`
	Checksum string  `json:"checksum,omitempty"`
}

// ExternalGame links an IGDB game to another service (Steam, GOG, ...).
type ExternalGame struct {
	ID       int64  `json:"id"`
	Game     int64  `json:"game"`
	Name     string `json:"name,omitempty"`
	UID      string `json:"uid,omitempty"`
	URL      string `json:"url,omitempty"`
	Category int    `json:"category,omitempty"`
	Platform *int64 `json:"platform,omitempty"`
	Checksum string `json:"checksum,omitempty"`
}

// Franchise is an IGDB franchise record.
type Franchise struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Slug     string  `json:"slug,omitempty"`
	URL      string  `json:"url,omitempty"`
	Games    []int64 `json:"games,omitempty"`
	Checksum string  `json:"checksum,omitempty"`
}

// Genre is an IGDB genre record.
type Genre struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug,omitempty"`
	URL      string `json:"url,omitempty"`
	Checksum string `json:"checksum,omitempty"`
}
