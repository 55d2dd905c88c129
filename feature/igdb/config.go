package igdb

import "catalog-manager/core/transport"

// Config holds settings for the IGDB client.
type Config struct {
	// ClientID is the Twitch application client id.
	ClientID string `mapstructure:"client_id" default:""`
	// ClientSecret is the Twitch application client secret.
	ClientSecret string `mapstructure:"client_secret" default:""`
	// BaseURL is the IGDB API root.
	BaseURL string `mapstructure:"base_url" default:"https://api.igdb.com/v4"`
	// TokenURL is the OAuth2 client-credentials endpoint.
	TokenURL string `mapstructure:"token_url" default:"https://id.twitch.tv/oauth2/token"`
	// TokenRefreshSkewSeconds refreshes the token when less than this many seconds remain.
	TokenRefreshSkewSeconds int `mapstructure:"token_refresh_skew_seconds" default:"60"`
	// SearchLimit is the result limit of search queries.
	SearchLimit int `mapstructure:"search_limit" default:"50"`
	// CacheTTLSeconds is the lifetime of cached responses.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"86400"`
	// CacheMaxEntries bounds each response cache. Zero means unbounded.
	CacheMaxEntries int `mapstructure:"cache_max_entries" default:"10000"`
	// HTTP configures timeouts, retries and the rate limit (IGDB allows 4 requests per second).
	HTTP transport.Config `mapstructure:"http"`
}

// Enabled reports whether credentials are configured.
func (c Config) Enabled() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}
