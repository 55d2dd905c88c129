package identify

// Config holds settings for the identify endpoint.
type Config struct {
	// CacheMaxAgeSeconds is sent as Cache-Control max-age on identify responses.
	CacheMaxAgeSeconds int `mapstructure:"cache_max_age_seconds" default:"3600"`
}
