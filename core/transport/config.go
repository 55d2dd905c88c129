package transport

// Config holds settings for outbound HTTP clients.
type Config struct {
	// TimeoutSeconds bounds connection setup, TLS handshake and the whole request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// MaxRetries is the number of retries after the first attempt.
	MaxRetries int `mapstructure:"max_retries" default:"3"`
	// RequestsPerWindow is the number of requests allowed per window. Zero disables limiting.
	RequestsPerWindow int `mapstructure:"requests_per_window" default:"4"`
	// WindowMillis is the length of the rate-limit window in milliseconds.
	WindowMillis int `mapstructure:"window_ms" default:"1000"`
	// UserAgent is sent with every request when set.
	UserAgent string `mapstructure:"user_agent" default:"catalog-manager"`
}
