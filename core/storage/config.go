package storage

import "time"

// Config holds configuration for the object storage holding DAT sources and archives.
type Config struct {
	// Endpoint is the host of the storage service. Empty disables storage.
	Endpoint string `mapstructure:"endpoint" default:""`
	// AccessKey is the access key ID for authentication.
	AccessKey string `mapstructure:"access_key" default:""`
	// SecretKey is the secret access key for authentication.
	SecretKey string `mapstructure:"secret_key" default:""`
	// UseSSL indicates whether to use SSL/TLS for connections.
	UseSSL bool `mapstructure:"use_ssl" default:"false"`
	// Bucket holds DAT sources and archived downloads.
	Bucket string `mapstructure:"bucket" default:"catalogs"`
	// Region is the location of the bucket (e.g., us-east-1).
	Region string `mapstructure:"region" default:""`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

// Enabled reports whether an endpoint is configured.
func (c Config) Enabled() bool {
	return c.Endpoint != ""
}

// Timeout returns the connection timeout, 30s when unset.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}
