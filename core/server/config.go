package server

import (
	"net"
	"time"
)

// Config holds configuration for the HTTP server.
type Config struct {
	// Host is the interface to bind. Empty binds all interfaces.
	Host string `mapstructure:"host" default:""`
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API. Empty disables the check.
	ApiKey string `mapstructure:"api_key" default:""`
	// ShutdownTimeoutSeconds bounds graceful shutdown.
	ShutdownTimeoutSeconds int `mapstructure:"shutdown_timeout_seconds" default:"10"`
}

// Addr returns the listen address.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// ShutdownTimeout returns the graceful shutdown bound, 10s when unset.
func (c Config) ShutdownTimeout() time.Duration {
	if c.ShutdownTimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}
