// Package server holds the HTTP server configuration.
//
// The cmd package builds the Fiber app; this package only defines the listen address,
// the API key and the graceful shutdown bound.
package server
