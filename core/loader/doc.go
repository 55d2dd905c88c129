// Package loader registers the HTTP features of the service.
//
// Each feature implements:
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// The Manager keeps features in registration order. LoadAll skips disabled features
// (the IGDB lookups are disabled without credentials) and stops at the first feature
// that fails to load.
package loader
