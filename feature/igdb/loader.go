package igdb

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	cfg     Config
	handler *Handler
}

// NewFeature creates the IGDB lookup feature over a shared cached client.
func NewFeature(cfg Config, client *CachedClient, logger *zap.Logger) *Feature {
	return &Feature{cfg: cfg, handler: NewHandler(client, logger)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "igdb"
}

// IsEnabled reports whether IGDB credentials are configured.
func (f *Feature) IsEnabled() bool {
	return f.cfg.Enabled()
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
