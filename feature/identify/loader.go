package identify

import (
	"catalog-manager/feature/catalog/store"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	handler *Handler
}

// NewFeature creates the identify feature.
func NewFeature(s *store.Store, cfg Config, logger *zap.Logger) *Feature {
	return &Feature{handler: NewHandler(NewService(s, logger), cfg, logger)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "identify"
}

// IsEnabled returns true; identify only needs the database.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
