package catalog

import (
	"catalog-manager/feature/catalog/store"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	handler *Handler
}

// NewFeature creates the catalog browsing feature.
func NewFeature(s *store.Store, logger *zap.Logger) *Feature {
	return &Feature{handler: NewHandler(s, logger)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "catalog"
}

// IsEnabled returns true; the catalog is always served.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
