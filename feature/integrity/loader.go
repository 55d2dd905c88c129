package integrity

import (
	"catalog-manager/core/storage"
	"catalog-manager/feature/catalog/store"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	handler *Handler
}

// NewFeature creates the integrity feature.
func NewFeature(client storage.Client, bucket string, folders []string, s *store.Store, logger *zap.Logger) *Feature {
	return &Feature{handler: NewHandler(NewService(client, bucket, folders, s, logger))}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "integrity"
}

// IsEnabled returns true; checks that need storage report it as missing.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
