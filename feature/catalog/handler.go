package catalog

import (
	"catalog-manager/core/logger"
	"catalog-manager/core/utils"
	"catalog-manager/feature/catalog/store"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler exposes the catalog graph over HTTP.
type Handler struct {
	store  *store.Store
	logger *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(s *store.Store, logger *zap.Logger) *Handler {
	return &Handler{store: s, logger: logger}
}

// RegisterRoutes registers the catalog routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/catalogs", h.HandleListCatalogs)
	app.Get("/publishers", h.HandleListPublishers)
	app.Get("/platforms", h.HandleListPlatforms)
	app.Get("/imports", h.HandleListImports)
}

// HandleListCatalogs lists signature catalogs.
// @Summary List Signature Catalogs
// @Tags catalog
// @Produce json
// @Success 200 {array} models.SignatureCatalog
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/catalogs [get]
func (h *Handler) HandleListCatalogs(c *fiber.Ctx) error {
	out, err := h.store.ListCatalogs(c.Context())
	if err != nil {
		return h.fail(c, "Failed to list catalogs", err)
	}
	return c.JSON(out)
}

// HandleListPublishers lists publishers with their external metadata.
// @Summary List Publishers
// @Tags catalog
// @Produce json
// @Success 200 {array} store.PublisherWithMappings
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/publishers [get]
func (h *Handler) HandleListPublishers(c *fiber.Ctx) error {
	out, err := h.store.ListPublishers(c.Context())
	if err != nil {
		return h.fail(c, "Failed to list publishers", err)
	}
	return c.JSON(out)
}

// HandleListPlatforms lists platforms with their external metadata.
// @Summary List Platforms
// @Tags catalog
// @Produce json
// @Success 200 {array} store.PlatformWithMappings
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/platforms [get]
func (h *Handler) HandleListPlatforms(c *fiber.Ctx) error {
	out, err := h.store.ListPlatforms(c.Context())
	if err != nil {
		return h.fail(c, "Failed to list platforms", err)
	}
	return c.JSON(out)
}

// HandleListImports lists the most recent imports.
// @Summary List Imports
// @Tags catalog
// @Produce json
// @Param limit query int false "Maximum rows (default 50, max 500)"
// @Success 200 {array} models.CatalogImport
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/imports [get]
func (h *Handler) HandleListImports(c *fiber.Ctx) error {
	limit, err := utils.ToLimit(c.Query("limit"), 50, 500)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	out, err := h.store.ListImports(c.Context(), limit)
	if err != nil {
		return h.fail(c, "Failed to list imports", err)
	}
	return c.JSON(out)
}

func (h *Handler) fail(c *fiber.Ctx, msg string, err error) error {
	logger.WithRayID(h.logger, c).Error(msg, zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}
