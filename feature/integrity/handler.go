package integrity

import (
	"catalog-manager/core/logger"
	"catalog-manager/core/utils"
	"catalog-manager/feature/integrity/checks"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for integrity checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	// Force import for Swagger
	var _ = checks.ServerReport{}
	return &Handler{service: service}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/integrity")
	group.Get("/", h.HandleIntegrityCheck)
	group.Get("/structure", h.HandleStructureCheck)
	group.Get("/catalogs", h.HandleCatalogCheck)
	group.Get("/server", h.HandleServerCheck)
	group.Get("/matching", h.HandleMatchingCheck)
}

func failed(err error) fiber.Map {
	return fiber.Map{"status": "error", "error": err.Error()}
}

// HandleIntegrityCheck triggers all integrity checks.
// @Summary Run All Integrity Checks
// @Description Performs every integrity check (Structure, Catalogs, Server, Matching). A failing check is reported in place and does not stop the others.
// @Tags integrity
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Combined Report"
// @Router /api/integrity [get]
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering all integrity checks")

	ctx := c.Context()
	report := make(map[string]interface{})

	if missing, err := h.service.CheckStructure(ctx); err != nil {
		report["structure"] = failed(err)
	} else {
		report["structure"] = fiber.Map{"status": "ok", "missing": missing}
	}

	if cat, err := h.service.CheckCatalogs(ctx); err != nil {
		report["catalogs"] = failed(err)
	} else {
		report["catalogs"] = cat
	}

	if srv, err := h.service.CheckServer(); err != nil {
		report["server"] = failed(err)
	} else {
		report["server"] = srv
	}

	if m, err := h.service.CheckMatching(ctx); err != nil {
		report["matching"] = failed(err)
	} else {
		report["matching"] = m
	}

	return c.JSON(report)
}

// HandleStructureCheck checks and optionally fixes structure.
// @Summary Check Structure
// @Description Checks that the bucket holds a source folder per catalog and the archive folder. Optionally creates the missing folders.
// @Tags integrity
// @Accept json
// @Produce json
// @Param fix query boolean false "Fix missing folders"
// @Success 200 {object} map[string]interface{} "Structure Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/integrity/structure [get]
func (h *Handler) HandleStructureCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	fix := utils.ToBool(c.Query("fix"))

	missing, err := h.service.CheckStructure(c.Context())
	if err != nil {
		l.Error("Structure check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if len(missing) > 0 {
		l.Warn("Missing folders detected", zap.Strings("missing", missing))

		if fix {
			l.Info("Attempting to fix missing folders")
			if err := h.service.FixStructure(c.Context(), missing); err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error":   "Failed to fix structure",
					"details": err.Error(),
					"missing": missing,
				})
			}
			return c.JSON(fiber.Map{
				"status": "fixed",
				"fixed":  missing,
			})
		}
	}

	return c.JSON(fiber.Map{
		"status":  "checked",
		"missing": missing,
	})
}

// HandleCatalogCheck reports catalog seeding and import coverage.
// @Summary Check Signature Catalogs
// @Description Lists default catalogs missing from the database and catalogs with no imported file.
// @Tags integrity
// @Produce json
// @Success 200 {object} checks.CatalogReport "Catalog Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/integrity/catalogs [get]
func (h *Handler) HandleCatalogCheck(c *fiber.Ctx) error {
	report, err := h.service.CheckCatalogs(c.Context())
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Catalog check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}

// HandleServerCheck checks server schema integrity.
// @Summary Check Server Schema
// @Description Checks that the database schema matches the catalog models.
// @Tags integrity
// @Accept json
// @Produce json
// @Success 200 {object} checks.ServerReport "Server Check Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/integrity/server [get]
func (h *Handler) HandleServerCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Starting server schema check")

	report, err := h.service.CheckServer()
	if err != nil {
		l.Error("Server schema check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(report)
}

// HandleMatchingCheck reports mapping coverage.
// @Summary Check Matching Coverage
// @Description Counts IGDB mappings per owner kind and match type.
// @Tags integrity
// @Produce json
// @Success 200 {object} MatchingReport "Matching Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/integrity/matching [get]
func (h *Handler) HandleMatchingCheck(c *fiber.Ctx) error {
	report, err := h.service.CheckMatching(c.Context())
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Matching check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}
