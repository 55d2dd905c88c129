package identify

import (
	"fmt"
	"strconv"

	"catalog-manager/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler serves identify requests.
type Handler struct {
	service *Service
	maxAge  int
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, cfg Config, logger *zap.Logger) *Handler {
	return &Handler{service: service, maxAge: cfg.CacheMaxAgeSeconds, logger: logger}
}

// RegisterRoutes registers the identify routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/identify/ids", h.HandleIdentify)
}

// HandleIdentify resolves a file to a game.
// @Summary Identify File
// @Description Matches a file by SHA256, SHA1, MD5 and finally by name and size.
// @Tags identify
// @Produce json
// @Param fileName query string true "File name"
// @Param fileSize query int true "File size in bytes"
// @Param md5 query string false "MD5 hash"
// @Param sha1 query string false "SHA1 hash"
// @Param sha256 query string false "SHA256 hash"
// @Success 200 {object} MatchResult
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/identify/ids [get]
func (h *Handler) HandleIdentify(c *fiber.Ctx) error {
	q := Search{
		FileName: c.Query("fileName"),
		MD5:      c.Query("md5"),
		SHA1:     c.Query("sha1"),
		SHA256:   c.Query("sha256"),
	}
	if q.FileName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "fileName is required"})
	}
	size, err := strconv.ParseInt(c.Query("fileSize"), 10, 64)
	if err != nil || size < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "fileSize must be a non-negative integer"})
	}
	q.FileSize = size

	res, err := h.service.Identify(c.Context(), q)
	if err != nil {
		logger.WithRayID(h.logger, c).Error("Failed to identify file", zap.String("file", q.FileName), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if h.maxAge > 0 {
		c.Set(fiber.HeaderCacheControl, fmt.Sprintf("public, max-age=%d", h.maxAge))
	}
	return c.JSON(res)
}
