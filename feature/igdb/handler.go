package igdb

import (
	"strconv"

	"catalog-manager/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler exposes provider lookups over HTTP.
type Handler struct {
	client *CachedClient
	logger *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(client *CachedClient, logger *zap.Logger) *Handler {
	return &Handler{client: client, logger: logger}
}

// RegisterRoutes registers the igdb routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/igdb")
	group.Get("/game", h.HandleGetGame)
	group.Get("/game/search", h.HandleSearchGames)
}

// HandleGetGame returns IGDB metadata about a game.
// @Summary Get IGDB Game
// @Description Queries IGDB for a game by its id. Answers are cached.
// @Tags igdb
// @Produce json
// @Param id query int true "IGDB game id"
// @Success 200 {object} igdb.Game "Game"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Game not found"
// @Failure 502 {object} map[string]string "Provider error"
// @Router /api/igdb/game [get]
func (h *Handler) HandleGetGame(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	id, err := strconv.ParseInt(c.Query("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "id must be a positive integer"})
	}

	game, err := h.client.GetGameByID(c.Context(), id)
	if err != nil {
		l.Error("IGDB game lookup failed", zap.Int64("id", id), zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}
	if game == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "game not found"})
	}
	return c.JSON(game)
}

// HandleSearchGames searches IGDB games by name.
// @Summary Search IGDB Games
// @Description Full-text search of IGDB games, optionally scoped to an IGDB platform id.
// @Tags igdb
// @Produce json
// @Param name query string true "Search text"
// @Param platform query int false "IGDB platform id"
// @Success 200 {array} igdb.Game "Games"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 502 {object} map[string]string "Provider error"
// @Router /api/igdb/game/search [get]
func (h *Handler) HandleSearchGames(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	name := c.Query("name")
	if name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
	}

	var platformID *int64
	if raw := c.Query("platform"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "platform must be an integer"})
		}
		platformID = &id
	}

	games, err := h.client.SearchGames(c.Context(), name, platformID)
	if err != nil {
		l.Error("IGDB game search failed", zap.String("name", name), zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}
	if games == nil {
		games = []Game{}
	}
	return c.JSON(games)
}
