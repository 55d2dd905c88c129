package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"catalog-manager/core/loader"
	"catalog-manager/core/logger"
	"catalog-manager/core/middleware/auth"
	"catalog-manager/core/middleware/rayid"
	"catalog-manager/feature/catalog"
	"catalog-manager/feature/identify"
	"catalog-manager/feature/igdb"
	"catalog-manager/feature/integrity"
	"catalog-manager/feature/integrity/checks"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "catalog-manager/docs/swagger"
)

// @title Catalog Manager API
// @version 1.0
// @description Identify ROM files by hash and browse catalog publishers, platforms and their IGDB metadata.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the catalog manager HTTP server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap()
		if err != nil {
			return err
		}
		logg := a.logger
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
		})

		// RayID first so every later log line carries it.
		app.Use(rayid.New())
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			start := time.Now()
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			l.Info("Request handled",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
				zap.Int("status", c.Response().StatusCode()),
				zap.Duration("duration", time.Since(start)),
			)
			return err
		})

		// Public routes.
		app.Get("/swagger/*", swagger.HandlerDefault)
		app.Get("/health", func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"status": "ok", "running": a.lock.Running()})
		})

		app.Use(auth.New(auth.Config{ApiKey: a.cfg.Server.ApiKey, Skip: []string{"/health", "/swagger"}}))

		folders := checks.RequiredFolders(a.cfg.Catalog.StoragePrefix, a.cfg.Catalog.ArchivePrefix, catalog.CatalogDirs())
		mgr := loader.NewManager(logg)
		mgr.Register(catalog.NewFeature(a.store, logg))
		mgr.Register(identify.NewFeature(a.store, a.cfg.Identify, logg))
		mgr.Register(igdb.NewFeature(a.cfg.IGDB, a.igdbClient(), logg))
		mgr.Register(integrity.NewFeature(a.storage, a.cfg.Storage.Bucket, folders, a.store, logg))

		if err := mgr.LoadAll(app.Group("/api")); err != nil {
			return err
		}

		errCh := make(chan error, 1)
		go func() {
			logg.Info("Starting server", zap.String("addr", a.cfg.Server.Addr()))
			errCh <- app.Listen(a.cfg.Server.Addr())
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		select {
		case err := <-errCh:
			return err
		case <-quit:
		}

		logg.Info("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout())
		defer cancel()
		return app.ShutdownWithContext(ctx)
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
