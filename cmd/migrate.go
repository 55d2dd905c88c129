package cmd

import (
	"context"
	"fmt"

	"catalog-manager/core/database"
	"catalog-manager/feature/catalog/models"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// migrateCmd creates or updates the schema and seeds the signature catalogs.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	Long:  `Runs gorm AutoMigrate for every catalog model, seeds the default signature catalogs and verifies the resulting schema.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap()
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		db := a.store.DB()
		if err := database.Migrate(db, models.All()...); err != nil {
			return err
		}
		a.logger.Info("Schema migrated", zap.Int("models", len(models.All())))

		created, err := a.store.SeedCatalogs(context.Background())
		if err != nil {
			return err
		}
		a.logger.Info("Signature catalogs seeded", zap.Int("created", created))

		issues, err := database.VerifySchema(db, models.All()...)
		if err != nil {
			return err
		}
		for _, issue := range issues {
			a.logger.Warn("Schema issue", zap.String("table", issue.Table), zap.String("column", issue.Column), zap.String("reason", issue.Reason))
		}
		if len(issues) > 0 {
			return fmt.Errorf("schema verification found %d issues", len(issues))
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(migrateCmd)
}
