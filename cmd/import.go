package cmd

import (
	"catalog-manager/feature/catalog"

	"github.com/spf13/cobra"
)

var (
	importDir         string
	importDownload    bool
	importFromStorage bool
)

// importCmd syncs the signature catalogs.
var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import DAT signature catalogs",
	Long: `Imports every DAT file of the catalog directory. Files already imported with the
same content are skipped.

Examples:
  # Import what is on disk
  import --dir ./dats

  # Download the configured archives first
  import --download

  # Fetch DAT files from the storage bucket first
  import --from-storage`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap()
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		svc := a.catalogService()
		return a.lock.TryRun("import", func() error {
			sum, err := svc.Sync(cmd.Context(), catalog.SyncOptions{
				Dir:         importDir,
				Download:    importDownload,
				FromStorage: importFromStorage,
			})
			if err != nil {
				return err
			}
			logSummary(a.logger, sum)
			return nil
		})
	},
}

func init() {
	importCmd.Flags().StringVar(&importDir, "dir", "", "DAT directory (defaults to catalog.dats_dir)")
	importCmd.Flags().BoolVar(&importDownload, "download", false, "Download the configured DAT archives before importing")
	importCmd.Flags().BoolVar(&importFromStorage, "from-storage", false, "Fetch DAT files from the storage bucket before importing")
	RootCmd.AddCommand(importCmd)
}
