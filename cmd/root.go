package cmd

import (
	"fmt"
	"os"

	"catalog-manager/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "catalog-manager",
	Short: "Game catalog manager",
	Long: `Catalog Manager imports ROM signature catalogs (No-Intro, Redump, TOSEC, MAME DAT files),
identifies files by hash and reconciles publishers, platforms and games with IGDB.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format with the development config gives ISO8601 timestamps for CLI errors.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
