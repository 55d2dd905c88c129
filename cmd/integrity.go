package cmd

import (
	"context"
	"fmt"

	"catalog-manager/feature/catalog"
	"catalog-manager/feature/integrity"
	"catalog-manager/feature/integrity/checks"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var fixFlag bool

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Check storage layout, catalogs, schema and matching coverage",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), "")
	},
}

func integritySubcommand(use, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIntegrityChecks(cmd.Context(), use)
		},
	}
}

func init() {
	structureCmd := integritySubcommand("structure", "Check and fix the storage folder structure")
	structureCmd.Flags().BoolVar(&fixFlag, "fix", false, "Fix missing folders")

	integrityCmd.AddCommand(
		structureCmd,
		integritySubcommand("catalogs", "Check seeded and imported signature catalogs"),
		integritySubcommand("server", "Check the database schema against the models"),
		integritySubcommand("matching", "Report IGDB mapping coverage"),
	)
	RootCmd.AddCommand(integrityCmd)
}

// runIntegrityChecks runs one check, or all of them when only is empty.
func runIntegrityChecks(ctx context.Context, only string) error {
	a, err := bootstrap()
	if err != nil {
		return err
	}
	logg := a.logger
	defer logg.Sync()

	folders := checks.RequiredFolders(a.cfg.Catalog.StoragePrefix, a.cfg.Catalog.ArchivePrefix, catalog.CatalogDirs())
	svc := integrity.NewService(a.storage, a.cfg.Storage.Bucket, folders, a.store, logg)
	run := func(name string) bool { return only == "" || only == name }
	failed := 0

	if run("structure") {
		logg.Info("Checking folder structure...")
		missing, err := svc.CheckStructure(ctx)
		switch {
		case err != nil:
			logg.Error("Structure check failed", zap.Error(err))
			failed++
		case len(missing) == 0:
			logg.Info("Structure is intact.")
		case fixFlag:
			logg.Warn("Missing folders detected", zap.Strings("missing", missing))
			if err := svc.FixStructure(ctx, missing); err != nil {
				return fmt.Errorf("fix structure: %w", err)
			}
			logg.Info("Structure fixed successfully.")
		default:
			logg.Warn("Missing folders detected", zap.Strings("missing", missing))
			logg.Info("Run with --fix to create missing folders.")
		}
	}

	if run("catalogs") {
		logg.Info("Checking signature catalogs...")
		report, err := svc.CheckCatalogs(ctx)
		if err != nil {
			logg.Error("Catalog check failed", zap.Error(err))
			failed++
		} else {
			if len(report.Missing) > 0 {
				logg.Warn("Catalogs not seeded, run migrate", zap.Strings("catalogs", report.Missing))
			}
			if len(report.Empty) > 0 {
				logg.Warn("Catalogs without imported files", zap.Strings("catalogs", report.Empty))
			}
			for name, n := range report.Files {
				logg.Info("Catalog files", zap.String("catalog", name), zap.Int64("files", n))
			}
		}
	}

	if run("server") {
		logg.Info("Checking server schema integrity...")
		report, err := svc.CheckServer()
		switch {
		case err != nil:
			logg.Error("Server schema check failed", zap.Error(err))
			failed++
		case report.Matched:
			logg.Info("Server schema matches the models.", zap.String("driver", report.Driver))
		default:
			logg.Warn("Server schema mismatches found", zap.String("driver", report.Driver))
			for table, tbl := range report.Tables {
				if tbl.Status == "ok" {
					continue
				}
				if tbl.MissingTable {
					logg.Warn("Missing table", zap.String("table", table))
				}
				if len(tbl.MissingColumns) > 0 {
					logg.Warn("Missing Columns", zap.String("table", table), zap.Strings("columns", tbl.MissingColumns))
				}
				if len(tbl.TypeMismatches) > 0 {
					logg.Warn("Type Mismatches", zap.String("table", table), zap.Strings("mismatches", tbl.TypeMismatches))
				}
			}
			for _, e := range report.Errors {
				logg.Error("Inspection Error", zap.String("error", e))
			}
		}
	}

	if run("matching") {
		report, err := svc.CheckMatching(ctx)
		if err != nil {
			logg.Error("Matching check failed", zap.Error(err))
			failed++
		} else {
			for kind, counts := range report.Counts {
				fields := []zap.Field{zap.String("owner", string(kind))}
				for mt, n := range counts {
					fields = append(fields, zap.Int64(string(mt), n))
				}
				logg.Info("Mapping coverage", fields...)
			}
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d integrity checks failed", failed)
	}
	return nil
}
