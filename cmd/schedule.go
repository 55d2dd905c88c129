package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"catalog-manager/core/scheduler"
	"catalog-manager/feature/catalog"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// scheduleCmd runs imports and reconciliation on their cron specs until interrupted.
var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run catalog imports and reconciliation periodically",
	Long: `Long running process executing the import job (schedule.import_cron) and the
reconciliation job (schedule.reconcile_cron). A job never starts while another one runs.
An empty cron spec disables its job; reconciliation is also disabled without IGDB credentials.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap()
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		s := scheduler.New(a.lock, a.logger)

		svc := a.catalogService()
		err = s.Add("import", a.cfg.Schedule.ImportCron, func(ctx context.Context) error {
			sum, err := svc.Sync(ctx, catalog.SyncOptions{
				Download:    len(a.cfg.Catalog.DownloadURLs) > 0,
				FromStorage: a.storage != nil,
			})
			if err != nil {
				return err
			}
			logSummary(a.logger, sum)
			return nil
		})
		if err != nil {
			return err
		}

		if engine, err := a.engine(); err != nil {
			a.logger.Warn("Reconciliation job disabled", zap.Error(err))
		} else {
			err = s.Add("reconcile", a.cfg.Schedule.ReconcileCron, func(ctx context.Context) error {
				report, err := engine.Run(ctx)
				logReport(a.logger, report)
				return err
			})
			if err != nil {
				return err
			}
		}

		for _, name := range []string{"import", "reconcile"} {
			if next, ok := s.Next(name); ok {
				a.logger.Info("Job scheduled", zap.String("job", name), zap.Time("next", next))
			}
		}
		s.Start()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit

		a.logger.Info("Stopping scheduler, waiting for running jobs...")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		return s.Stop(ctx)
	},
}

func init() {
	RootCmd.AddCommand(scheduleCmd)
}
