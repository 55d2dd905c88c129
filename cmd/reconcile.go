package cmd

import (
	"catalog-manager/feature/matching"

	"github.com/spf13/cobra"
)

var reconcileOnly []string

// reconcileCmd matches catalog entities with IGDB.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Match publishers, platforms and games with IGDB",
	Long: `Runs a reconciliation pass: publishers, platforms, games, then clone propagation.
Entities already matched are skipped; failed ones are retried.

Examples:
  # Full pass
  reconcile

  # Only platforms and games
  reconcile --only platforms --only games`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var phases []matching.Phase
		for _, s := range reconcileOnly {
			p, err := matching.ParsePhase(s)
			if err != nil {
				return err
			}
			phases = append(phases, p)
		}

		a, err := bootstrap()
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		engine, err := a.engine()
		if err != nil {
			return err
		}
		return a.lock.TryRun("reconcile", func() error {
			report, err := engine.Run(cmd.Context(), phases...)
			logReport(a.logger, report)
			return err
		})
	},
}

func init() {
	reconcileCmd.Flags().StringSliceVar(&reconcileOnly, "only", nil, "Run only these phases (publishers, platforms, games, clones)")
	RootCmd.AddCommand(reconcileCmd)
}
