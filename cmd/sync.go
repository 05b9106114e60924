package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	lookbackDays int
	jsonOutput   bool
)

// syncCmd runs one reconciliation pass.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Reconcile missing dates of the change feed",
	Long: `Reads the change feed for every date of the lookback window that is not yet
in the checkpoint log, oldest first, and applies deletes, creates and updates to the
destination repository.

A date is checkpointed only when its feed is empty, so dates with changes are
revisited by later runs until they settle.

Examples:
  # Reconcile the configured window
  sync

  # Reconcile the last 14 days and print the summary as JSON
  sync --lookback 14 --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		rt, err := buildRuntime(ctx, lookbackDays)
		if err != nil {
			return err
		}
		defer rt.close()

		summary, runErr := rt.Run(ctx)
		if runErr != nil {
			if summary == nil {
				return runErr
			}
			rt.logger.Warn("Sync run interrupted", zap.Error(runErr))
		}

		if jsonOutput {
			if err := writeJSON(os.Stdout, summary); err != nil {
				return err
			}
		} else if err := renderSummary(os.Stdout, summary); err != nil {
			return err
		}

		if runErr != nil {
			return runErr
		}
		if summary.HasFailures() {
			rt.logger.Warn("Sync run finished with failures",
				zap.Int("aborted_dates", summary.Aborted),
				zap.Int("errors", summary.Counters.Errors),
			)
		}
		return nil
	},
}

func init() {
	syncCmd.Flags().IntVar(&lookbackDays, "lookback", 0, "Override sync.lookback_days for this run")
	syncCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the run summary as JSON")
	RootCmd.AddCommand(syncCmd)
}
