package cmd

import (
	"os"
	"slices"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var maxLines int

var checkpointCmd = &cobra.Command{
	Use:   "checkpoint",
	Short: "Inspect and maintain the checkpoint log",
}

var checkpointListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show settled and missing dates of the lookback window",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		rt, err := buildRuntime(ctx, lookbackDays)
		if err != nil {
			return err
		}
		defer rt.close()

		lines, err := rt.checkpoint.Lines(ctx)
		if err != nil {
			return err
		}
		missing, err := rt.MissingDates(ctx)
		if err != nil {
			return err
		}

		if jsonOutput {
			return writeJSON(os.Stdout, map[string]any{
				"path":      rt.checkpoint.Path(),
				"completed": lines,
				"missing":   missing,
			})
		}

		table := tablewriter.NewTable(os.Stdout)
		table.Header("Date", "State")
		for _, date := range lines {
			if err := table.Append(date, "completed"); err != nil {
				return err
			}
		}
		for _, date := range missing {
			if slices.Contains(lines, date) {
				continue
			}
			if err := table.Append(date, "missing"); err != nil {
				return err
			}
		}
		return table.Render()
	},
}

var checkpointPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Keep only the most recent lines of the checkpoint log",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, l, err := loadBase()
		if err != nil {
			return err
		}
		defer func() { _ = l.Sync() }()

		limit := cfg.Checkpoint.MaxLines
		if maxLines > 0 {
			limit = maxLines
		}

		before, after, err := newCheckpoint(cfg).Prune(cmd.Context(), limit)
		if err != nil {
			return err
		}
		l.Info("Checkpoint pruned",
			zap.String("path", cfg.Checkpoint.Path),
			zap.Int("before", before),
			zap.Int("after", after),
		)
		return nil
	},
}

func init() {
	checkpointListCmd.Flags().IntVar(&lookbackDays, "lookback", 0, "Override sync.lookback_days")
	checkpointListCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print as JSON")
	checkpointPruneCmd.Flags().IntVar(&maxLines, "max-lines", 0, "Override checkpoint.max_lines")

	checkpointCmd.AddCommand(checkpointListCmd, checkpointPruneCmd)
	RootCmd.AddCommand(checkpointCmd)
}
