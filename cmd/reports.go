package cmd

import (
	"fmt"
	"os"
	"strconv"

	"record-sync/feature/reports"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	reportDate string
	keepDays   int
)

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "Browse and expire archived run reports",
	Long: `Run reports are uploaded to object storage when reports.enabled is set.
One JSON document is stored per reconciled date and run under <prefix>/<date>/<run>.json.`,
}

// openArchive loads the configuration and connects to the report bucket.
func openArchive(cmd *cobra.Command) (*reports.Archive, *zap.Logger, error) {
	cfg, l, err := loadBase()
	if err != nil {
		return nil, nil, err
	}
	archive, err := newArchive(cmd.Context(), cfg, l)
	if err != nil {
		return nil, nil, err
	}
	return archive, l, nil
}

var reportsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived report keys",
	RunE: func(cmd *cobra.Command, args []string) error {
		archive, _, err := openArchive(cmd)
		if err != nil {
			return err
		}

		keys, err := archive.List(cmd.Context(), reportDate)
		if err != nil {
			return err
		}
		if len(keys) == 0 {
			fmt.Println("No reports found")
			return nil
		}
		for _, key := range keys {
			fmt.Println(key)
		}
		return nil
	},
}

var reportsShowCmd = &cobra.Command{
	Use:   "show <key>",
	Short: "Print one archived report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		archive, _, err := openArchive(cmd)
		if err != nil {
			return err
		}

		report, err := archive.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if jsonOutput {
			return writeJSON(os.Stdout, report)
		}

		s := report.Summary
		fmt.Printf("Run %s, date %s, status %s, %d page(s), %d event(s)\n", report.RunID, s.Date, s.Status, s.Pages, s.Total)
		if len(report.Failures) == 0 {
			return nil
		}

		table := tablewriter.NewTable(os.Stdout)
		table.Header("#", "Source ID", "Change", "Error")
		for i, f := range report.Failures {
			if err := table.Append(strconv.Itoa(i+1), f.SourceID, f.ChangeType, f.Error); err != nil {
				return err
			}
		}
		return table.Render()
	},
}

var reportsPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove reports older than the retention window",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, l, err := loadBase()
		if err != nil {
			return err
		}
		archive, err := newArchive(cmd.Context(), cfg, l)
		if err != nil {
			return err
		}

		days := cfg.Reports.KeepDays
		if keepDays > 0 {
			days = keepDays
		}
		removed, err := archive.Prune(cmd.Context(), days)
		if err != nil {
			return err
		}
		l.Info("Reports pruned", zap.Int("keep_days", days), zap.Int("removed", removed))
		return nil
	},
}

func init() {
	reportsListCmd.Flags().StringVar(&reportDate, "date", "", "Only list reports of this date (YYYY-MM-DD)")
	reportsShowCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the raw report")
	reportsPruneCmd.Flags().IntVar(&keepDays, "keep-days", 0, "Override reports.keep_days")

	reportsCmd.AddCommand(reportsListCmd, reportsShowCmd, reportsPruneCmd)
	RootCmd.AddCommand(reportsCmd)
}
