package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"record-sync/core/reconcile"

	"github.com/olekukonko/tablewriter"
)

// writeJSON prints v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// renderSummary prints one row per reconciled date followed by the run totals.
func renderSummary(w io.Writer, s *reconcile.RunSummary) error {
	if s.NothingToUpdate() {
		_, err := fmt.Fprintln(w, "Nothing to update")
		return err
	}

	table := tablewriter.NewTable(w)
	table.Header("Date", "Status", "Pages", "Total", "Created", "Updated", "Deleted", "Duplicate", "Malformed", "Irrelevant", "Errors", "Checkpointed")

	for _, d := range s.Dates {
		row := append([]any{d.Date, string(d.Status), strconv.Itoa(d.Pages), strconv.Itoa(d.Total)}, counterCells(d.Counters)...)
		row = append(row, yesNo(d.Checkpointed))
		if err := table.Append(row...); err != nil {
			return err
		}
	}

	total := append([]any{"TOTAL", fmt.Sprintf("%d aborted", s.Aborted), "", ""}, counterCells(s.Counters)...)
	total = append(total, "")
	if err := table.Append(total...); err != nil {
		return err
	}
	return table.Render()
}

func counterCells(c reconcile.Counters) []any {
	return []any{
		strconv.Itoa(c.Created),
		strconv.Itoa(c.Updated),
		strconv.Itoa(c.Deleted),
		strconv.Itoa(c.Duplicate),
		strconv.Itoa(c.Malformed),
		strconv.Itoa(c.Irrelevant),
		strconv.Itoa(c.Errors),
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
