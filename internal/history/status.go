package history

import (
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/huangsam/sizewatch/schema"
	"github.com/olekukonko/tablewriter"
)

// PrintHistoryStatus writes history status information to w.
func PrintHistoryStatus(w io.Writer, status schema.HistoryStatus) error {
	if _, err := fmt.Fprintf(w, "History Backend: %s\nConnected: %t\n", status.Backend, status.Connected); err != nil {
		return err
	}
	if !status.Connected {
		return nil
	}

	_, _ = fmt.Fprintf(w, "Total Runs: %d\n", status.TotalRuns)
	if status.TotalRuns > 0 {
		_, _ = fmt.Fprintf(w, "Last Run ID: %d\n", status.LastRunID)
		_, _ = fmt.Fprintf(w, "Last Run: %s\n", status.LastRunTime.Format("2006-01-02 15:04:05"))
		_, _ = fmt.Fprintf(w, "Oldest Run: %s\n", status.OldestRunTime.Format("2006-01-02 15:04:05"))
		_, _ = fmt.Fprintf(w, "Total Files Compared: %d\n", status.TotalFiles)
	}

	tables := make([]string, 0, len(status.TableSizes))
	for table := range status.TableSizes {
		tables = append(tables, table)
	}
	slices.Sort(tables)

	var data [][]string
	for _, table := range tables {
		data = append(data, []string{table, strconv.FormatInt(status.TableSizes[table], 10)})
	}

	table := tablewriter.NewWriter(w)
	defer func() { _ = table.Close() }()
	table.Header([]string{"Table", "Rows"})
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
