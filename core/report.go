package core

import (
	"strings"

	"github.com/huangsam/sizewatch/schema"
)

// Markdown table headers; the last column holds the severity icon.
var reportHeaders = []string{"Filename", "Size", "Change", ""}

// Column indexes that may be dropped when every row leaves them blank.
const (
	changeColumnIdx = 2
	iconColumnIdx   = 3
)

// unchangedSummary labels the collapsible block holding unchanged rows.
const unchangedSummary = "<summary>ℹ️ <strong>View Unchanged</strong></summary>"

// IsUnchanged reports whether a delta falls below the minimum change threshold.
// A delta exactly equal to the threshold counts as changed.
func IsUnchanged(delta, threshold int64) bool {
	if delta < 0 {
		delta = -delta
	}
	return delta < threshold
}

// Partition sorts records by opts.SortBy and splits them into the rows shown
// in the main table and the rows collapsed into the unchanged block.
// Unchanged rows are dropped entirely when opts.OmitUnchanged is set, and stay
// in the main table when opts.CollapseUnchanged is not.
func Partition(records []schema.FileSizeRecord, opts schema.ReportOptions) (changed, unchanged []schema.FileSizeRecord) {
	for _, r := range SortRecords(records, opts.SortBy) {
		isUnchanged := IsUnchanged(r.Delta, opts.MinimumChangeThreshold)
		switch {
		case isUnchanged && opts.OmitUnchanged:
			continue
		case isUnchanged && opts.CollapseUnchanged:
			unchanged = append(unchanged, r)
		default:
			changed = append(changed, r)
		}
	}
	return changed, unchanged
}

// FormatRow returns the display cells of a record: code-quoted filename,
// size, delta text and severity icon.
func FormatRow(r schema.FileSizeRecord) []string {
	original := r.OriginalSize()
	return []string{
		"`" + r.Filename + "`",
		PrettyBytes(r.Size),
		DeltaText(r.Delta, original),
		SeverityIcon(r.Delta, original),
	}
}

// RenderReport renders records as the markdown report posted on pull requests.
// The output holds, separated by blank lines: the total lines (when
// opts.ShowTotal), the table of changed files, and a collapsible table of
// unchanged files. Totals always cover every record, rendered or not.
func RenderReport(records []schema.FileSizeRecord, opts schema.ReportOptions) string {
	changed, unchanged := Partition(records, opts)

	var parts []string
	if opts.ShowTotal {
		parts = append(parts, TotalLines(Summarize(records))...)
	}
	if table := markdownTable(changed); table != "" {
		parts = append(parts, table)
	}
	if len(unchanged) > 0 {
		block := strings.Join([]string{
			"<details>" + unchangedSummary,
			markdownTable(unchanged),
			"</details>",
		}, "\n\n")
		parts = append(parts, block)
	}
	return strings.Join(parts, "\n\n")
}

// TotalLines returns the size change and total size summary lines.
func TotalLines(summary schema.DiffSummary) []string {
	change := strings.TrimSpace(summary.DeltaText + " " + SeverityIcon(summary.TotalDelta, summary.OriginalSize))
	return []string{
		"**Size Change:** " + change,
		"**Total Size:** " + PrettyBytes(summary.TotalSize),
	}
}

// markdownTable renders rows as a markdown table, dropping the change and icon
// columns when no row has content for them. Zero rows render as "".
func markdownTable(records []schema.FileSizeRecord) string {
	if len(records) == 0 {
		return ""
	}
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = FormatRow(r)
	}

	keep := []int{0, 1}
	for _, idx := range []int{changeColumnIdx, iconColumnIdx} {
		if !columnBlank(rows, idx) {
			keep = append(keep, idx)
		}
	}

	lines := make([]string, 0, len(rows)+2)
	header := make([]string, len(keep))
	align := make([]string, len(keep))
	for i, idx := range keep {
		header[i] = reportHeaders[idx]
		align[i] = ":---:"
	}
	align[0] = ":---"
	lines = append(lines, tableLine(header), tableLine(align))

	for _, row := range rows {
		cells := make([]string, len(keep))
		for i, idx := range keep {
			cells[i] = row[idx]
		}
		lines = append(lines, tableLine(cells))
	}
	return strings.Join(lines, "\n")
}

// columnBlank reports whether every row leaves column idx without content.
// A change of "0 B" carries no content.
func columnBlank(rows [][]string, idx int) bool {
	for _, row := range rows {
		cell := row[idx]
		if cell != "" && !(idx == changeColumnIdx && cell == PrettyBytes(0)) {
			return false
		}
	}
	return true
}

// tableLine joins cells into one markdown table line.
func tableLine(cells []string) string {
	return "| " + strings.Join(cells, " | ") + " |"
}
