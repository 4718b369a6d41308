package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/sizewatch/core"
	"github.com/huangsam/sizewatch/internal/contract"
	"github.com/huangsam/sizewatch/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintDiffResult writes the report to stdout or cfg.OutputFile in the configured format.
func PrintDiffResult(report *schema.CompareReport, cfg *contract.Config, duration time.Duration) error {
	writer := func(w io.Writer) error {
		return WriteDiffResult(w, report, cfg, duration)
	}
	return writeWithFile(cfg.OutputFile, writer, "Wrote "+string(cfg.Output))
}

// WriteDiffResult outputs the report, dispatching based on the output format configured.
func WriteDiffResult(w io.Writer, report *schema.CompareReport, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeJSON(w, report.Result); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeDiffCSV(w, report.Result); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.MarkdownOut:
		if _, err := fmt.Fprintln(w, report.Markdown); err != nil {
			return fmt.Errorf("error writing markdown output: %w", err)
		}
	default:
		return writeDiffTable(w, report, cfg, duration)
	}
	return nil
}

// writeDiffTable writes the records as a console table followed by the totals.
func writeDiffTable(w io.Writer, report *schema.CompareReport, cfg *contract.Config, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	defer func() { _ = table.Close() }()

	table.Header([]string{"Filename", "Size", "Change", "Icon"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	changed, unchanged := core.Partition(report.Result.Files, cfg.Report)
	pathWidth := GetMaxTablePathWidth(cfg)
	neutral := colorizer(cfg.UseColors, contract.NeutralColor.Sprint)

	var data [][]string
	for _, r := range changed {
		original := r.OriginalSize()
		paint := colorizer(cfg.UseColors, contract.SeverityColor(core.Classify(r.Delta, original)).Sprint)
		data = append(data, []string{
			contract.TruncatePath(r.Filename, pathWidth),
			core.PrettyBytes(r.Size),
			paint(core.DeltaText(r.Delta, original)),
			core.SeverityIcon(r.Delta, original),
		})
	}
	for _, r := range unchanged {
		data = append(data, []string{
			neutral(contract.TruncatePath(r.Filename, pathWidth)),
			neutral(core.PrettyBytes(r.Size)),
			neutral(core.DeltaText(r.Delta, r.OriginalSize())),
			"",
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	summary := report.Result.Summary
	headline := colorizer(cfg.UseColors, contract.HeadlineColor.Sprint)
	if cfg.Report.ShowTotal {
		for _, line := range core.TotalLines(summary) {
			if _, err := fmt.Fprintln(w, headline(strings.ReplaceAll(line, "**", ""))); err != nil {
				return err
			}
		}
	}
	unchangedFiles := summary.TotalFiles - summary.NewFiles - summary.RemovedFiles - summary.ChangedFiles
	if _, err := fmt.Fprintf(w, "New files: %d, Removed files: %d, Changed files: %d, Unchanged files: %d\n",
		summary.NewFiles, summary.RemovedFiles, summary.ChangedFiles, unchangedFiles); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Compared %d files in %v with %d workers. Compression: %s\n",
		summary.TotalFiles, duration.Round(time.Millisecond), cfg.Workers, cfg.Compression); err != nil {
		return err
	}
	return nil
}

// writeDiffCSV writes one row per record with raw byte counts.
func writeDiffCSV(w io.Writer, result schema.DiffResult) error {
	header := []string{"filename", "size", "original_size", "delta", "percent", "severity"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, r := range result.Files {
			original := r.OriginalSize()
			row := []string{
				r.Filename,
				strconv.FormatInt(r.Size, 10),
				strconv.FormatInt(original, 10),
				strconv.FormatInt(r.Delta, 10),
				strconv.FormatFloat(core.Percent(r.Delta, original), 'f', 2, 64),
				string(core.Classify(r.Delta, original)),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}
