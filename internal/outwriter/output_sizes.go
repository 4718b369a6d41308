package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/sizewatch/core"
	"github.com/huangsam/sizewatch/internal/contract"
	"github.com/huangsam/sizewatch/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintSizeMap writes the sizes of one build to stdout or cfg.OutputFile.
func PrintSizeMap(sizes schema.SizeMap, cfg *contract.Config) error {
	writer := func(w io.Writer) error {
		return WriteSizeMap(w, sizes, cfg)
	}
	return writeWithFile(cfg.OutputFile, writer, "Wrote sizes")
}

// WriteSizeMap outputs a size map. JSON output can be fed back to the diff command.
func WriteSizeMap(w io.Writer, sizes schema.SizeMap, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeJSON(w, sizes)
	case schema.CSVOut:
		return writeCSVWithHeader(w, []string{"filename", "size"}, func(cw *csv.Writer) error {
			for _, name := range sizes.Filenames() {
				if err := cw.Write([]string{name, strconv.FormatInt(sizes[name], 10)}); err != nil {
					return err
				}
			}
			return nil
		})
	case schema.MarkdownOut:
		if _, err := fmt.Fprintln(w, "| Filename | Size |\n|:---|:---:|"); err != nil {
			return err
		}
		for _, name := range sizes.Filenames() {
			if _, err := fmt.Fprintf(w, "| `%s` | %s |\n", name, core.PrettyBytes(sizes[name])); err != nil {
				return err
			}
		}
		return nil
	default:
		return writeSizeTable(w, sizes, cfg)
	}
}

// writeSizeTable writes the sizes as a console table with a total footer.
func writeSizeTable(w io.Writer, sizes schema.SizeMap, cfg *contract.Config) error {
	table := tablewriter.NewWriter(w)
	defer func() { _ = table.Close() }()

	table.Header([]string{"Filename", "Size", "Bytes"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	pathWidth := GetMaxTablePathWidth(cfg)
	var data [][]string
	for _, name := range sizes.Filenames() {
		data = append(data, []string{
			contract.TruncatePath(name, pathWidth),
			core.PrettyBytes(sizes[name]),
			strconv.FormatInt(sizes[name], 10),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "Total: %s across %d files (%s)\n", core.PrettyBytes(sizes.Total()), len(sizes), cfg.Compression)
	return err
}
