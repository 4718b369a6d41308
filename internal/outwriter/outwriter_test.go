package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/huangsam/sizewatch/core"
	"github.com/huangsam/sizewatch/internal/contract"
	"github.com/huangsam/sizewatch/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() *schema.CompareReport {
	records := core.DiffSizes(
		schema.SizeMap{"dist/one.js": 2500, "dist/two.js": 7500, "dist/three.js": 300, "dist/old.js": 800},
		schema.SizeMap{"dist/one.js": 5000, "dist/two.js": 5000, "dist/three.js": 300, "dist/new.js": 100},
	)
	return &schema.CompareReport{
		BaseRef:  "base",
		HeadRef:  "head",
		Result:   core.BuildDiffResult(records, schema.DefaultSortSpec),
		Markdown: core.RenderReport(records, schema.DefaultReportOptions),
	}
}

func textConfig(output schema.OutputMode) *contract.Config {
	return &contract.Config{
		Output:      output,
		Report:      schema.DefaultReportOptions,
		Width:       120,
		Workers:     4,
		Compression: schema.GzipCompression,
	}
}

func TestWriteDiffResult_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteDiffResult(&buf, sampleReport(), textConfig(schema.TextOut), 1500*time.Millisecond))
	out := buf.String()

	for _, want := range []string{
		"dist/one.js", "5 kB", "+2.5 kB (+100%)", "🆘",
		"-2.5 kB (-33.33%)", "🎉", "(new file)", "(removed)", "dist/three.js",
		"Size Change: -700 B (-6.31%) ✅",
		"Total Size: 10.4 kB",
		"New files: 1, Removed files: 1, Changed files: 2, Unchanged files: 1",
		"Compared 5 files in 1.5s with 4 workers. Compression: gzip",
	} {
		assert.Contains(t, out, want)
	}

	// Unchanged rows follow the changed ones
	assert.Less(t, strings.Index(out, "dist/two.js"), strings.Index(out, "dist/three.js"))
}

func TestWriteDiffResult_TextOmitsTotals(t *testing.T) {
	cfg := textConfig(schema.TextOut)
	cfg.Report.ShowTotal = false
	cfg.Report.OmitUnchanged = true

	var buf bytes.Buffer
	require.NoError(t, WriteDiffResult(&buf, sampleReport(), cfg, time.Second))
	assert.NotContains(t, buf.String(), "Size Change:")
	assert.NotContains(t, buf.String(), "dist/three.js")
}

func TestWriteDiffResult_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteDiffResult(&buf, sampleReport(), textConfig(schema.JSONOut), time.Second))

	var decoded schema.DiffResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Len(t, decoded.Files, 5)
	assert.Equal(t, int64(-700), decoded.Summary.TotalDelta)
	assert.Equal(t, "-700 B (-6.31%)", decoded.Summary.DeltaText)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))
	assert.Contains(t, raw, "files")
	assert.Contains(t, raw, "summary")
}

func TestWriteDiffResult_CSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteDiffResult(&buf, sampleReport(), textConfig(schema.CSVOut), time.Second))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 6)
	assert.Equal(t, []string{"filename", "size", "original_size", "delta", "percent", "severity"}, rows[0])
	assert.Equal(t, []string{"dist/new.js", "100", "0", "100", "0.00", "new-file"}, rows[1])
	assert.Equal(t, []string{"dist/old.js", "0", "800", "-800", "-100.00", "best-shrink"}, rows[2])
	assert.Equal(t, []string{"dist/one.js", "5000", "2500", "2500", "100.00", "critical-growth"}, rows[3])
	assert.Equal(t, []string{"dist/three.js", "300", "300", "0", "0.00", ""}, rows[4])
	assert.Equal(t, []string{"dist/two.js", "5000", "7500", "-2500", "-33.33", "great-shrink"}, rows[5])
}

func TestWriteDiffResult_Markdown(t *testing.T) {
	report := sampleReport()
	var buf bytes.Buffer
	require.NoError(t, WriteDiffResult(&buf, report, textConfig(schema.MarkdownOut), time.Second))
	assert.Equal(t, report.Markdown+"\n", buf.String())
}

func TestPrintDiffResult_ToFile(t *testing.T) {
	cfg := textConfig(schema.JSONOut)
	cfg.OutputFile = filepath.Join(t.TempDir(), "diff.json")

	require.NoError(t, PrintDiffResult(sampleReport(), cfg, time.Second))
	data, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	assert.True(t, json.Valid(data))
}

func TestWriteSizeMap(t *testing.T) {
	sizes := schema.SizeMap{"dist/b.js": 2048, "dist/a.js": 10}

	tests := []struct {
		output schema.OutputMode
		checks []string
	}{
		{schema.JSONOut, []string{`"dist/a.js": 10`, `"dist/b.js": 2048`}},
		{schema.CSVOut, []string{"filename,size\ndist/a.js,10\ndist/b.js,2048\n"}},
		{schema.MarkdownOut, []string{"| Filename | Size |", "| `dist/a.js` | 10 B |", "| `dist/b.js` | 2.05 kB |"}},
		{schema.TextOut, []string{"dist/a.js", "2.05 kB", "2048", "Total: 2.06 kB across 2 files (gzip)"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.output), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, WriteSizeMap(&buf, sizes, textConfig(tt.output)))
			for _, want := range tt.checks {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}

func TestWriteSizeMap_JSONRoundTrip(t *testing.T) {
	sizes := schema.SizeMap{"dist/a.js": 10}
	path := filepath.Join(t.TempDir(), "sizes.json")
	cfg := textConfig(schema.JSONOut)
	cfg.OutputFile = path

	require.NoError(t, PrintSizeMap(sizes, cfg))
	loaded, err := core.LoadSizeMap(path)
	require.NoError(t, err)
	assert.Equal(t, sizes, loaded)
}

func TestGetMaxTablePathWidth(t *testing.T) {
	tests := []struct {
		width    int
		expected int
	}{
		{40, 15},
		{100, 55},
		{200, 70},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, GetMaxTablePathWidth(&contract.Config{Width: tt.width}))
	}
}

func TestColorizer(t *testing.T) {
	plain := colorizer(false, contract.GrowthColor.Sprint)
	assert.Equal(t, "+1 B", plain("+1 B"))
}
