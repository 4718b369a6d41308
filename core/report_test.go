package core

import (
	"strings"
	"testing"

	"github.com/huangsam/sizewatch/schema"
	"github.com/stretchr/testify/assert"
)

func fourRecords() []schema.FileSizeRecord {
	return []schema.FileSizeRecord{
		{Filename: "one.js", Size: 5000, Delta: 2500},
		{Filename: "two.js", Size: 5000, Delta: -2500},
		{Filename: "three.js", Size: 300, Delta: 0},
		{Filename: "four.js", Size: 4500, Delta: 9},
	}
}

func TestRenderReport_Default(t *testing.T) {
	expected := strings.Join([]string{
		"**Size Change:** +9 B (+0.06%)",
		"",
		"**Total Size:** 14.8 kB",
		"",
		"| Filename | Size | Change |  |",
		"| :--- | :---: | :---: | :---: |",
		"| `four.js` | 4.5 kB | +9 B (+0.2%) |  |",
		"| `one.js` | 5 kB | +2.5 kB (+100%) | 🆘 |",
		"| `two.js` | 5 kB | -2.5 kB (-33.33%) | 🎉 |",
		"",
		"<details><summary>ℹ️ <strong>View Unchanged</strong></summary>",
		"",
		"| Filename | Size |",
		"| :--- | :---: |",
		"| `three.js` | 300 B |",
		"",
		"</details>",
	}, "\n")

	assert.Equal(t, expected, RenderReport(fourRecords(), schema.DefaultReportOptions))
}

func TestRenderReport_Idempotent(t *testing.T) {
	opts := schema.DefaultReportOptions
	first := RenderReport(fourRecords(), opts)
	for range 10 {
		assert.Equal(t, first, RenderReport(fourRecords(), opts))
	}
}

func TestRenderReport_ThresholdBoundary(t *testing.T) {
	opts := schema.DefaultReportOptions
	opts.MinimumChangeThreshold = 9

	changed, unchanged := Partition(fourRecords(), opts)
	assert.Equal(t, []string{"four.js", "one.js", "two.js"}, filenames(changed))
	assert.Equal(t, []string{"three.js"}, filenames(unchanged))

	assert.False(t, IsUnchanged(9, 9))
	assert.False(t, IsUnchanged(-9, 9))
	assert.True(t, IsUnchanged(8, 9))
	assert.True(t, IsUnchanged(-8, 9))
	assert.False(t, IsUnchanged(0, 0))
}

func TestRenderReport_HigherThreshold(t *testing.T) {
	opts := schema.DefaultReportOptions
	opts.MinimumChangeThreshold = 10

	report := RenderReport(fourRecords(), opts)

	mainTable, collapsed, found := strings.Cut(report, "<details>")
	assert.True(t, found)
	assert.NotContains(t, mainTable, "four.js")
	assert.Contains(t, mainTable, "`one.js`")
	assert.Contains(t, mainTable, "`two.js`")
	assert.Contains(t, collapsed, "| `four.js` | 4.5 kB | +9 B (+0.2%) |")
	assert.Contains(t, collapsed, "| `three.js` | 300 B | 0 B |")
	assert.Contains(t, collapsed, "| Filename | Size | Change |\n")
}

func TestRenderReport_OmitUnchanged(t *testing.T) {
	opts := schema.DefaultReportOptions
	opts.OmitUnchanged = true

	report := RenderReport(fourRecords(), opts)

	assert.NotContains(t, report, "three.js")
	assert.NotContains(t, report, "<details>")
	// Totals still cover the omitted file
	assert.Contains(t, report, "**Total Size:** 14.8 kB")
}

func TestRenderReport_NoCollapse(t *testing.T) {
	opts := schema.DefaultReportOptions
	opts.CollapseUnchanged = false

	report := RenderReport(fourRecords(), opts)

	assert.NotContains(t, report, "<details>")
	assert.Contains(t, report, "| `three.js` | 300 B | 0 B |  |")
}

func TestRenderReport_DropsBlankColumns(t *testing.T) {
	records := []schema.FileSizeRecord{
		{Filename: "a.js", Size: 100, Delta: 0},
		{Filename: "b.js", Size: 200, Delta: 0},
	}
	opts := schema.DefaultReportOptions
	opts.ShowTotal = false
	opts.CollapseUnchanged = false

	expected := strings.Join([]string{
		"| Filename | Size |",
		"| :--- | :---: |",
		"| `a.js` | 100 B |",
		"| `b.js` | 200 B |",
	}, "\n")
	assert.Equal(t, expected, RenderReport(records, opts))
}

func TestRenderReport_DropsIconColumnOnly(t *testing.T) {
	records := []schema.FileSizeRecord{
		{Filename: "a.js", Size: 1001, Delta: 1},
	}
	opts := schema.DefaultReportOptions
	opts.ShowTotal = false

	expected := strings.Join([]string{
		"| Filename | Size | Change |",
		"| :--- | :---: | :---: |",
		"| `a.js` | 1 kB | +1 B (+0.1%) |",
	}, "\n")
	assert.Equal(t, expected, RenderReport(records, opts))
}

func TestRenderReport_ZeroRecords(t *testing.T) {
	expected := "**Size Change:** 0 B\n\n**Total Size:** 0 B"
	assert.Equal(t, expected, RenderReport(nil, schema.DefaultReportOptions))

	opts := schema.DefaultReportOptions
	opts.ShowTotal = false
	assert.Equal(t, "", RenderReport(nil, opts))
}

func TestRenderReport_OnlyUnchanged(t *testing.T) {
	records := []schema.FileSizeRecord{
		{Filename: "a.js", Size: 100, Delta: 0},
		{Filename: "b.js", Size: 200, Delta: 0},
	}
	opts := schema.DefaultReportOptions
	opts.ShowTotal = false

	expected := strings.Join([]string{
		"<details><summary>ℹ️ <strong>View Unchanged</strong></summary>",
		"",
		"| Filename | Size |",
		"| :--- | :---: |",
		"| `a.js` | 100 B |",
		"| `b.js` | 200 B |",
		"",
		"</details>",
	}, "\n")
	assert.Equal(t, expected, RenderReport(records, opts))
}

func TestRenderReport_SortedBySizeDesc(t *testing.T) {
	opts := schema.DefaultReportOptions
	opts.ShowTotal = false
	opts.CollapseUnchanged = false
	opts.SortBy = schema.SortSpec{Column: schema.SizeColumn, Direction: schema.DescDirection}

	lines := strings.Split(RenderReport(fourRecords(), opts), "\n")
	assert.Len(t, lines, 6)
	assert.True(t, strings.HasPrefix(lines[2], "| `one.js`"))
	assert.True(t, strings.HasPrefix(lines[3], "| `two.js`"))
	assert.True(t, strings.HasPrefix(lines[4], "| `four.js`"))
	assert.True(t, strings.HasPrefix(lines[5], "| `three.js`"))
}

func TestTotalLines(t *testing.T) {
	lines := TotalLines(Summarize([]schema.FileSizeRecord{{Filename: "a.js", Size: 7500, Delta: 2500}}))
	assert.Equal(t, []string{"**Size Change:** +2.5 kB (+50%) 🆘", "**Total Size:** 7.5 kB"}, lines)
}
