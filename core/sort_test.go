package core

import (
	"testing"

	"github.com/huangsam/sizewatch/schema"
	"github.com/stretchr/testify/assert"
)

func filenames(records []schema.FileSizeRecord) []string {
	names := make([]string, len(records))
	for i, r := range records {
		names[i] = r.Filename
	}
	return names
}

func TestSortRecords(t *testing.T) {
	records := []schema.FileSizeRecord{
		{Filename: "file10.js", Size: 300, Delta: -50},
		{Filename: "file2.js", Size: 100, Delta: 20},
		{Filename: "file1.js", Size: 200, Delta: 20},
		{Filename: "alpha.js", Size: 100, Delta: 0},
	}

	tests := []struct {
		name     string
		spec     schema.SortSpec
		expected []string
	}{
		{
			"filename ascending is numeric aware",
			schema.DefaultSortSpec,
			[]string{"alpha.js", "file1.js", "file2.js", "file10.js"},
		},
		{
			"filename descending",
			schema.SortSpec{Column: schema.FilenameColumn, Direction: schema.DescDirection},
			[]string{"file10.js", "file2.js", "file1.js", "alpha.js"},
		},
		{
			"size ascending breaks ties by filename",
			schema.SortSpec{Column: schema.SizeColumn, Direction: schema.AscDirection},
			[]string{"alpha.js", "file2.js", "file1.js", "file10.js"},
		},
		{
			"size descending",
			schema.SortSpec{Column: schema.SizeColumn, Direction: schema.DescDirection},
			[]string{"file10.js", "file1.js", "alpha.js", "file2.js"},
		},
		{
			"change descending breaks ties by filename",
			schema.SortSpec{Column: schema.ChangeColumn, Direction: schema.DescDirection},
			[]string{"file1.js", "file2.js", "alpha.js", "file10.js"},
		},
		{
			"change ascending",
			schema.SortSpec{Column: schema.ChangeColumn, Direction: schema.AscDirection},
			[]string{"file10.js", "alpha.js", "file1.js", "file2.js"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, filenames(SortRecords(records, tt.spec)))
		})
	}

	// Sorting never reorders the caller's slice
	assert.Equal(t, []string{"file10.js", "file2.js", "file1.js", "alpha.js"}, filenames(records))
}

func TestSortRecords_Nested(t *testing.T) {
	records := []schema.FileSizeRecord{
		{Filename: "dist/chunk-12.js"},
		{Filename: "dist/chunk-3.js"},
		{Filename: "dist/a/index.js"},
	}
	sorted := SortRecords(records, schema.DefaultSortSpec)
	assert.Equal(t, []string{"dist/a/index.js", "dist/chunk-3.js", "dist/chunk-12.js"}, filenames(sorted))
}
