package core

import (
	"cmp"
	"slices"
	"strings"

	"github.com/huangsam/sizewatch/schema"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// newFilenameCollator returns a numeric-aware collator so "file10" sorts after "file2".
// Collators keep internal buffers, so each sort gets its own.
func newFilenameCollator() *collate.Collator {
	return collate.New(language.Und, collate.Numeric)
}

// SortRecords returns a sorted copy of records ordered by spec.
// Ties on the sort column fall back to filename order, so the result never
// depends on the input order.
func SortRecords(records []schema.FileSizeRecord, spec schema.SortSpec) []schema.FileSizeRecord {
	sorted := slices.Clone(records)
	col := newFilenameCollator()

	byName := func(a, b schema.FileSizeRecord) int {
		if c := col.CompareString(a.Filename, b.Filename); c != 0 {
			return c
		}
		return strings.Compare(a.Filename, b.Filename)
	}

	slices.SortStableFunc(sorted, func(a, b schema.FileSizeRecord) int {
		var c int
		switch spec.Column {
		case schema.SizeColumn:
			c = cmp.Compare(a.Size, b.Size)
		case schema.ChangeColumn:
			c = cmp.Compare(a.Delta, b.Delta)
		default:
			c = byName(a, b)
		}
		if spec.Direction == schema.DescDirection {
			c = -c
		}
		if c != 0 {
			return c
		}
		return byName(a, b)
	})
	return sorted
}
