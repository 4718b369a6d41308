package core

import (
	"slices"
	"strings"

	"github.com/huangsam/sizewatch/schema"
)

// DiffSizes joins the old and new size maps on filename and returns one record
// per filename seen in either map, ordered by filename.
// A file only in newSizes is new (original size 0); a file only in oldSizes is
// removed (size 0, delta = -original size).
func DiffSizes(oldSizes, newSizes schema.SizeMap) []schema.FileSizeRecord {
	allNames := make(map[string]struct{}, len(oldSizes)+len(newSizes))
	for name := range oldSizes {
		allNames[name] = struct{}{}
	}
	for name := range newSizes {
		allNames[name] = struct{}{}
	}

	records := make([]schema.FileSizeRecord, 0, len(allNames))
	for name := range allNames {
		oldSize := oldSizes[name] // 0 when absent
		newSize := newSizes[name] // 0 when absent
		records = append(records, schema.FileSizeRecord{
			Filename: name,
			Size:     newSize,
			Delta:    newSize - oldSize,
		})
	}

	// Map iteration order must never reach the caller
	slices.SortFunc(records, func(a, b schema.FileSizeRecord) int {
		return strings.Compare(a.Filename, b.Filename)
	})
	return records
}

// Summarize computes totals and status counts over every record.
func Summarize(records []schema.FileSizeRecord) schema.DiffSummary {
	var summary schema.DiffSummary
	for _, r := range records {
		summary.TotalSize += r.Size
		summary.TotalDelta += r.Delta
		switch r.Status() {
		case schema.NewStatus:
			summary.NewFiles++
		case schema.RemovedStatus:
			summary.RemovedFiles++
		case schema.ChangedStatus:
			summary.ChangedFiles++
		}
	}
	summary.TotalFiles = len(records)
	summary.OriginalSize = summary.TotalSize - summary.TotalDelta
	summary.DeltaText = DeltaText(summary.TotalDelta, summary.OriginalSize)
	return summary
}

// BuildDiffResult sorts records with spec and attaches their summary.
func BuildDiffResult(records []schema.FileSizeRecord, spec schema.SortSpec) schema.DiffResult {
	return schema.DiffResult{
		Files:   SortRecords(records, spec),
		Summary: Summarize(records),
	}
}
