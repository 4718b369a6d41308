// Package schema has models and enumerations shared by all parts of sizewatch.
package schema

// SizeMap maps a normalized filename to its compressed size in bytes.
// One map is collected per build.
type SizeMap map[string]int64

// FileSizeRecord is one row of a size report.
// OriginalSize is never stored; it is derived as Size - Delta.
type FileSizeRecord struct {
	Filename string `json:"filename"` // Normalized logical path, unique within one report
	Size     int64  `json:"size"`     // Compressed size in the new build (0 when removed)
	Delta    int64  `json:"delta"`    // Size minus the size in the old build
}

// OriginalSize returns the compressed size in the old build.
func (r FileSizeRecord) OriginalSize() int64 {
	return r.Size - r.Delta
}

// Status reports whether the file was added, removed or modified.
func (r FileSizeRecord) Status() Status {
	switch {
	case r.Delta == 0:
		return UnchangedStatus
	case r.OriginalSize() == 0:
		return NewStatus
	case r.Size == 0:
		return RemovedStatus
	default:
		return ChangedStatus
	}
}

// SortSpec is a parsed "Column:direction" ordering.
type SortSpec struct {
	Column    SortColumn
	Direction SortDirection
}

// DefaultSortSpec orders rows by filename, ascending.
var DefaultSortSpec = SortSpec{Column: FilenameColumn, Direction: AscDirection}

// String renders the spec in its configuration form.
func (s SortSpec) String() string {
	return string(s.Column) + ":" + string(s.Direction)
}

// ReportOptions holds the presentation options for a single render.
type ReportOptions struct {
	ShowTotal              bool
	CollapseUnchanged      bool
	OmitUnchanged          bool
	MinimumChangeThreshold int64
	SortBy                 SortSpec
}

// DefaultReportOptions mirrors the defaults of the configuration layer.
var DefaultReportOptions = ReportOptions{
	ShowTotal:              true,
	CollapseUnchanged:      true,
	OmitUnchanged:          false,
	MinimumChangeThreshold: 1,
	SortBy:                 DefaultSortSpec,
}

// DiffSummary holds aggregate numbers over every record of a diff.
type DiffSummary struct {
	TotalSize    int64  `json:"total_size"`
	TotalDelta   int64  `json:"total_delta"`
	OriginalSize int64  `json:"original_size"`
	DeltaText    string `json:"delta_text"`
	TotalFiles   int    `json:"total_files"`
	NewFiles     int    `json:"new_files"`
	RemovedFiles int    `json:"removed_files"`
	ChangedFiles int    `json:"changed_files"`
}

// DiffResult holds the sorted records and their summary.
type DiffResult struct {
	Files   []FileSizeRecord `json:"files"`
	Summary DiffSummary      `json:"summary"`
}

// CompareReport is the outcome of measuring two builds against each other.
type CompareReport struct {
	BaseRef  string     `json:"base_ref"`
	HeadRef  string     `json:"head_ref"`
	Result   DiffResult `json:"result"`
	Markdown string     `json:"markdown"`
}
