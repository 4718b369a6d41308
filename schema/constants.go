package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the console output.
	OutputMode string

	// CompressionMode represents the algorithm used to measure compressed sizes.
	CompressionMode string

	// DatabaseBackend represents the database backend for run history.
	DatabaseBackend string

	// SortColumn represents a column the report can be ordered by.
	SortColumn string

	// SortDirection represents ascending or descending order.
	SortDirection string

	// Severity represents the band a size change falls into.
	Severity string

	// Status represents how a file changed between two builds.
	Status string
)

// All output modes supported.
const (
	TextOut     OutputMode = "text" // default
	JSONOut     OutputMode = "json"
	CSVOut      OutputMode = "csv"
	MarkdownOut OutputMode = "markdown"
)

// All compression modes supported.
const (
	GzipCompression   CompressionMode = "gzip" // default
	BrotliCompression CompressionMode = "brotli"
	ZstdCompression   CompressionMode = "zstd"
	LZ4Compression    CompressionMode = "lz4"
	NoCompression     CompressionMode = "none"
)

// All history backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite"
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none" // default
)

// Sortable report columns.
const (
	FilenameColumn SortColumn = "Filename" // default
	SizeColumn     SortColumn = "Size"
	ChangeColumn   SortColumn = "Change"
)

// Sort directions.
const (
	AscDirection  SortDirection = "asc" // default
	DescDirection SortDirection = "desc"
)

// Severity bands, most severe growth first.
const (
	NewFileSeverity       Severity = "new-file"
	CriticalGrowth        Severity = "critical-growth"
	MajorGrowth           Severity = "major-growth"
	WarningGrowth         Severity = "warning-growth"
	NotableGrowth         Severity = "notable-growth"
	BestShrink            Severity = "best-shrink"
	GreatShrink           Severity = "great-shrink"
	GoodShrink            Severity = "good-shrink"
	MinorShrink           Severity = "minor-shrink"
	InsignificantSeverity Severity = ""
)

// All file statuses supported.
const (
	NewStatus       Status = "new"
	RemovedStatus   Status = "removed"
	ChangedStatus   Status = "changed"
	UnchangedStatus Status = "unchanged"
)

// SeverityIcons maps each band to the icon printed in reports.
var SeverityIcons = map[Severity]string{
	NewFileSeverity: "🆕",
	CriticalGrowth:  "🆘",
	MajorGrowth:     "🚨",
	WarningGrowth:   "⚠️",
	NotableGrowth:   "🔍",
	BestShrink:      "🏆",
	GreatShrink:     "🎉",
	GoodShrink:      "👏",
	MinorShrink:     "✅",
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:     {},
	JSONOut:     {},
	CSVOut:      {},
	MarkdownOut: {},
}

// ValidCompressionModes lists all valid compression modes.
var ValidCompressionModes = map[CompressionMode]struct{}{
	GzipCompression:   {},
	BrotliCompression: {},
	ZstdCompression:   {},
	LZ4Compression:    {},
	NoCompression:     {},
}

// ValidDatabaseBackends lists all valid history backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidSortColumns lists all valid sort columns.
var ValidSortColumns = map[SortColumn]struct{}{
	FilenameColumn: {},
	SizeColumn:     {},
	ChangeColumn:   {},
}

// ValidSortDirections lists all valid sort directions.
var ValidSortDirections = map[SortDirection]struct{}{
	AscDirection:  {},
	DescDirection: {},
}
