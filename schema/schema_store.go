package schema

import "time"

// RunRecord represents a row from the sizewatch_runs table.
type RunRecord struct {
	RunID         int64
	StartTime     time.Time
	EndTime       *time.Time
	RunDurationMs *int32
	BaseRef       string
	HeadRef       string
	Compression   string
	TotalSize     int64
	TotalDelta    int64
	TotalFiles    int32
	ConfigParams  *string
}

// RunTotals is what a finished run reports back to the history store.
type RunTotals struct {
	TotalSize  int64
	TotalDelta int64
	TotalFiles int
}

// FileSizeRow represents a row from the sizewatch_file_sizes table.
type FileSizeRow struct {
	RunID    int64
	Filename string
	Size     int64
	Delta    int64
}
