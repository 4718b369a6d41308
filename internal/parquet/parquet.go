// Package parquet exports sizewatch run history to Parquet files
// using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/sizewatch/schema"
	"github.com/parquet-go/parquet-go"
)

// Run is one comparison run. It maps to the sizewatch_runs table.
type Run struct {
	RunID         int64      `parquet:"run_id,snappy"`
	StartTime     time.Time  `parquet:"start_time,snappy"`
	EndTime       *time.Time `parquet:"end_time,optional,snappy"`
	RunDurationMs *int32     `parquet:"run_duration_ms,optional,snappy"`
	BaseRef       string     `parquet:"base_ref,snappy,dict"`
	HeadRef       string     `parquet:"head_ref,snappy,dict"`
	Compression   string     `parquet:"compression,snappy,dict"`
	TotalSize     int64      `parquet:"total_size,snappy"`
	TotalDelta    int64      `parquet:"total_delta,snappy"`
	TotalFiles    int32      `parquet:"total_files,snappy"`

	// ConfigParams contains the JSON-encoded configuration (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// FileSize is the size of one logical file in a run. It maps to the sizewatch_file_sizes table.
type FileSize struct {
	RunID        int64  `parquet:"run_id,snappy"`
	Filename     string `parquet:"filename,snappy,dict"`
	Size         int64  `parquet:"size,snappy"`
	Delta        int64  `parquet:"delta,snappy"`
	OriginalSize int64  `parquet:"original_size,snappy"`
}

// ConvertRunRecords converts history rows to Parquet runs.
func ConvertRunRecords(records []schema.RunRecord) []Run {
	result := make([]Run, len(records))
	for i, record := range records {
		result[i] = Run{
			RunID:         record.RunID,
			StartTime:     record.StartTime,
			EndTime:       record.EndTime,
			RunDurationMs: record.RunDurationMs,
			BaseRef:       record.BaseRef,
			HeadRef:       record.HeadRef,
			Compression:   record.Compression,
			TotalSize:     record.TotalSize,
			TotalDelta:    record.TotalDelta,
			TotalFiles:    record.TotalFiles,
			ConfigParams:  record.ConfigParams,
		}
	}
	return result
}

// ConvertFileSizeRows converts history rows to Parquet file sizes.
func ConvertFileSizeRows(rows []schema.FileSizeRow) []FileSize {
	result := make([]FileSize, len(rows))
	for i, row := range rows {
		result[i] = FileSize{
			RunID:        row.RunID,
			Filename:     row.Filename,
			Size:         row.Size,
			Delta:        row.Delta,
			OriginalSize: row.Size - row.Delta,
		}
	}
	return result
}

// WriteRunsParquet writes runs to a Parquet file.
func WriteRunsParquet(data []Run, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteFileSizesParquet writes file sizes to a Parquet file.
func WriteFileSizesParquet(data []FileSize, outputPath string) error {
	return writeParquet(data, outputPath)
}

// writeParquet writes rows with a schema inferred from the struct tags of T.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return file.Close()
}
