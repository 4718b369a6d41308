package history

import (
	"errors"
	"fmt"
	"io"

	"github.com/huangsam/sizewatch/internal/contract"
	"github.com/huangsam/sizewatch/internal/parquet"
)

// ExecuteHistoryExport writes the recorded runs and file sizes of store to two Parquet files
// named after outputFile.
func ExecuteHistoryExport(store contract.HistoryStore, outputFile string, w io.Writer) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}
	if store == nil {
		return errors.New("history store is not initialized")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}
	if status.TotalRuns == 0 {
		return errors.New("no history data found to export")
	}

	_, _ = fmt.Fprintf(w, "Exporting data from %s backend...\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Total runs: %d\n", status.TotalRuns)
	_, _ = fmt.Fprintf(w, "Total file records: %d\n", status.TableSizes[fileSizesTable])

	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve runs: %w", err)
	}
	fileSizes, err := store.GetAllFileSizes()
	if err != nil {
		return fmt.Errorf("failed to retrieve file sizes: %w", err)
	}

	runsFile := outputFile + ".runs.parquet"
	if err := parquet.WriteRunsParquet(parquet.ConvertRunRecords(runs), runsFile); err != nil {
		return fmt.Errorf("failed to write runs: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d runs to: %s\n", len(runs), runsFile)

	fileSizesFile := outputFile + ".file_sizes.parquet"
	if err := parquet.WriteFileSizesParquet(parquet.ConvertFileSizeRows(fileSizes), fileSizesFile); err != nil {
		return fmt.Errorf("failed to write file sizes: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d file size records to: %s\n", len(fileSizes), fileSizesFile)
	return nil
}
