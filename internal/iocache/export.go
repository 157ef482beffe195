package iocache

import (
	"errors"
	"fmt"

	"github.com/docu3c/autocodex/internal/parquet"
)

// ExecuteHistoryExport performs the actual export of review history to Parquet files.
func ExecuteHistoryExport(outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	// Get the history store
	store := Manager.GetHistoryStore()

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}

	if status.TotalRuns == 0 {
		return errors.New("no review history found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total review runs: %d\n", status.TotalRuns)
	fmt.Printf("Total file records: %d\n", status.TableSizes[fileRecordsTable])

	// Retrieve all review runs
	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve review runs: %w", err)
	}

	// Retrieve all per-file records
	fileRecords, err := store.GetAllFileRecords()
	if err != nil {
		return fmt.Errorf("failed to retrieve file records: %w", err)
	}

	// Convert to Parquet format
	parquetRuns := parquet.ConvertRunRecords(runs)
	parquetFiles := parquet.ConvertFileRecords(fileRecords)

	// Write review runs to Parquet
	runsFile := outputFile + ".review_runs.parquet"
	if err := parquet.WriteRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write review runs: %w", err)
	}
	fmt.Printf("Exported %d review runs to: %s\n", len(parquetRuns), runsFile)

	// Write file records to Parquet
	filesFile := outputFile + ".file_records.parquet"
	if err := parquet.WriteFileRecordsParquet(parquetFiles, filesFile); err != nil {
		return fmt.Errorf("failed to write file records: %w", err)
	}
	fmt.Printf("Exported %d file records to: %s\n", len(parquetFiles), filesFile)

	fmt.Println("\nExport complete! The Parquet files can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Apache Arrow")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
