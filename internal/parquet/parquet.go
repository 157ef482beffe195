// Package parquet provides data structures and functions for exporting review
// history to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/docu3c/autocodex/schema"
)

// ReviewRun represents a single review run with metadata.
// This struct maps to the autocodex_review_runs database table.
type ReviewRun struct {
	// RunID is the unique identifier for this review run
	RunID int64 `parquet:"run_id,snappy"`

	// StartTime is when the review began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the review completed (nullable, stored as TIMESTAMP with nanosecond precision)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// FilesTotal is the number of files reviewed in this run
	FilesTotal int32 `parquet:"files_total,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// FileReviewRecord represents the metrics for a single file in a review run.
// This struct maps to the autocodex_file_records database table.
type FileReviewRecord struct {
	// RunID references the parent review run
	RunID int64 `parquet:"run_id,snappy"`

	// FilePath is the path of the file in the repository
	FilePath string `parquet:"file_path,snappy"`

	// Language is the detected source language of the file
	Language string `parquet:"language,snappy"`

	// ReviewTime is when this file was reviewed (stored as TIMESTAMP with nanosecond precision)
	ReviewTime time.Time `parquet:"review_time,snappy"`

	// LinesOfCode is the count of code lines (excluding blanks and comments)
	LinesOfCode int32 `parquet:"lines_of_code,snappy"`

	// Complexity is the cyclomatic complexity estimate for the file
	Complexity int32 `parquet:"complexity,snappy"`

	// Maintainability is the normalized maintainability index (0-100)
	Maintainability float64 `parquet:"maintainability,snappy"`

	// Duplication is the number of near-duplicate line pairs detected
	Duplication int32 `parquet:"duplication,snappy"`

	// LintScore is the external linter score on the 0-10 scale (0 when no linter ran)
	LintScore float64 `parquet:"lint_score,snappy"`

	// IssueCount is the number of rule violations found in the file
	IssueCount int32 `parquet:"issue_count,snappy"`
}

// WriteRunsParquet writes a slice of ReviewRun structs to a Parquet file.
func WriteRunsParquet(data []ReviewRun, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the ReviewRun struct tags
	writer := parquet.NewGenericWriter[ReviewRun](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteFileRecordsParquet writes a slice of FileReviewRecord structs to a Parquet file.
func WriteFileRecordsParquet(data []FileReviewRecord, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the FileReviewRecord struct tags
	writer := parquet.NewGenericWriter[FileReviewRecord](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// ConvertRunRecords converts schema.RunRecord to ReviewRun for Parquet export.
func ConvertRunRecords(records []schema.RunRecord) []ReviewRun {
	result := make([]ReviewRun, len(records))
	for i, record := range records {
		result[i] = ReviewRun{
			RunID:        record.RunID,
			StartTime:    record.StartTime,
			EndTime:      record.EndTime,
			FilesTotal:   int32(record.FilesTotal),
			ConfigParams: record.ConfigParams,
		}
	}
	return result
}

// ConvertFileRecords converts schema.FileRecord to FileReviewRecord for Parquet export.
func ConvertFileRecords(records []schema.FileRecord) []FileReviewRecord {
	result := make([]FileReviewRecord, len(records))
	for i, record := range records {
		result[i] = FileReviewRecord{
			RunID:           record.RunID,
			FilePath:        record.Path,
			Language:        record.Language,
			ReviewTime:      record.ReviewTime,
			LinesOfCode:     int32(record.LinesOfCode),
			Complexity:      int32(record.Complexity),
			Maintainability: record.Maintainability,
			Duplication:     int32(record.Duplication),
			LintScore:       record.LintScore,
			IssueCount:      int32(record.IssueCount),
		}
	}
	return result
}
