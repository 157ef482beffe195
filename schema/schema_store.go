package schema

import "time"

// CacheStatus holds status information for the suggestion cache store.
type CacheStatus struct {
	Backend         string
	Connected       bool
	TotalEntries    int64
	LastEntryTime   time.Time
	OldestEntryTime time.Time
	TableSizeBytes  int64
}

// HistoryStatus holds status information for the review history store.
type HistoryStatus struct {
	Backend            string
	Connected          bool
	TotalRuns          int64
	LastRunID          int64
	LastRunTime        time.Time
	OldestRunTime      time.Time
	TotalFilesReviewed int64
	TableSizes         map[string]int64
}

// RunRecord is a single review run row from the history store.
type RunRecord struct {
	RunID        int64
	StartTime    time.Time
	EndTime      *time.Time
	FilesTotal   int
	ConfigParams *string // JSON-encoded run configuration
}

// FileRecord is a single per-file metrics row from the history store.
type FileRecord struct {
	RunID           int64
	Path            string
	Language        string
	ReviewTime      time.Time
	LinesOfCode     int
	Complexity      int
	Maintainability float64
	Duplication     int
	LintScore       float64
	IssueCount      int
}
