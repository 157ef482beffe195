// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/docu3c/autocodex/schema"
)

// RepoHost defines the operations needed to fetch repository content from a
// hosting provider. This allows the review pipeline to be tested without
// network access.
type RepoHost interface {
	// DefaultBranch returns the default branch name of the repository.
	DefaultBranch(ctx context.Context, owner, repo string) (string, error)

	// ListFiles returns the paths of all blobs in the tree at the given branch.
	ListFiles(ctx context.Context, owner, repo, branch string) ([]string, error)

	// FileContent returns the decoded content of a single file.
	FileContent(ctx context.Context, owner, repo, path string) (string, error)
}

// SuggestionRequest carries everything the advisor needs to produce
// improvement suggestions for one file.
type SuggestionRequest struct {
	Path            string
	Language        schema.Language
	Content         string
	Lines           schema.LineCount
	Complexity      int
	Maintainability float64
	LintScore       float64
	Issues          []schema.Issue
}

// Advisor defines the interface for AI-backed review suggestions.
type Advisor interface {
	// Suggest returns markdown-formatted improvement suggestions for a file.
	Suggest(ctx context.Context, req SuggestionRequest) (string, error)

	// Close releases the underlying client connection.
	Close() error
}

// LintResult holds the outcome of running an external linter on one file.
type LintResult struct {
	Score  float64
	Issues []schema.Issue
}

// Linter defines the interface for optional external lint tools.
type Linter interface {
	// Language returns the language this linter handles.
	Language() schema.Language

	// Available reports whether the lint binary is present on PATH.
	Available() bool

	// Run lints the given file content and returns a normalized result.
	Run(ctx context.Context, path string, content []byte) (LintResult, error)
}

// CacheManager defines the interface for managing persistence stores.
// This allows the storage layer to be mocked for testing.
type CacheManager interface {
	GetSuggestionStore() CacheStore
	GetHistoryStore() HistoryStore
}

// CacheStore defines the interface for suggestion cache storage.
type CacheStore interface {
	Get(key string) (string, bool, error)
	Set(key string, value string, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// HistoryStore defines the interface for tracking review runs and per-file metrics.
type HistoryStore interface {
	// BeginRun creates a new review run and returns its unique ID
	BeginRun(startTime time.Time, configParams map[string]any) (int64, error)

	// EndRun updates the review run with completion data
	EndRun(runID int64, endTime time.Time, totalFiles int) error

	// RecordFile stores metrics for a single reviewed file
	RecordFile(runID int64, rec schema.FileRecord) error

	// GetAllRuns returns every recorded run, oldest first
	GetAllRuns() ([]schema.RunRecord, error)

	// GetAllFileRecords returns every per-file record, grouped by run
	GetAllFileRecords() ([]schema.FileRecord, error)

	// GetStatus returns status information about the history store
	GetStatus() (schema.HistoryStatus, error)

	// Close closes the underlying connection
	Close() error
}
