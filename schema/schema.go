// Package schema has configs, models and shared constants for all parts of autocodex.
package schema

import "time"

// LineCount is the classification of source lines in a single file.
type LineCount struct {
	Code    int `json:"code"`
	Comment int `json:"comment"`
	Blank   int `json:"blank"`
}

// Total returns the total number of lines in the file.
func (lc LineCount) Total() int {
	return lc.Code + lc.Comment + lc.Blank
}

// Issue is a single finding raised against a file by the rules engine
// or an external linter.
type Issue struct {
	Rule     string   `json:"rule"`
	Severity Severity `json:"severity"`
	Line     int      `json:"line,omitempty"` // 0 means file-level
	Message  string   `json:"message"`
}

// FileReview holds the computed metrics and findings for a single file.
// It is produced once per file during a review run and never mutated afterwards.
type FileReview struct {
	Path            string    `json:"path"`
	Language        Language  `json:"language"`
	ContentSHA      string    `json:"content_sha"`       // SHA-256 of the fetched file content
	Lines           LineCount `json:"lines"`             // Code/comment/blank split
	Complexity      int       `json:"complexity"`        // Highest per-function cyclomatic complexity
	Maintainability float64   `json:"maintainability"`   // Maintainability index, 0-100
	Duplication     int       `json:"duplication"`       // Near-duplicate line pairs (cosine > threshold)
	LintScore       float64   `json:"lint_score"`        // External linter score (0-10, -1 when skipped)
	Issues          []Issue   `json:"issues"`            // Rule and linter findings
	Suggestion      string    `json:"suggestion"`        // Generative review text (placeholder on failure)
	Cached          bool      `json:"cached,omitempty"`  // Suggestion served from cache
}

// SkippedFile records a file that could not be reviewed, with the reason.
type SkippedFile struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// RepoReport aggregates all file reviews for one repository scan.
type RepoReport struct {
	Repository         string        `json:"repository"`
	ScanTime           time.Time     `json:"scan_time"`
	Model              string        `json:"model,omitempty"` // Generative model used, empty when AI disabled
	FilesAnalyzed      int           `json:"files_analyzed"`
	Skipped            []SkippedFile `json:"skipped,omitempty"`
	TotalIssues        int           `json:"total_issues"`
	TotalLOC           int           `json:"total_loc"`
	AvgComplexity      float64       `json:"avg_complexity"`
	AvgMaintainability float64       `json:"avg_maintainability"`
	AvgDuplication     float64       `json:"avg_duplication"`
	QualityScore       float64       `json:"quality_score"` // 0-100, higher is better
	Files              []FileReview  `json:"files"`
}
