package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/docu3c/autocodex/internal/contract"
	"github.com/docu3c/autocodex/internal/parquet"
	"github.com/docu3c/autocodex/schema"
)

// PrintRepoReport outputs the review summary, dispatching based on the
// output format configured.
func PrintRepoReport(report *schema.RepoReport, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, report)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			csvWriter := csv.NewWriter(w)
			defer csvWriter.Flush()
			return writeReviewCSV(csvWriter, report, fmtFloat, intFmt)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeReviewParquet(report, cfg); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReviewTable(report, cfg, fmtFloat, intFmt, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeReviewTable generates and writes the human-readable summary table.
func writeReviewTable(report *schema.RepoReport, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Path", "Lang", "LOC", "CC", "MI", "Dup", "Lint", "Issues", "Label"})

	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	label := contract.GetColorLabel
	if !cfg.UseColors {
		label = contract.GetPlainLabel
	}

	var data [][]string
	for _, f := range report.Files {
		data = append(data, []string{
			contract.TruncatePath(f.Path, GetMaxTablePathWidth(cfg)),
			string(f.Language),
			fmt.Sprintf(intFmt, f.Lines.Code),
			fmt.Sprintf(intFmt, f.Complexity),
			fmtFloat(f.Maintainability),
			fmt.Sprintf(intFmt, f.Duplication),
			formatLintScore(f.LintScore, fmtFloat),
			formatIssueCount(f.Issues, cfg.UseColors),
			label(f.Maintainability),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "Reviewed %d files from %s (skipped: %d, total issues: %d%s)\n",
		report.FilesAnalyzed, report.Repository, len(report.Skipped), report.TotalIssues,
		severityBreakdown(report.Files)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Quality score: %s/100 (avg complexity %s, avg maintainability %s)\n",
		fmtFloat(report.QualityScore), fmtFloat(report.AvgComplexity), fmtFloat(report.AvgMaintainability)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Review completed in %v. Cache backend: %s\n", duration, cfg.CacheBackend); err != nil {
		return err
	}
	return nil
}

// formatIssueCount renders the per-file issue count, tinted by the most
// serious severity present when colors are on.
func formatIssueCount(issues []schema.Issue, useColors bool) string {
	count := strconv.Itoa(len(issues))
	if !useColors || len(issues) == 0 {
		return count
	}
	switch schema.WorstSeverity(issues) {
	case schema.ErrorSeverity:
		return contract.CriticalColor.Sprint(count)
	case schema.WarningSeverity:
		return contract.ModerateColor.Sprint(count)
	default:
		return contract.LowColor.Sprint(count)
	}
}

// severityBreakdown summarizes issue severities across all files, such as
// ": 1 error, 3 warnings". Empty when no file has issues.
func severityBreakdown(files []schema.FileReview) string {
	counts := make(map[schema.Severity]int)
	for _, f := range files {
		for sev, n := range schema.CountBySeverity(f.Issues) {
			counts[sev] += n
		}
	}
	if len(counts) == 0 {
		return ""
	}

	var parts []string
	for _, sev := range []schema.Severity{schema.ErrorSeverity, schema.WarningSeverity, schema.InfoSeverity} {
		if n := counts[sev]; n > 0 {
			label := string(sev)
			if n != 1 && sev != schema.InfoSeverity {
				label += "s"
			}
			parts = append(parts, fmt.Sprintf("%d %s", n, label))
		}
	}
	return ": " + strings.Join(parts, ", ")
}

// writeReviewCSV writes the per-file summary in CSV format.
func writeReviewCSV(w *csv.Writer, report *schema.RepoReport, fmtFloat func(float64) string, intFmt string) error {
	header := []string{
		"file",
		"language",
		"loc",
		"comment_lines",
		"blank_lines",
		"complexity",
		"maintainability",
		"duplication",
		"lint_score",
		"issues",
		"label",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, f := range report.Files {
		rec := []string{
			f.Path,
			string(f.Language),
			fmt.Sprintf(intFmt, f.Lines.Code),
			fmt.Sprintf(intFmt, f.Lines.Comment),
			fmt.Sprintf(intFmt, f.Lines.Blank),
			fmt.Sprintf(intFmt, f.Complexity),
			fmtFloat(f.Maintainability),
			fmt.Sprintf(intFmt, f.Duplication),
			formatLintScore(f.LintScore, fmtFloat),
			strconv.Itoa(len(f.Issues)),
			contract.GetPlainLabel(f.Maintainability),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// writeReviewParquet writes the per-file summary as a Parquet file. Parquet
// needs a seekable target, so stdout is not supported for this mode.
func writeReviewParquet(report *schema.RepoReport, cfg *contract.Config) error {
	outputFile := cfg.OutputFile
	if outputFile == "" {
		outputFile = "code_review_summary.parquet"
	}

	records := make([]parquet.FileReviewRecord, len(report.Files))
	for i, f := range report.Files {
		records[i] = parquet.FileReviewRecord{
			FilePath:        f.Path,
			Language:        string(f.Language),
			ReviewTime:      report.ScanTime,
			LinesOfCode:     int32(f.Lines.Code),
			Complexity:      int32(f.Complexity),
			Maintainability: f.Maintainability,
			Duplication:     int32(f.Duplication),
			LintScore:       f.LintScore,
			IssueCount:      int32(len(f.Issues)),
		}
	}

	if err := parquet.WriteFileRecordsParquet(records, outputFile); err != nil {
		return err
	}
	fmt.Printf("💾 Wrote Parquet to %s\n", outputFile)
	return nil
}
