package cmd

import (
	"github.com/docu3c/autocodex/core"
	"github.com/docu3c/autocodex/internal/contract"
	"github.com/spf13/cobra"
)

// reviewCmd runs a full repository review.
var reviewCmd = &cobra.Command{
	Use:   "review <owner/repo>",
	Short: "Review a GitHub repository with quality metrics and AI suggestions",
	Long: `Fetch source files from a GitHub repository, measure their quality and
ask Gemini for per-file review suggestions.

For every reviewed file you get:
- Lines of code, comment and blank line counts
- Cyclomatic complexity and a maintainability index
- Duplication scoring across similar lines
- Rule findings (line length, function length, naming, language checks)
- AI review suggestions from the configured Gemini model

Results are printed as a table (or csv/json/parquet with --output) and a
markdown report is written alongside. Suggestions are cached per content
hash, so re-running a review only calls Gemini for changed files.

Examples:
  # Review up to 20 files (default)
  autocodex review golang/go

  # Review more files, Python only
  autocodex review django/django --max-files 50 --languages python

  # Metrics only, no Gemini calls
  autocodex review golang/go --no-ai yes

  # Machine-readable output for pipelines
  autocodex review golang/go --output json --output-file review.json

  # Write an HTML dashboard next to the report
  autocodex review golang/go --dashboard-file review.html`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteReview(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot review repository", err)
		}
	},
}
