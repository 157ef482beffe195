package cmd

import (
	"github.com/docu3c/autocodex/core"
	"github.com/spf13/cobra"
)

// checkSetup runs full validation minus the repository argument.
// The preflight probes credentials and backends, not a specific repo.
func checkSetup(_ *cobra.Command, _ []string) error {
	return serverSetup(true)
}

// checkCmd verifies that the environment is ready for reviews.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify credentials, linters and backends before running reviews",
	Long: `Run preflight checks against the current configuration.

Probes:
- GitHub token and Gemini API key presence
- External linters on PATH (pylint, pmd)
- Cache backend connectivity
- History backend connectivity (when enabled)

Exits non-zero when a required probe fails, so it can gate CI/CD jobs
before any review time is spent.

Examples:
  # Check the default environment
  autocodex check

  # Check a CI environment with env-provided tokens
  AUTOCODEX_GITHUB_TOKEN=... AUTOCODEX_GEMINI_API_KEY=... autocodex check

  # Metrics-only setups don't need a Gemini key
  autocodex check --no-ai yes`,
	PreRunE: checkSetup,
	RunE: func(_ *cobra.Command, _ []string) error {
		return core.ExecuteCheck(rootCtx, cfg, cacheManager)
	},
}
