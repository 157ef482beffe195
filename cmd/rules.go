package cmd

import (
	"github.com/docu3c/autocodex/core"
	"github.com/docu3c/autocodex/internal/contract"
	"github.com/spf13/cobra"
)

// rulesSetup loads just enough configuration to render the rule sets.
// No repository argument and no persistence layer are needed here.
func rulesSetup(_ *cobra.Command, _ []string) error {
	return serverSetup(false)
}

// rulesCmd displays the active rule sets and scoring formula.
var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Display review rule sets and the quality score formula",
	Long: `Show the per-language rule thresholds and the quality score formula.

Provides complete transparency into how files are reviewed, including:
- Line length, function length, complexity and duplication thresholds
- Naming convention patterns per language
- The quality score formula and its factor weights
- Custom thresholds if configured via .autocodex.yaml

No GitHub or Gemini access is performed - this is purely informational.

Use this to:
- Understand what each rule measures
- Explain review findings to your team
- Validate custom threshold configurations

Examples:
  # Show default rule sets
  autocodex rules

  # View with custom thresholds from config file
  autocodex rules --config .autocodex.yaml

  # Machine-readable rule dump
  autocodex rules --output json`,
	PreRunE: rulesSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteRules(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot display rules", err)
		}
	},
}
