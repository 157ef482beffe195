package cmd

import (
	"github.com/docu3c/autocodex/core"
	"github.com/docu3c/autocodex/internal/contract"
	"github.com/spf13/cobra"
)

// dashboardSetup loads display configuration only.
func dashboardSetup(_ *cobra.Command, _ []string) error {
	return serverSetup(false)
}

// dashboardCmd renders a saved JSON report as a static HTML page.
var dashboardCmd = &cobra.Command{
	Use:   "dashboard <report.json>",
	Short: "Render a saved JSON review report as an HTML dashboard",
	Long: `Turn a JSON review report into a self-contained HTML dashboard.

The input is a report produced by 'review --output json --output-file ...'.
The output is a single static HTML file with summary chips, a sortable
metrics table and per-file issue and suggestion details. No server is
needed; open it directly in a browser or publish it as a CI artifact.

Examples:
  # Produce a report, then render it
  autocodex review golang/go --output json --output-file review.json
  autocodex dashboard review.json

  # Choose the output location
  autocodex dashboard review.json --dashboard-file public/review.html`,
	Args:    cobra.ExactArgs(1),
	PreRunE: dashboardSetup,
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecuteDashboard(rootCtx, cfg, args[0]); err != nil {
			contract.LogFatal("Cannot render dashboard", err)
		}
	},
}
