package cmd

import (
	"github.com/docu3c/autocodex/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the AutoCodex MCP server",
	Long:  `Launch an MCP server that allows AI agents to run repository reviews via standard tools.`,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		// No repository argument here; MCP clients supply the
		// repository per tool call over stdio.
		return serverSetup(true)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, cacheManager)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
