package cmd

import (
	"github.com/huangsam/sizewatch/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:     "mcp",
	Short:   "Start the sizewatch MCP server",
	Long:    `Launch an MCP server over stdio that lets AI agents measure and compare build output sizes.`,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, version)
	},
}
