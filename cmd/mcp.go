package cmd

import (
	"github.com/huangsam/depmap/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Depmap MCP server",
	Long:  `Launch an MCP server that allows AI agents to mine repositories via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Config and store setup happens here, before the server takes
		// over stdio for the protocol.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
