// ABOUTME: MCP subcommand for running the tally MCP server
// ABOUTME: Handles stdio transport initialization and server lifecycle
package cli

import (
	"github.com/spf13/cobra"

	"github.com/harper/tally/internal/logging"
	"github.com/harper/tally/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the tally MCP server",
	Long:  `Start the Model Context Protocol server for AI assistants to read and update the grid over stdio.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		logging.Debug("starting MCP server", "file", s.ws.DataFile)

		server := mcp.NewServer(s.ws, s.cfg)
		return server.Run(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
