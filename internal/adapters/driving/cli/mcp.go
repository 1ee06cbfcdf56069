package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/repdesk/internal/adapters/driving/mcp"
	"github.com/custodia-labs/repdesk/internal/core/services"
)

// Port range scanned by --any-port.
const (
	mcpPortRangeStart = 8765
	mcpPortRangeEnd   = 8865
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can answer
customer questions from the support corpus.

Tools: ask, more, upvote, flag, product_lookup, add_qa.
Resources: repdesk://categories, repdesk://products/{sku}.

Each client gets its own retrieval session, so paging and voting in one
conversation never affect another.

By default the server communicates over stdio using JSON-RPC. Use --port
to serve over HTTP instead.

Examples:
  # Stdio mode (default, for desktop assistants)
  repdesk mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  repdesk mcp serve --port 8080

  # HTTP on the first free port from 8765
  repdesk mcp serve --any-port

Assistant configuration:
  {
    "mcpServers": {
      "repdesk": {
        "command": "/path/to/repdesk",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpServeCmd.Flags().Bool("any-port", false, "serve HTTP on the first free port")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}
	anyPort, err := cmd.Flags().GetBool("any-port")
	if err != nil {
		return fmt.Errorf("getting any-port flag: %w", err)
	}
	if anyPort && port > 0 {
		return errors.New("--port and --any-port are mutually exclusive")
	}

	server, err := newMCPServer()
	if err != nil {
		return err
	}

	if anyPort {
		if port, err = services.FindAvailablePort("", mcpPortRangeStart, mcpPortRangeEnd); err != nil {
			return err
		}
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}

func newMCPServer() (*mcp.Server, error) {
	return mcp.NewServer(&mcp.Ports{
		Sessions: sessionProvider,
		Catalog:  catalogService,
		Ingest:   ingestService,
	})
}
