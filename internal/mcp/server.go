// ABOUTME: MCP server implementation for tally
// ABOUTME: Provides tools and resources for AI assistants to read and update the grid
package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harper/tally/internal/commit"
	"github.com/harper/tally/internal/config"
	"github.com/harper/tally/internal/render"
	"github.com/harper/tally/internal/store"
)

// Server wraps the MCP server with tally-specific functionality.
type Server struct {
	mcpServer *mcp.Server
	store     *store.File
	cfg       *config.Config
	recorder  *commit.Recorder
}

// NewServer creates a new tally MCP server for the grid in ws.
// Mutations are saved, journaled, and auto-synced like CLI commands.
func NewServer(ws *config.Workspace, cfg *config.Config) *Server {
	impl := &mcp.Implementation{
		Name:    "tally",
		Version: "0.1.0",
	}

	if cfg == nil {
		cfg = config.Default()
	}

	st := store.NewFile(ws.DataFile)
	server := &Server{
		mcpServer: mcp.NewServer(impl, nil),
		store:     st,
		cfg:       cfg,
		recorder:  &commit.Recorder{Store: st, Workspace: ws, Config: cfg},
	}

	server.registerPrompts()
	server.registerTools()
	server.registerResources()

	return server
}

// Run starts the MCP server with stdio transport.
func (s *Server) Run(ctx context.Context) error {
	transport := &mcp.StdioTransport{}
	return s.mcpServer.Run(ctx, transport)
}

func (s *Server) renderOptions(verbose bool) render.Options {
	return render.Options{
		Verbose:    verbose,
		Threshold:  s.cfg.HighlightThreshold,
		DateFormat: s.cfg.DateFormat,
	}
}
