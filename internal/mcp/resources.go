// ABOUTME: MCP resource implementations for tally
// ABOUTME: Exposes the grid and its statistics as JSON documents
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	gridURI  = "tally://grid"
	statsURI = "tally://stats"
)

// registerResources adds all MCP resources to the server.
func (s *Server) registerResources() {
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         gridURI,
		Name:        "Grid",
		Description: "Every class with its timestamped entries; value 255 means blank",
		MIMEType:    "application/json",
	}, s.handleGrid)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         statsURI,
		Name:        "Stats",
		Description: "Per-class counts, mean, min, max, and current streak",
		MIMEType:    "application/json",
	}, s.handleStats)
}

func (s *Server) handleGrid(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	d, err := s.store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load grid: %w", err)
	}
	return jsonResource(gridURI, d)
}

func (s *Server) handleStats(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	d, err := s.store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load grid: %w", err)
	}
	return jsonResource(statsURI, d.Stats())
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      uri,
				MIMEType: "application/json",
				Text:     string(data),
			},
		},
	}, nil
}
