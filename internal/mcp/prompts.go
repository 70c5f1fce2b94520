// ABOUTME: MCP prompt definitions for tally
// ABOUTME: Provides static context to AI assistants about the habit grid
package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// registerPrompts adds static prompts to the MCP server.
func (s *Server) registerPrompts() {
	prompt := &mcp.Prompt{
		Name:        "tally-getting-started",
		Description: "Introduction to tally and how AI assistants should use it",
	}

	handler := func(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		content := `Tally is a personal habit tracker kept as a grid.

Each column is a class (a habit such as "run" or "read"). Each row is a
timestamp, usually one per day. A cell holds a score from 0 to 254; 255
means the cell has not been filled in and shows as [!].

How to help:
- Start the day with new_row so every class gets a blank cell
- When the user reports how a habit went, record it with set_value
- Add habits with new_class and fix names with rename_class
- Use show_grid or the tally://stats resource to answer questions about progress`

		return &mcp.GetPromptResult{
			Description: "Getting started with tally",
			Messages: []*mcp.PromptMessage{
				{
					Role:    "user",
					Content: &mcp.TextContent{Text: content},
				},
			},
		}, nil
	}

	s.mcpServer.AddPrompt(prompt, handler)
}
