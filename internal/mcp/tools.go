// ABOUTME: MCP tool implementations for tally
// ABOUTME: Lets assistants view the grid, add rows and classes, and record values
package mcp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harper/tally/internal/grid"
	"github.com/harper/tally/internal/render"
)

// ShowGridInput defines the input for show_grid tool.
type ShowGridInput struct {
	Verbose bool `json:"verbose,omitempty" jsonschema:"Label columns with class names and rows with dates"`
}

// ShowGridOutput defines the output for show_grid tool.
type ShowGridOutput struct {
	Table   string   `json:"table" jsonschema:"The rendered grid"`
	Classes []string `json:"classes" jsonschema:"Class names in column order"`
	Rows    int      `json:"rows" jsonschema:"Number of rows"`
}

// SetValueInput defines the input for set_value tool.
type SetValueInput struct {
	Class string `json:"class" jsonschema:"Class name"`
	Row   *int   `json:"row,omitempty" jsonschema:"Row index; defaults to the latest row"`
	Value int    `json:"value" jsonschema:"Value 0-254, or 255 to clear the cell"`
}

// SetValueOutput defines the output for set_value tool.
type SetValueOutput struct {
	Class string `json:"class"`
	Row   int    `json:"row"`
	Value int    `json:"value"`
}

// NewRowInput defines the input for new_row tool.
type NewRowInput struct {
	At string `json:"at,omitempty" jsonschema:"RFC3339 timestamp for the row; defaults to now"`
}

// NewRowOutput defines the output for new_row tool.
type NewRowOutput struct {
	Row       int    `json:"row"`
	Timestamp string `json:"timestamp"`
}

// NewClassInput defines the input for new_class tool.
type NewClassInput struct {
	Name string `json:"name" jsonschema:"Name of the new class"`
}

// NewClassOutput defines the output for new_class tool.
type NewClassOutput struct {
	ID    string `json:"id"`
	Index int    `json:"index"`
}

// RenameClassInput defines the input for rename_class tool.
type RenameClassInput struct {
	From string `json:"from" jsonschema:"Current class name"`
	Into string `json:"into" jsonschema:"New class name"`
}

// RenameClassOutput defines the output for rename_class tool.
type RenameClassOutput struct {
	Renamed int `json:"renamed"`
}

// registerTools adds all MCP tools to the server.
func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "show_grid",
		Description: "Show the habit grid as a table. Columns are classes, rows are timestamps, [!] marks cells not yet filled in.",
	}, s.handleShowGrid)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "set_value",
		Description: "Record a 0-254 score for a class on a row. Use when the user reports how a habit went.",
	}, s.handleSetValue)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "new_row",
		Description: "Start a new row (usually a new day) with every class blank.",
	}, s.handleNewRow)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "new_class",
		Description: "Add a new class (habit) to track.",
	}, s.handleNewClass)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "rename_class",
		Description: "Rename every class with the given name.",
	}, s.handleRenameClass)
}

func (s *Server) handleShowGrid(ctx context.Context, req *mcp.CallToolRequest, input ShowGridInput) (*mcp.CallToolResult, ShowGridOutput, error) {
	d, err := s.store.Load()
	if err != nil {
		return nil, ShowGridOutput{}, err
	}

	table, err := render.Grid(d, s.renderOptions(input.Verbose))
	if err != nil {
		return nil, ShowGridOutput{}, err
	}

	names := make([]string, 0, len(d.Classes))
	for _, c := range d.Classes {
		names = append(names, c.Name)
	}

	output := ShowGridOutput{Table: table, Classes: names, Rows: d.Rows()}
	return textResult(table), output, nil
}

func (s *Server) handleSetValue(ctx context.Context, req *mcp.CallToolRequest, input SetValueInput) (*mcp.CallToolResult, SetValueOutput, error) {
	if input.Value < 0 || input.Value > int(grid.Blank) {
		return nil, SetValueOutput{}, fmt.Errorf("value %d out of range 0-255", input.Value)
	}

	d, err := s.store.Load()
	if err != nil {
		return nil, SetValueOutput{}, err
	}

	x := d.Find(input.Class)
	if x < 0 {
		return nil, SetValueOutput{}, fmt.Errorf("no class named %q", input.Class)
	}

	y := d.Rows() - 1
	if input.Row != nil {
		y = *input.Row
	}

	if err := d.Set(x, y, byte(input.Value)); err != nil {
		if errors.Is(err, grid.ErrOutOfRange) {
			return nil, SetValueOutput{}, fmt.Errorf("row %d does not exist (grid has %d rows)", y, d.Rows())
		}
		return nil, SetValueOutput{}, err
	}
	detail := fmt.Sprintf("%s[%d] = %d", d.Classes[x].Name, y, input.Value)
	if err := s.recorder.Commit(d, "set", detail); err != nil {
		return nil, SetValueOutput{}, err
	}

	output := SetValueOutput{Class: input.Class, Row: y, Value: input.Value}
	return textResult(fmt.Sprintf("Set %s[%d] = %d", input.Class, y, input.Value)), output, nil
}

func (s *Server) handleNewRow(ctx context.Context, req *mcp.CallToolRequest, input NewRowInput) (*mcp.CallToolResult, NewRowOutput, error) {
	at := time.Now()
	if input.At != "" {
		parsed, err := time.Parse(time.RFC3339, input.At)
		if err != nil {
			return nil, NewRowOutput{}, fmt.Errorf("invalid timestamp: %w", err)
		}
		at = parsed
	}

	d, err := s.store.Load()
	if err != nil {
		return nil, NewRowOutput{}, err
	}
	if err := d.NewBlankRow(at); err != nil {
		return nil, NewRowOutput{}, err
	}
	if err := s.recorder.Commit(d, "new", at.Format(time.RFC3339)); err != nil {
		return nil, NewRowOutput{}, err
	}

	row := rowIndex(d, at)
	output := NewRowOutput{Row: row, Timestamp: at.Format(time.RFC3339)}
	return textResult(fmt.Sprintf("Row %d created at %s", row, output.Timestamp)), output, nil
}

func (s *Server) handleNewClass(ctx context.Context, req *mcp.CallToolRequest, input NewClassInput) (*mcp.CallToolResult, NewClassOutput, error) {
	d, err := s.store.Load()
	if err != nil {
		return nil, NewClassOutput{}, err
	}

	c, err := d.NewBlankClass(input.Name)
	if err != nil {
		return nil, NewClassOutput{}, err
	}
	output := NewClassOutput{ID: c.ID, Index: len(d.Classes) - 1}

	if err := s.recorder.Commit(d, "new-class", c.Name); err != nil {
		return nil, NewClassOutput{}, err
	}
	return textResult(fmt.Sprintf("Class %q added as column %d", input.Name, output.Index)), output, nil
}

func (s *Server) handleRenameClass(ctx context.Context, req *mcp.CallToolRequest, input RenameClassInput) (*mcp.CallToolResult, RenameClassOutput, error) {
	d, err := s.store.Load()
	if err != nil {
		return nil, RenameClassOutput{}, err
	}

	n, err := d.Rename(input.From, input.Into)
	if err != nil {
		return nil, RenameClassOutput{}, err
	}
	if n > 0 {
		if err := s.recorder.Commit(d, "rename", fmt.Sprintf("%s -> %s", input.From, input.Into)); err != nil {
			return nil, RenameClassOutput{}, err
		}
	}

	return textResult(fmt.Sprintf("Renamed %d class(es)", n)), RenameClassOutput{Renamed: n}, nil
}

// rowIndex finds the row holding timestamp at.
func rowIndex(d *grid.Data, at time.Time) int {
	for y := d.Rows() - 1; y >= 0; y-- {
		if ts, _ := d.RowTime(y); ts.Equal(at) {
			return y
		}
	}
	return -1
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}
