// ABOUTME: Export command for snapshots of the grid
// ABOUTME: Writes JSON or CSV to stdout or a file, and SQLite to a database file
package cli

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harper/tally/internal/export"
)

var (
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the grid as JSON, CSV, or SQLite",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format := strings.ToLower(exportFormat)
		if !slices.Contains(export.Formats, format) {
			return fmt.Errorf("unknown format %q (want one of %s)", exportFormat, strings.Join(export.Formats, ", "))
		}
		if format == "sqlite" && exportOut == "" {
			return fmt.Errorf("--out is required for sqlite export")
		}

		s, err := openSession()
		if err != nil {
			return err
		}

		if format == "sqlite" {
			if err := export.SQLite(cmd.Context(), exportOut, s.data); err != nil {
				return fmt.Errorf("failed to export: %w", err)
			}
			success(cmd, "Exported %d classes to %s", len(s.data.Classes), exportOut)
			return nil
		}

		var w io.Writer = cmd.OutOrStdout()
		if exportOut != "" {
			f, err := os.Create(exportOut)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", exportOut, err)
			}
			defer func() {
				if closeErr := f.Close(); closeErr != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "Warning: failed to close %s: %v\n", exportOut, closeErr)
				}
			}()
			w = f
		}

		switch format {
		case "json":
			err = export.JSON(w, s.data)
		case "csv":
			err = export.CSV(w, s.data)
		}
		if err != nil {
			return fmt.Errorf("failed to export: %w", err)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "Output format: json, csv, or sqlite")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file (required for sqlite; default stdout)")
	rootCmd.AddCommand(exportCmd)
}
