// ABOUTME: Root command definition and CLI setup
// ABOUTME: Handles global flags, .env loading, and logger initialization
package cli

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/harper/tally/internal/logging"
)

var (
	dataFile string
	verbose  bool
	debug    bool
)

var rootCmd = &cobra.Command{
	Use:   "tally",
	Short: "Habit score tracker",
	Long: `Tally keeps a grid of scores, one column per habit and one row per day,
in a human-readable TOML file and prints it as a table.

Running tally with no command displays the grid.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// .env is optional
		_ = godotenv.Load()
		logging.Setup(cmd.ErrOrStderr(), debug || os.Getenv("TALLY_DEBUG") == "1")
	},
	RunE: runDisplay,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&dataFile, "file", "f", "", "Data file (default: project .tally, config, or XDG data dir)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show class names and row dates instead of indices")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Log diagnostics to stderr")
}
