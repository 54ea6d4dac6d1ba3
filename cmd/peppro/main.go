package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version info
var (
	version = "0.1.0"
	commit  = "dev"
	date    = "unknown"
)

// Global flags
var (
	noColor bool
	quiet   bool
	verbose bool
	debug   bool

	configPath string
)

// Root command
var rootCmd = &cobra.Command{
	Use:   "peppro",
	Short: "PRO-seq pipeline submission tool",
	Long: `peppro resolves sample sheets into fully-expanded invocations of the
PEPPRO PRO-seq pipeline script.

Each sample's declared attributes are combined with a refgenie genome asset
registry: explicit sample values always win, registry assets fill the gaps,
and anything unresolvable is omitted from the command rather than emitted
empty.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	Example: `  # Resolve every sample in a sheet to a shell command
  peppro resolve --sheet samples.csv

  # Validate a sheet without printing commands
  peppro check --sheet samples.csv

  # Inspect the genome asset registry
  peppro genomes

  # Start the API server
  peppro server --port 8080`,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-error output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Runner config file (default: auto-detect)")

	// Add commands to root
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(genomesCmd)
	rootCmd.AddCommand(samplesCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(configCmd)

	// Add subcommands to samples
	samplesCmd.AddCommand(samplesListCmd)
	samplesCmd.AddCommand(samplesIndexCmd)
	samplesCmd.AddCommand(samplesSearchCmd)

	// Add subcommands to runs
	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsShowCmd)

	// Add subcommands to config
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
