// Package cmd provides the command-line interface for axilite. It can run
// randomized stress traffic against a memory slave and convert command
// batches to and from per-cycle signal maps.
package cmd

import (
	"os"

	chlog "github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var verbose bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "axilite",
	Short: "axilite drives AXI4-Lite designs at command level",
	Long: `axilite drives AXI4-Lite designs at command level. It can stress ` +
		`a simulated memory slave with randomized traffic and convert ` +
		`command batches to and from flat per-cycle signal maps.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		// A .env file is optional; flags win over the environment.
		_ = godotenv.Load()

		if verbose {
			chlog.SetLevel(chlog.DebugLevel)
		}
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"enable verbose logging")
}
