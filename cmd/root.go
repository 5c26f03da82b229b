// Package cmd provides the stagehand command-line interface.
package cmd

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// CLI output formatters
var (
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow)
	headerColor  = color.New(color.FgBlue, color.Bold)
)

// Global flags
var (
	configFile string
	outputJSON bool
	noColor    bool
	quiet      bool
)

// NewRootCmd builds the stagehand command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "stagehand",
		Short: "Synthesize scenario-correlated demo log data",
		Long: `stagehand generates multi-day, multi-source log data for the fictitious
company Tealstone Robotics and writes one flat file per source, ready for
loading into a search platform for demos and training. Declarative scenarios
inject causally ordered incidents across sources, correlated by demo_id.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				color.NoColor = true
			}
		},
	}

	root.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to run configuration file (YAML)")
	root.PersistentFlags().BoolVar(&outputJSON, "json", false, "Emit machine-readable JSON output")
	root.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	root.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Only log warnings and errors")

	root.AddCommand(newRunCmd())
	root.AddCommand(newSourcesCmd())
	root.AddCommand(newScenariosCmd())
	return root
}
