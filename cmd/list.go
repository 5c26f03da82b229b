package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"stagehand/core"
	"stagehand/scenario"
	"stagehand/sourcegen"
)

func newSourcesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sources",
		Short: "List available data sources",
		RunE: func(cmd *cobra.Command, args []string) error {
			generators := sourcegen.All()
			if outputJSON {
				type entry struct {
					ID     core.SourceID `json:"id"`
					File   string        `json:"file"`
					Format string        `json:"format"`
				}
				var out []entry
				for _, id := range core.AllSources() {
					g := generators[id]
					out = append(out, entry{ID: id, File: g.Filename(), Format: string(g.Format())})
				}
				return json.NewEncoder(os.Stdout).Encode(out)
			}

			headerColor.Println("Available sources")
			for _, id := range core.AllSources() {
				g := generators[id]
				fmt.Printf("  %-14s %-20s %s\n", id, g.Filename(), g.Format())
			}
			return nil
		},
	}
}

func newScenariosCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scenarios",
		Short: "List registered scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := scenario.BuiltinRegistry()
			if err != nil {
				return err
			}
			defs := registry.Definitions()
			if outputJSON {
				return json.NewEncoder(os.Stdout).Encode(defs)
			}

			headerColor.Println("Registered scenarios")
			for _, d := range defs {
				state := successColor.Sprint("enabled")
				if !d.Enabled {
					state = warningColor.Sprint("disabled")
				}
				fmt.Printf("  %-20s %-8s days %2d-%-2d  %s  [%s]\n",
					d.Name, d.Category, d.StartDay, d.EndDay, state, d.CorrelationTag)
				fmt.Printf("    %s\n", d.Title)
				fmt.Printf("    sources: %v\n", d.Sources)
			}
			return nil
		},
	}
}
