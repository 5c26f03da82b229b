// Package main is the entry point for the stagehand demo data generator.
package main

import (
	"fmt"
	"os"

	"stagehand/cmd"
)

func main() {
	root := cmd.NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
