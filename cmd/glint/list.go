package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LaMitaOne/glint/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available effects",
	Long:  `Shows a list of all effects registered with the platform.`,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	effects := registry.List()

	if len(effects) == 0 {
		fmt.Println("No effects available.")
		return nil
	}

	fmt.Println("Available effects:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, e := range effects {
		if len(e.ID) > maxIDLen {
			maxIDLen = len(e.ID)
		}
	}

	// Print header
	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")

	// Print effects
	for _, e := range effects {
		fmt.Printf("  %-*s  %s\n", maxIDLen, e.ID, e.Title)
	}

	fmt.Println()
	fmt.Println("Run 'glint run <id>' to watch an effect.")
	return nil
}
