package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/LaMitaOne/glint/internal/platform/tui"
	"github.com/LaMitaOne/glint/internal/registry"
	"github.com/LaMitaOne/glint/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start glint with an effect picker menu",
	Long: `Start glint in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to run an effect.
When a viewer closes, you return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Run effect
  Tab          - Browse run statistics
  Q            - Quit

Examples:
  glint menu
  glint menu --fps 30
  glint menu --db ./runs.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyEffectConfigs(cfg)
	logger := newLogger(cfg)

	// Open run storage
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open runs database", "err", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	// Get terminal size
	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	opts := engineOptions(cfg, logger)

	// Menu loop
	for {
		// Show menu and get selection
		result, menuErr := tui.RunMenu(width, height)
		if menuErr != nil {
			return menuErr
		}

		// Carry size changes into the next screen
		width, height = result.Width, result.Height

		// Check if user quit
		if result.Quit {
			return nil
		}

		// Check if user wants the stats browser
		if result.WantsStats {
			goBack, statsErr := tui.RunStats(store, width, height)
			if statsErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", statsErr)
			}
			if goBack {
				continue // Back to menu
			}
			return nil // User quit from stats
		}

		if result.EffectID == "" {
			return nil
		}

		// Create effect instance
		effect, createErr := registry.Create(result.EffectID)
		if createErr != nil {
			fmt.Fprintf(os.Stderr, "Error creating effect: %v\n", createErr)
			continue
		}

		// Run the viewer; closing it returns to the menu
		if viewErr := tui.RunViewer(effect, tui.ViewerConfig{
			Cols:   width,
			Rows:   height,
			Engine: opts,
			Store:  store,
		}); viewErr != nil {
			fmt.Fprintf(os.Stderr, "Error running effect: %v\n", viewErr)
		}

		// Loop back to menu
	}
}
