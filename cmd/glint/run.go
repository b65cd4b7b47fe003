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

var (
	flagRunMode    string
	flagRunQuality string
	flagRunNoSave  bool
)

var runCmd = &cobra.Command{
	Use:   "run <effect>",
	Short: "Run an effect",
	Long: `Run the specified effect full screen in the terminal.

Controls:
  Space      - Pause/Resume
  +/-        - Raise/Lower the target frame rate
  Q/Ctrl+C   - Quit

Modes:
  buffered - The worker renders complete frames off the UI goroutine
  direct   - The worker publishes snapshots; drawing happens at paint time

Examples:
  glint run plasma
  glint run bounce --fps 30
  glint run starfield --mode direct
  glint run plasma --quality low --no-save`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&flagRunMode, "mode", "", "Buffer handoff mode: buffered or direct (default: config value)")
	runCmd.Flags().StringVar(&flagRunQuality, "quality", "", "Scaling quality: low, medium, high (default: config value)")
	runCmd.Flags().BoolVar(&flagRunNoSave, "no-save", false, "Do not record this run in the database")
}

func runRun(cmd *cobra.Command, args []string) error {
	effectID := args[0]

	if !registry.Exists(effectID) {
		return fmt.Errorf("unknown effect %q (run 'glint list' to see available effects)", effectID)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagRunMode != "" {
		cfg.Engine.Mode = flagRunMode
	}
	if flagRunQuality != "" {
		cfg.Engine.Quality = flagRunQuality
	}
	applyEffectConfigs(cfg)
	logger := newLogger(cfg)

	effect, err := registry.Create(effectID)
	if err != nil {
		return err
	}

	// Initial bounds; the viewer tracks resizes from there.
	cols, rows := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		cols = w
		rows = h
	}

	var store *storage.Store
	if !flagRunNoSave {
		store, err = storage.Open(cfg.DBPath)
		if err != nil {
			logger.Warn("could not open runs database", "err", err)
			// Continue without storage - the viewer still works
			store = nil
		}
	}

	viewErr := tui.RunViewer(effect, tui.ViewerConfig{
		Cols:   cols,
		Rows:   rows,
		Engine: engineOptions(cfg, logger),
		Store:  store,
	})

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	return viewErr
}
