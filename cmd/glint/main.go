// glint is a terminal canvas platform that renders animated effects on a
// background worker goroutine.
//
// Usage:
//
//	glint list               - List available effects
//	glint run <effect>       - Run an effect in the terminal
//	glint menu               - Start an interactive effect picker
//	glint stats [effect]     - Show recorded run statistics
//	glint serve              - Start SSH server for remote viewing
//	glint bench <effect>     - Benchmark an effect headlessly
//
// Global flags:
//
//	--config <path>      - Use a specific config file
//	--db <path>          - Set runs database path (default: ~/.glint/runs.db)
//	--fps <rate>         - Target frame rate (0 = use config)
//	--log-level <level>  - Log level: debug, info, warn, error
package main

import (
	"fmt"
	"image/color"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/LaMitaOne/glint/internal/canvas"
	"github.com/LaMitaOne/glint/internal/config"
	"github.com/LaMitaOne/glint/internal/effects/bounce"
	"github.com/LaMitaOne/glint/internal/effects/plasma"
	"github.com/LaMitaOne/glint/internal/effects/starfield"
	"github.com/LaMitaOne/glint/internal/engine"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagFPS      int
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "glint",
	Short: "Glint - Animated effects for your terminal",
	Long: `Glint renders pixel-style animated effects in the terminal. Each
effect is computed on a background worker at a steady frame rate and
painted with half-block characters.

Available commands:
  list     - Show all available effects
  run      - Run a specific effect directly
  menu     - Interactive effect picker menu
  stats    - View recorded run statistics
  serve    - Start SSH server for remote viewing
  bench    - Measure effect throughput without a terminal

Examples:
  glint list
  glint run plasma
  glint run bounce --mode direct --fps 30
  glint menu
  glint serve --port 2222
  glint bench starfield --duration 5s`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config file (default: ~/.glint/glint.yaml, then ./configs/glint.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to runs database (default: ~/.glint/runs.db)")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Target frame rate (0 = use config value)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (default: config value)")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(benchCmd)
}

// loadConfig resolves the layered configuration and lays the global flag
// overrides on top, so flags always win over config files.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}
	if flagDBPath != "" {
		cfg.DBPath = flagDBPath
	}
	if flagFPS > 0 {
		cfg.Engine.FPS = flagFPS
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}
	return cfg, nil
}

// applyEffectConfigs pushes per-effect config sections to the effect
// packages. Must run before any effect instance is created.
func applyEffectConfigs(cfg config.Config) {
	bounce.SetConfig(cfg.Effects.Bounce)
	plasma.SetConfig(cfg.Effects.Plasma)
	starfield.SetConfig(cfg.Effects.Starfield)
}

// newLogger builds the CLI logger at the configured level.
func newLogger(cfg config.Config) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "glint",
	})
	if lvl, err := log.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(lvl)
	}
	return logger
}

// engineOptions translates the engine config block into engine options.
func engineOptions(cfg config.Config, logger *log.Logger) engine.Options {
	clear, err := canvas.ParseHex(cfg.Engine.ClearColor)
	if err != nil {
		clear = color.RGBA{A: 255}
	}
	return engine.Options{
		Mode:       engine.ParseMode(cfg.Engine.Mode),
		TargetFPS:  cfg.Engine.FPS,
		Quality:    canvas.ParseQuality(cfg.Engine.Quality),
		ClearColor: clear,
		Logger:     logger,
	}
}
