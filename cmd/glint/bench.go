package main

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"

	"github.com/LaMitaOne/glint/internal/engine"
	"github.com/LaMitaOne/glint/internal/registry"
	"github.com/LaMitaOne/glint/internal/storage"
)

var (
	flagBenchDuration time.Duration
	flagBenchWidth    int
	flagBenchHeight   int
	flagBenchMode     string
	flagBenchNoSave   bool
)

var benchCmd = &cobra.Command{
	Use:   "bench <effect>",
	Short: "Benchmark an effect without a terminal",
	Long: `Run an effect's engine headlessly for a fixed duration and report
the achieved throughput.

The engine runs exactly as it does under the viewer, minus the paint
step: frames land in the hand-off slot and repaint requests go to a
null host. The result is saved to the runs database unless --no-save
is given.

Examples:
  glint bench plasma
  glint bench starfield --duration 10s
  glint bench bounce --width 320 --height 180 --mode direct`,
	Args: cobra.ExactArgs(1),
	RunE: runBench,
}

func init() {
	benchCmd.Flags().DurationVar(&flagBenchDuration, "duration", 5*time.Second, "How long to run the engine")
	benchCmd.Flags().IntVar(&flagBenchWidth, "width", 160, "Canvas width in pixels")
	benchCmd.Flags().IntVar(&flagBenchHeight, "height", 96, "Canvas height in pixels")
	benchCmd.Flags().StringVar(&flagBenchMode, "mode", "", "Buffer handoff mode: buffered or direct (default: config value)")
	benchCmd.Flags().BoolVar(&flagBenchNoSave, "no-save", false, "Do not record this run in the database")
}

// benchHost is a null engine host: fixed bounds, nobody to repaint.
type benchHost struct {
	width, height int
	invalidations atomic.Uint64
}

func (h *benchHost) Bounds() (int, int) { return h.width, h.height }
func (h *benchHost) Invalidate()        { h.invalidations.Add(1) }

var _ engine.Host = (*benchHost)(nil)

func runBench(cmd *cobra.Command, args []string) error {
	effectID := args[0]

	if !registry.Exists(effectID) {
		return fmt.Errorf("unknown effect %q (run 'glint list' to see available effects)", effectID)
	}
	if flagBenchDuration <= 0 {
		return fmt.Errorf("duration must be positive, got %v", flagBenchDuration)
	}
	if flagBenchWidth <= 0 || flagBenchHeight <= 0 {
		return fmt.Errorf("canvas size must be positive, got %dx%d", flagBenchWidth, flagBenchHeight)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagBenchMode != "" {
		cfg.Engine.Mode = flagBenchMode
	}
	applyEffectConfigs(cfg)
	logger := newLogger(cfg)

	effect, err := registry.Create(effectID)
	if err != nil {
		return err
	}

	host := &benchHost{width: flagBenchWidth, height: flagBenchHeight}
	eng := engine.New(host, effect, engineOptions(cfg, logger))

	fmt.Printf("Benchmarking %s for %v (%dx%d, %s mode, target %s)...\n",
		effect.Title(), flagBenchDuration, flagBenchWidth, flagBenchHeight,
		eng.Mode(), fpsLabel(cfg.Engine.FPS))

	eng.SetActive(true)
	time.Sleep(flagBenchDuration)
	eng.Close()

	stats := eng.Stats()
	fmt.Println()
	fmt.Printf("  Frames:       %d\n", stats.Frames)
	fmt.Printf("  Skipped:      %d\n", stats.Skipped)
	fmt.Printf("  Invalidates:  %d\n", host.invalidations.Load())
	fmt.Printf("  Wall time:    %.2fs\n", stats.Wall.Seconds())
	fmt.Printf("  Average FPS:  %.1f\n", stats.AvgFPS)

	if flagBenchNoSave {
		return nil
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open runs database", "err", err)
		return nil
	}
	defer store.Close()

	id, err := store.SaveRun(storage.RunRecord{
		EffectID:  effectID,
		Mode:      eng.Mode().String(),
		TargetFPS: cfg.Engine.FPS,
		Frames:    int64(stats.Frames),
		Skipped:   int64(stats.Skipped),
		AvgFPS:    stats.AvgFPS,
		Duration:  stats.Wall.Seconds(),
	})
	if err != nil {
		return fmt.Errorf("saving run: %w", err)
	}

	fmt.Println()
	fmt.Printf("Saved run %s. See it with 'glint stats %s'.\n", id, effectID)
	return nil
}

// fpsLabel names a target rate; zero means the engine default pace.
func fpsLabel(fps int) string {
	if fps <= 0 {
		return "default"
	}
	return fmt.Sprintf("%d fps", fps)
}
