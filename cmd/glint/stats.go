package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/LaMitaOne/glint/internal/platform/tui"
	"github.com/LaMitaOne/glint/internal/registry"
	"github.com/LaMitaOne/glint/internal/storage"
)

var (
	flagStatsBrowse bool
	flagStatsClear  bool
	flagStatsLimit  int
)

var statsCmd = &cobra.Command{
	Use:   "stats [effect]",
	Short: "Show recorded run statistics",
	Long: `Display recorded engine runs.

Without arguments, shows the most recent runs across all effects plus a
per-effect summary. With an effect ID, shows that effect's best runs by
average FPS.

Examples:
  glint stats
  glint stats plasma
  glint stats plasma --limit 25
  glint stats --browse
  glint stats bounce --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&flagStatsBrowse, "browse", false, "Open the interactive stats browser")
	statsCmd.Flags().BoolVar(&flagStatsClear, "clear", false, "Delete all recorded runs for the given effect")
	statsCmd.Flags().IntVar(&flagStatsLimit, "limit", 10, "Maximum number of runs to show")
}

func runStats(cmd *cobra.Command, args []string) error {
	effectID := ""
	if len(args) == 1 {
		effectID = args[0]
		if !registry.Exists(effectID) {
			return fmt.Errorf("unknown effect %q (run 'glint list' to see available effects)", effectID)
		}
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening runs database: %w", err)
	}
	defer store.Close()

	if flagStatsClear {
		if effectID == "" {
			return fmt.Errorf("--clear requires an effect ID")
		}
		if err := store.ClearRuns(effectID); err != nil {
			return err
		}
		fmt.Printf("Cleared all recorded runs for %q.\n", effectID)
		return nil
	}

	if flagStatsBrowse {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		_, browseErr := tui.RunStats(store, width, height)
		return browseErr
	}

	if effectID != "" {
		return printEffectStats(store, effectID)
	}
	return printRecentStats(store)
}

// printEffectStats shows one effect's best runs plus aggregate numbers.
func printEffectStats(store *storage.Store, effectID string) error {
	effect, err := registry.Create(effectID)
	if err != nil {
		return err
	}

	runs, err := store.TopRuns(effectID, flagStatsLimit)
	if err != nil {
		return err
	}

	fmt.Printf("Run Stats - %s\n", effect.Title())
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Run 'glint run %s' to record the first one!\n", effectID)
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-8s  %-8s  %-8s  %-7s  %s\n", "Rank", "Avg FPS", "Mode", "Frames", "Time", "Date")
	fmt.Printf("  %-4s  %-8s  %-8s  %-8s  %-7s  %s\n", "----", "-------", "----", "------", "----", "----")

	// Print runs
	for i, run := range runs {
		dateStr := run.CreatedAt.Format("2006-01-02 15:04")
		timeStr := fmt.Sprintf("%.1fs", run.Duration)
		fmt.Printf("  %-4d  %-8.1f  %-8s  %-8d  %-7s  %s\n",
			i+1, run.AvgFPS, run.Mode, run.Frames, timeStr, dateStr)
	}

	sum, err := store.EffectSummary(effectID)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("Total: %d runs, %.1fs rendered, best %.1f fps\n",
		sum.Runs, sum.Seconds, sum.BestFPS)
	return nil
}

// printRecentStats shows the latest runs across all effects plus a
// per-effect summary table.
func printRecentStats(store *storage.Store) error {
	runs, err := store.RecentRuns(flagStatsLimit)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Run 'glint run <id>' to record the first one!")
		return nil
	}

	fmt.Println("Recent runs:")
	fmt.Println()
	fmt.Printf("  %-12s  %-8s  %-8s  %-8s  %-7s  %s\n", "Effect", "Avg FPS", "Mode", "Frames", "Time", "Date")
	fmt.Printf("  %-12s  %-8s  %-8s  %-8s  %-7s  %s\n", "------", "-------", "----", "------", "----", "----")
	for _, run := range runs {
		dateStr := run.CreatedAt.Format("2006-01-02 15:04")
		timeStr := fmt.Sprintf("%.1fs", run.Duration)
		fmt.Printf("  %-12s  %-8.1f  %-8s  %-8d  %-7s  %s\n",
			run.EffectID, run.AvgFPS, run.Mode, run.Frames, timeStr, dateStr)
	}

	summaries, err := store.AllSummaries()
	if err != nil {
		return err
	}
	if len(summaries) == 0 {
		return nil
	}

	ids := make([]string, 0, len(summaries))
	for id := range summaries {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Println()
	fmt.Println("Per effect:")
	fmt.Println()
	fmt.Printf("  %-12s  %-5s  %-9s  %-9s  %s\n", "Effect", "Runs", "Best FPS", "Avg FPS", "Last run")
	fmt.Printf("  %-12s  %-5s  %-9s  %-9s  %s\n", "------", "----", "--------", "-------", "--------")
	for _, id := range ids {
		sum := summaries[id]
		fmt.Printf("  %-12s  %-5d  %-9.1f  %-9.1f  %s\n",
			id, sum.Runs, sum.BestFPS, sum.AvgFPS, sum.LastRun.Format("2006-01-02 15:04"))
	}
	return nil
}
