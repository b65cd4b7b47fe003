package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAssignsID(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	id, err := store.SaveRun(RunRecord{EffectID: "plasma", Mode: "buffered", TargetFPS: 60, Frames: 120, AvgFPS: 59.2, Duration: 2.0})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if id == "" {
		t.Error("SaveRun() should assign an ID when the record has none")
	}

	// A caller-provided ID is kept.
	id2, err := store.SaveRun(RunRecord{ID: "fixed-id", EffectID: "plasma", Mode: "buffered", TargetFPS: 60, Frames: 60, AvgFPS: 58.0, Duration: 1.0})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if id2 != "fixed-id" {
		t.Errorf("SaveRun() returned %q, expected fixed-id", id2)
	}
}

func TestStoreRecentRunsOrdering(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	for _, effect := range []string{"bounce", "plasma", "starfield"} {
		_, err := store.SaveRun(RunRecord{EffectID: effect, Mode: "buffered", TargetFPS: 60, Frames: 60, AvgFPS: 60, Duration: 1.0})
		if err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	runs, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}

	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(runs))
	}

	// Most recent first
	if runs[0].EffectID != "starfield" {
		t.Errorf("Expected most recent run to be starfield, got %s", runs[0].EffectID)
	}
	if runs[2].EffectID != "bounce" {
		t.Errorf("Expected oldest run to be bounce, got %s", runs[2].EffectID)
	}
}

func TestStoreTopRuns(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	for _, fps := range []float64{30.5, 59.8, 45.1} {
		_, err := store.SaveRun(RunRecord{EffectID: "bounce", Mode: "buffered", TargetFPS: 60, Frames: 100, AvgFPS: fps, Duration: 2.0})
		if err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	// Different effect
	_, err = store.SaveRun(RunRecord{EffectID: "plasma", Mode: "direct", TargetFPS: 60, Frames: 100, AvgFPS: 99.0, Duration: 1.0})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	runs, err := store.TopRuns("bounce", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}

	if len(runs) != 3 {
		t.Fatalf("Expected 3 bounce runs, got %d", len(runs))
	}

	// Sorted by average FPS descending
	if runs[0].AvgFPS != 59.8 {
		t.Errorf("Expected best run at 59.8 fps, got %v", runs[0].AvgFPS)
	}
	if runs[1].AvgFPS != 45.1 {
		t.Errorf("Expected second run at 45.1 fps, got %v", runs[1].AvgFPS)
	}
	if runs[2].AvgFPS != 30.5 {
		t.Errorf("Expected third run at 30.5 fps, got %v", runs[2].AvgFPS)
	}
}

func TestStoreTopRunsLimit(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	for i := 0; i < 5; i++ {
		store.SaveRun(RunRecord{EffectID: "plasma", Mode: "buffered", TargetFPS: 60, Frames: 60, AvgFPS: float64((i + 1) * 10), Duration: 1.0})
	}

	runs, err := store.TopRuns("plasma", 3)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}

	if len(runs) != 3 {
		t.Errorf("Expected 3 runs with limit, got %d", len(runs))
	}

	if runs[0].AvgFPS != 50 || runs[1].AvgFPS != 40 || runs[2].AvgFPS != 30 {
		t.Errorf("Runs not in expected order: %v", runs)
	}
}

func TestStoreEffectSummary(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// No runs yet
	sum, err := store.EffectSummary("bounce")
	if err != nil {
		t.Fatalf("EffectSummary() failed: %v", err)
	}
	if sum.Runs != 0 {
		t.Errorf("Expected 0 runs for empty effect, got %d", sum.Runs)
	}
	if sum.BestFPS != 0 {
		t.Errorf("Expected best FPS of 0 for empty effect, got %v", sum.BestFPS)
	}

	store.SaveRun(RunRecord{EffectID: "bounce", Mode: "buffered", TargetFPS: 60, Frames: 120, AvgFPS: 40, Duration: 3.0})
	store.SaveRun(RunRecord{EffectID: "bounce", Mode: "buffered", TargetFPS: 60, Frames: 240, AvgFPS: 60, Duration: 4.0})

	sum, err = store.EffectSummary("bounce")
	if err != nil {
		t.Fatalf("EffectSummary() failed: %v", err)
	}

	if sum.Runs != 2 {
		t.Errorf("Expected 2 runs, got %d", sum.Runs)
	}
	if sum.BestFPS != 60 {
		t.Errorf("Expected best FPS of 60, got %v", sum.BestFPS)
	}
	if sum.AvgFPS != 50 {
		t.Errorf("Expected average FPS of 50, got %v", sum.AvgFPS)
	}
	if sum.Seconds != 7.0 {
		t.Errorf("Expected 7 total seconds, got %v", sum.Seconds)
	}
	if sum.LastRun.IsZero() {
		t.Error("Expected LastRun to be set")
	}
}

func TestStoreAllSummaries(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	store.SaveRun(RunRecord{EffectID: "bounce", Mode: "buffered", TargetFPS: 60, Frames: 60, AvgFPS: 30, Duration: 2.0})
	store.SaveRun(RunRecord{EffectID: "plasma", Mode: "direct", TargetFPS: 60, Frames: 60, AvgFPS: 55, Duration: 1.0})

	summaries, err := store.AllSummaries()
	if err != nil {
		t.Fatalf("AllSummaries() failed: %v", err)
	}

	if len(summaries) != 2 {
		t.Fatalf("Expected 2 summaries, got %d", len(summaries))
	}
	if summaries["bounce"] == nil || summaries["bounce"].Runs != 1 {
		t.Errorf("Unexpected bounce summary: %+v", summaries["bounce"])
	}
	if summaries["plasma"] == nil || summaries["plasma"].BestFPS != 55 {
		t.Errorf("Unexpected plasma summary: %+v", summaries["plasma"])
	}
}

func TestStoreClearRuns(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	store.SaveRun(RunRecord{EffectID: "bounce", Mode: "buffered", TargetFPS: 60, Frames: 60, AvgFPS: 30, Duration: 1.0})
	store.SaveRun(RunRecord{EffectID: "bounce", Mode: "buffered", TargetFPS: 60, Frames: 60, AvgFPS: 35, Duration: 1.0})
	store.SaveRun(RunRecord{EffectID: "plasma", Mode: "buffered", TargetFPS: 60, Frames: 60, AvgFPS: 55, Duration: 1.0})

	// Clear only bounce runs
	err = store.ClearRuns("bounce")
	if err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	// Bounce should be empty
	bounceRuns, _ := store.TopRuns("bounce", 10)
	if len(bounceRuns) != 0 {
		t.Errorf("Expected 0 bounce runs after clear, got %d", len(bounceRuns))
	}

	// Plasma should still have runs
	plasmaRuns, _ := store.TopRuns("plasma", 10)
	if len(plasmaRuns) != 1 {
		t.Errorf("Plasma runs should not be affected by clearing bounce")
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
