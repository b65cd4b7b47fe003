// Package storage provides SQLite-based persistence for engine run
// records. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for run persistence.
type Store struct {
	db *sql.DB
}

// RunRecord captures one engine run: which effect ran, under what
// settings, and what throughput it achieved.
type RunRecord struct {
	ID        string
	EffectID  string
	Mode      string
	TargetFPS int
	Frames    int64
	Skipped   int64
	AvgFPS    float64
	Duration  float64 // seconds of wall time
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			effect_id TEXT NOT NULL,
			mode TEXT NOT NULL,
			target_fps INTEGER NOT NULL,
			frames INTEGER NOT NULL,
			skipped INTEGER NOT NULL DEFAULT 0,
			avg_fps REAL NOT NULL,
			duration_secs REAL NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_effect ON runs(effect_id);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(effect_id, avg_fps DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a completed engine run. A fresh UUID is assigned when
// the record carries none. Returns the ID of the inserted record.
func (s *Store) SaveRun(rec RunRecord) (string, error) {
	id := rec.ID
	if id == "" {
		id = uuid.NewString()
	}

	_, err := s.db.Exec(
		`INSERT INTO runs (id, effect_id, mode, target_fps, frames, skipped, avg_fps, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, rec.EffectID, rec.Mode, rec.TargetFPS, rec.Frames, rec.Skipped, rec.AvgFPS, rec.Duration,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}

	return id, nil
}

// RecentRuns retrieves the most recent runs across all effects.
func (s *Store) RecentRuns(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	// CURRENT_TIMESTAMP has one-second resolution, so rowid breaks
	// ties between runs saved in the same second.
	rows, err := s.db.Query(
		`SELECT id, effect_id, mode, target_fps, frames, skipped, avg_fps, duration_secs, created_at
		 FROM runs
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	return collectRuns(rows)
}

// TopRuns retrieves the best runs for the given effect, ordered by
// average FPS descending.
func (s *Store) TopRuns(effectID string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, effect_id, mode, target_fps, frames, skipped, avg_fps, duration_secs, created_at
		 FROM runs
		 WHERE effect_id = ?
		 ORDER BY avg_fps DESC
		 LIMIT ?`,
		effectID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	return collectRuns(rows)
}

// collectRuns drains a result set of run rows.
func collectRuns(rows *sql.Rows) ([]RunRecord, error) {
	var records []RunRecord
	for rows.Next() {
		var rec RunRecord
		var createdAt any
		if err := rows.Scan(
			&rec.ID, &rec.EffectID, &rec.Mode, &rec.TargetFPS,
			&rec.Frames, &rec.Skipped, &rec.AvgFPS, &rec.Duration, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		rec.CreatedAt = parseTimestamp(createdAt)
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// parseTimestamp converts a scanned created_at value. The driver hands
// DATETIME columns back as time.Time or string depending on how the
// value was written.
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// ClearRuns deletes all runs for the given effect.
func (s *Store) ClearRuns(effectID string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE effect_id = ?", effectID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// Summary contains aggregated statistics for one effect.
type Summary struct {
	EffectID string
	Runs     int
	BestFPS  float64
	AvgFPS   float64
	Seconds  float64
	LastRun  time.Time
}

// EffectSummary retrieves aggregated statistics for a specific effect.
func (s *Store) EffectSummary(effectID string) (*Summary, error) {
	sum := &Summary{EffectID: effectID}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(avg_fps), 0), COALESCE(AVG(avg_fps), 0), COALESCE(SUM(duration_secs), 0)
		 FROM runs WHERE effect_id = ?`,
		effectID,
	).Scan(&sum.Runs, &sum.BestFPS, &sum.AvgFPS, &sum.Seconds)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get effect summary: %w", err)
	}

	var lastRun any
	err = s.db.QueryRow(
		`SELECT created_at FROM runs WHERE effect_id = ? ORDER BY created_at DESC LIMIT 1`,
		effectID,
	).Scan(&lastRun)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("storage: cannot get last run: %w", err)
	}
	if err == nil {
		sum.LastRun = parseTimestamp(lastRun)
	}

	return sum, nil
}

// AllSummaries retrieves statistics for every effect that has runs.
func (s *Store) AllSummaries() (map[string]*Summary, error) {
	rows, err := s.db.Query(
		`SELECT effect_id, COUNT(*), MAX(avg_fps), AVG(avg_fps), SUM(duration_secs), MAX(created_at)
		 FROM runs
		 GROUP BY effect_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get summaries: %w", err)
	}
	defer rows.Close()

	summaries := make(map[string]*Summary)
	for rows.Next() {
		var sum Summary
		var lastRun any
		if err := rows.Scan(&sum.EffectID, &sum.Runs, &sum.BestFPS, &sum.AvgFPS, &sum.Seconds, &lastRun); err != nil {
			return nil, fmt.Errorf("storage: cannot scan summary row: %w", err)
		}
		sum.LastRun = parseTimestamp(lastRun)
		summaries[sum.EffectID] = &sum
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return summaries, nil
}
