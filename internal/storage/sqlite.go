// Package storage provides SQLite-based persistence for the best time and
// the run history. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// BestTimeSlot is the record name holding the all-time best survival time.
const BestTimeSlot = "bestTime"

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Run is one completed session.
type Run struct {
	ID         int64
	RunID      string
	Difficulty string
	Elapsed    time.Duration
	NewRecord  bool
	CreatedAt  time.Time
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

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a completed session under a fresh run ID.
func (s *Store) SaveRun(difficulty string, elapsed time.Duration, newRecord bool) (Run, error) {
	run := Run{
		RunID:      uuid.NewString(),
		Difficulty: difficulty,
		Elapsed:    elapsed,
		NewRecord:  newRecord,
	}
	res, err := s.db.Exec(
		"INSERT INTO runs (run_id, difficulty, elapsed_ms, new_record) VALUES (?, ?, ?, ?)",
		run.RunID, difficulty, elapsed.Milliseconds(), newRecord,
	)
	if err != nil {
		return Run{}, fmt.Errorf("storage: cannot save run: %w", err)
	}

	run.ID, err = res.LastInsertId()
	if err != nil {
		return Run{}, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	run.CreatedAt = time.Now().UTC()
	return run, nil
}

// TopRuns retrieves the longest runs, longest first. An empty difficulty
// covers every difficulty.
func (s *Store) TopRuns(difficulty string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT id, run_id, difficulty, elapsed_ms, new_record, created_at
		 FROM runs
		 WHERE ? = '' OR difficulty = ?
		 ORDER BY elapsed_ms DESC, id ASC
		 LIMIT ?`,
		difficulty, difficulty, limit,
	)
}

// RecentRuns retrieves the latest runs, newest first.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(
		`SELECT id, run_id, difficulty, elapsed_ms, new_record, created_at
		 FROM runs
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
}

// RunByID retrieves a run by its run ID. It returns nil when there is none.
func (s *Store) RunByID(runID string) (*Run, error) {
	runs, err := s.queryRuns(
		`SELECT id, run_id, difficulty, elapsed_ms, new_record, created_at
		 FROM runs WHERE run_id = ?`,
		runID,
	)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return &runs[0], nil
}

func (s *Store) queryRuns(query string, args ...any) ([]Run, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var elapsedMs int64
		var createdAt any
		if err := rows.Scan(&r.ID, &r.RunID, &r.Difficulty, &elapsedMs, &r.NewRecord, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Elapsed = time.Duration(elapsedMs) * time.Millisecond
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// ClearRuns deletes the run history. The best time is kept.
func (s *Store) ClearRuns() error {
	if _, err := s.db.Exec("DELETE FROM runs"); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// BestTime reads a named duration record. ok is false when it has never
// been written.
func (s *Store) BestTime(name string) (d time.Duration, ok bool, err error) {
	var ms int64
	err = s.db.QueryRow("SELECT value FROM records WHERE name = ?", name).Scan(&ms)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("storage: cannot read record %q: %w", name, err)
	}
	return time.Duration(ms) * time.Millisecond, true, nil
}

// SetBestTime writes a named duration record and returns the value stored
// afterwards. An existing larger value is kept, so concurrent sessions
// sharing the database never lower it.
func (s *Store) SetBestTime(name string, d time.Duration) (time.Duration, error) {
	var ms int64
	err := s.db.QueryRow(
		`INSERT INTO records (name, value) VALUES (?, ?)
		 ON CONFLICT(name) DO UPDATE SET value = MAX(value, excluded.value), updated_at = CURRENT_TIMESTAMP
		 RETURNING value`,
		name, d.Milliseconds(),
	).Scan(&ms)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot write record %q: %w", name, err)
	}
	return time.Duration(ms) * time.Millisecond, nil
}

// RunStats contains aggregated statistics for one difficulty.
type RunStats struct {
	Difficulty string
	Runs       int
	Longest    time.Duration
	Average    time.Duration
	Total      time.Duration
	LastPlayed time.Time
}

// Stats retrieves aggregated statistics keyed by difficulty.
func (s *Store) Stats() (map[string]*RunStats, error) {
	rows, err := s.db.Query(
		`SELECT difficulty, COUNT(*), MAX(elapsed_ms), AVG(elapsed_ms), SUM(elapsed_ms), MAX(created_at)
		 FROM runs
		 GROUP BY difficulty`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get run stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*RunStats)
	for rows.Next() {
		var st RunStats
		var longest, total int64
		var avg float64
		var lastPlayed any
		if err := rows.Scan(&st.Difficulty, &st.Runs, &longest, &avg, &total, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.Longest = time.Duration(longest) * time.Millisecond
		st.Average = time.Duration(avg * float64(time.Millisecond))
		st.Total = time.Duration(total) * time.Millisecond
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.Difficulty] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

// parseTime handles the driver returning DATETIME as either time.Time or text.
func parseTime(v any) time.Time {
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
