// Package storage provides SQLite-based persistence for challenge progress
// and game-run history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
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

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// ProgressEntry is the running total for one challenge category.
type ProgressEntry struct {
	Category  string
	Amount    int
	UpdatedAt time.Time
}

// RunEntry is one finished game session.
type RunEntry struct {
	ID        int64
	RunID     string // UUID, assigned on save if empty
	Score     int
	Caught    int
	Misses    int
	BestCombo int
	Reason    string // "timeout", "miss-limit", "quit"
	Duration  time.Duration
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

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS challenge_progress (
			category TEXT PRIMARY KEY,
			amount INTEGER NOT NULL DEFAULT 0,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS game_runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			score INTEGER NOT NULL DEFAULT 0,
			caught INTEGER NOT NULL DEFAULT 0,
			misses INTEGER NOT NULL DEFAULT 0,
			best_combo INTEGER NOT NULL DEFAULT 0,
			reason TEXT NOT NULL,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_game_runs_top ON game_runs(score DESC);
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

// AddProgress adds amount to the running total for category.
func (s *Store) AddProgress(category string, amount int) error {
	if category == "" {
		return errors.New("storage: empty progress category")
	}
	_, err := s.db.Exec(
		`INSERT INTO challenge_progress (category, amount) VALUES (?, ?)
		 ON CONFLICT(category) DO UPDATE SET
		   amount = amount + excluded.amount,
		   updated_at = CURRENT_TIMESTAMP`,
		category, amount,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot add progress: %w", err)
	}
	return nil
}

// Progress returns the total for category, or 0 if nothing was recorded.
func (s *Store) Progress(category string) (int, error) {
	var amount int
	err := s.db.QueryRow(
		"SELECT amount FROM challenge_progress WHERE category = ?",
		category,
	).Scan(&amount)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query progress: %w", err)
	}
	return amount, nil
}

// AllProgress returns every category total, sorted by category.
func (s *Store) AllProgress() ([]ProgressEntry, error) {
	rows, err := s.db.Query(
		`SELECT category, amount, updated_at
		 FROM challenge_progress
		 ORDER BY category`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query progress: %w", err)
	}
	defer rows.Close()

	var entries []ProgressEntry
	for rows.Next() {
		var e ProgressEntry
		var updatedAt any
		if err := rows.Scan(&e.Category, &e.Amount, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.UpdatedAt = parseTime(updatedAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// ResetProgress deletes every progress total.
func (s *Store) ResetProgress() error {
	if _, err := s.db.Exec("DELETE FROM challenge_progress"); err != nil {
		return fmt.Errorf("storage: cannot reset progress: %w", err)
	}
	return nil
}

// SaveRun records a finished game session.
// Returns the run's UUID, generating one if the entry has none.
func (s *Store) SaveRun(run RunEntry) (string, error) {
	if run.RunID == "" {
		run.RunID = uuid.NewString()
	}

	_, err := s.db.Exec(
		`INSERT INTO game_runs
		 (run_id, score, caught, misses, best_combo, reason, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.RunID,
		run.Score,
		run.Caught,
		run.Misses,
		run.BestCombo,
		run.Reason,
		run.Duration.Milliseconds(),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}

	return run.RunID, nil
}

const runColumns = `id, run_id, score, caught, misses, best_combo, reason, duration_ms, created_at`

// TopRuns retrieves the best N runs by score.
func (s *Store) TopRuns(limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT `+runColumns+` FROM game_runs ORDER BY score DESC, id ASC LIMIT ?`,
		limit,
	)
}

// RecentRuns retrieves the most recent N runs.
func (s *Store) RecentRuns(limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(
		`SELECT `+runColumns+` FROM game_runs ORDER BY id DESC LIMIT ?`,
		limit,
	)
}

// RunByID retrieves a run by its UUID. Returns nil if not found.
func (s *Store) RunByID(runID string) (*RunEntry, error) {
	runs, err := s.queryRuns(
		`SELECT `+runColumns+` FROM game_runs WHERE run_id = ?`,
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

// HighScore returns the best score across all runs.
// Returns 0 if no runs exist.
func (s *Store) HighScore() (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow("SELECT MAX(score) FROM game_runs").Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearRuns deletes all run history.
func (s *Store) ClearRuns() error {
	if _, err := s.db.Exec("DELETE FROM game_runs"); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

func (s *Store) queryRuns(query string, args ...any) ([]RunEntry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunEntry
	for rows.Next() {
		var r RunEntry
		var durationMS int64
		var createdAt any
		if err := rows.Scan(
			&r.ID,
			&r.RunID,
			&r.Score,
			&r.Caught,
			&r.Misses,
			&r.BestCombo,
			&r.Reason,
			&durationMS,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Duration = time.Duration(durationMS) * time.Millisecond
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
