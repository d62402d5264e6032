// Package storage provides SQLite-based persistence for game state, best
// scores and autoplay run history.
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

// DefaultProfile is used when no player name is given.
const DefaultProfile = "local"

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Run represents one finished game played by a strategy.
type Run struct {
	ID        string
	Profile   string
	Strategy  string
	Score     int
	MaxTile   int
	Moves     int
	Won       bool
	Duration  time.Duration
	Seed      int64
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
		CREATE TABLE IF NOT EXISTS game_states (
			profile TEXT PRIMARY KEY,
			snapshot TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS best_scores (
			profile TEXT PRIMARY KEY,
			score INTEGER NOT NULL DEFAULT 0,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			profile TEXT NOT NULL,
			strategy TEXT NOT NULL,
			score INTEGER NOT NULL,
			max_tile INTEGER NOT NULL,
			moves INTEGER NOT NULL,
			won INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			seed INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_strategy ON runs(strategy);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(strategy, score DESC);
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

// SaveRun records a finished run and returns its generated ID.
func (s *Store) SaveRun(run Run) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.Profile == "" {
		run.Profile = DefaultProfile
	}

	_, err := s.db.Exec(
		`INSERT INTO runs (id, profile, strategy, score, max_tile, moves, won, duration_ms, seed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Profile, run.Strategy, run.Score, run.MaxTile, run.Moves,
		run.Won, run.Duration.Milliseconds(), run.Seed,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}
	return run.ID, nil
}

// TopRuns retrieves the top N runs, ordered by score descending.
// An empty strategy matches every strategy.
func (s *Store) TopRuns(strategy string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, profile, strategy, score, max_tile, moves, won, duration_ms, seed, created_at
		 FROM runs
		 WHERE ? = '' OR strategy = ?
		 ORDER BY score DESC
		 LIMIT ?`,
		strategy, strategy, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var durationMS int64
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Profile, &r.Strategy, &r.Score, &r.MaxTile, &r.Moves,
			&r.Won, &durationMS, &r.Seed, &createdAt); err != nil {
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

// ClearRuns deletes the run history of a strategy, or all runs when strategy is empty.
func (s *Store) ClearRuns(strategy string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE ? = '' OR strategy = ?", strategy, strategy)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// StrategyStats contains aggregated run statistics for a strategy.
type StrategyStats struct {
	Strategy  string
	Runs      int
	Wins      int
	HighScore int
	AvgScore  float64
	BestTile  int
	LastRun   time.Time
}

// WinRate returns the fraction of runs that reached the target.
func (st StrategyStats) WinRate() float64 {
	if st.Runs == 0 {
		return 0
	}
	return float64(st.Wins) / float64(st.Runs)
}

// AllStrategyStats retrieves statistics for every strategy with recorded runs.
func (s *Store) AllStrategyStats() (map[string]*StrategyStats, error) {
	rows, err := s.db.Query(
		`SELECT strategy, COUNT(*), SUM(won), MAX(score), AVG(score), MAX(max_tile), MAX(created_at)
		 FROM runs
		 GROUP BY strategy`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get strategy stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*StrategyStats)
	for rows.Next() {
		var st StrategyStats
		var lastRun any
		if err := rows.Scan(&st.Strategy, &st.Runs, &st.Wins, &st.HighScore, &st.AvgScore, &st.BestTile, &lastRun); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastRun = parseTime(lastRun)
		stats[st.Strategy] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// Profile returns the per-player game state store.
func (s *Store) Profile(name string) *Profile {
	if name == "" {
		name = DefaultProfile
	}
	return &Profile{db: s.db, name: name}
}

// parseTime handles both time.Time and string datetime columns.
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

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
