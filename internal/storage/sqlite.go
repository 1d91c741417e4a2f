// Package storage provides SQLite-based persistence for finished runs and
// match outcomes. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies. The simulation itself never touches this package; only the
// platform records results after a match ends.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for result persistence.
type Store struct {
	db *sql.DB
}

// RunEntry is one human lane's survival time from a finished match.
type RunEntry struct {
	ID        int64
	ModeID    string
	Player    string
	Seconds   float64
	CreatedAt time.Time
}

// MatchLane is one lane's final standing inside a recorded match.
type MatchLane struct {
	Lane    int
	Player  string
	IsBot   bool
	Seconds float64
	Rank    int // 1 is the winner
}

// MatchRecord is the full ranked outcome of one finished match.
type MatchRecord struct {
	ID        int64
	MatchID   string
	ModeID    string
	Winner    string // Display name of the winning lane
	Duration  float64
	Lanes     []MatchLane
	CreatedAt time.Time
}

// ModeStats contains aggregated run statistics for one mode.
type ModeStats struct {
	ModeID     string
	RunCount   int
	BestTime   float64
	AvgTime    float64
	LastPlayed time.Time
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
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			mode_id TEXT NOT NULL,
			player TEXT NOT NULL,
			seconds REAL NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_mode_id ON runs(mode_id);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(mode_id, seconds DESC);

		CREATE TABLE IF NOT EXISTS matches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			match_id TEXT NOT NULL UNIQUE,
			mode_id TEXT NOT NULL,
			winner TEXT NOT NULL,
			duration_secs REAL NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_matches_mode_id ON matches(mode_id);

		CREATE TABLE IF NOT EXISTS match_lanes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			match_id TEXT NOT NULL,
			lane INTEGER NOT NULL,
			player TEXT NOT NULL,
			is_bot INTEGER NOT NULL DEFAULT 0,
			seconds REAL NOT NULL,
			rank INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_match_lanes_match ON match_lanes(match_id);
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

// SaveRun records one human lane's survival time.
// Returns the ID of the inserted record.
func (s *Store) SaveRun(modeID, player string, seconds float64) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO runs (mode_id, player, seconds) VALUES (?, ?, ?)",
		modeID, player, seconds,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopRuns retrieves the top N runs for the given mode, longest survival
// first.
func (s *Store) TopRuns(modeID string, limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, mode_id, player, seconds, created_at
		 FROM runs
		 WHERE mode_id = ?
		 ORDER BY seconds DESC
		 LIMIT ?`,
		modeID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var entries []RunEntry
	for rows.Next() {
		var e RunEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.ModeID, &e.Player, &e.Seconds, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// BestRun returns the longest survival time recorded for the given mode.
// Returns 0 if no runs exist.
func (s *Store) BestRun(modeID string) (float64, error) {
	var best sql.NullFloat64
	err := s.db.QueryRow(
		"SELECT MAX(seconds) FROM runs WHERE mode_id = ?",
		modeID,
	).Scan(&best)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best run: %w", err)
	}

	if !best.Valid {
		return 0, nil
	}

	return best.Float64, nil
}

// ClearRuns deletes all runs for the given mode.
func (s *Store) ClearRuns(modeID string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE mode_id = ?", modeID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// Stats retrieves aggregated run statistics for a specific mode.
func (s *Store) Stats(modeID string) (*ModeStats, error) {
	stats := &ModeStats{ModeID: modeID}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(seconds), 0), COALESCE(AVG(seconds), 0)
		 FROM runs WHERE mode_id = ?`,
		modeID,
	).Scan(&stats.RunCount, &stats.BestTime, &stats.AvgTime)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get mode stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM runs WHERE mode_id = ? ORDER BY created_at DESC LIMIT 1`,
		modeID,
	).Scan(&lastPlayed)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// SaveMatch records the full ranked outcome of a finished match: one row
// in matches plus one in match_lanes per lane, in a single transaction.
// Returns the ID of the inserted match row.
func (s *Store) SaveMatch(rec MatchRecord) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	result, err := tx.Exec(
		`INSERT INTO matches (match_id, mode_id, winner, duration_secs)
		 VALUES (?, ?, ?, ?)`,
		rec.MatchID, rec.ModeID, rec.Winner, rec.Duration,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save match: %w", err)
	}

	for _, lane := range rec.Lanes {
		if _, err := tx.Exec(
			`INSERT INTO match_lanes (match_id, lane, player, is_bot, seconds, rank)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			rec.MatchID, lane.Lane, lane.Player, lane.IsBot, lane.Seconds, lane.Rank,
		); err != nil {
			return 0, fmt.Errorf("storage: cannot save match lane: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit match: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// MatchByID retrieves a recorded match with its lanes. Returns nil if the
// match has not been recorded.
func (s *Store) MatchByID(matchID string) (*MatchRecord, error) {
	var rec MatchRecord
	var createdAt any

	err := s.db.QueryRow(
		`SELECT id, match_id, mode_id, winner, duration_secs, created_at
		 FROM matches
		 WHERE match_id = ?`,
		matchID,
	).Scan(&rec.ID, &rec.MatchID, &rec.ModeID, &rec.Winner, &rec.Duration, &createdAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query match: %w", err)
	}
	rec.CreatedAt = parseTime(createdAt)

	lanes, err := s.matchLanes(matchID)
	if err != nil {
		return nil, err
	}
	rec.Lanes = lanes

	return &rec, nil
}

// RecentMatches retrieves the most recently recorded matches, lanes
// included.
func (s *Store) RecentMatches(limit int) ([]MatchRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, match_id, mode_id, winner, duration_secs, created_at
		 FROM matches
		 ORDER BY created_at DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query matches: %w", err)
	}
	defer rows.Close()

	var records []MatchRecord
	for rows.Next() {
		var rec MatchRecord
		var createdAt any
		if err := rows.Scan(&rec.ID, &rec.MatchID, &rec.ModeID, &rec.Winner, &rec.Duration, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		rec.CreatedAt = parseTime(createdAt)
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	for i := range records {
		lanes, err := s.matchLanes(records[i].MatchID)
		if err != nil {
			return nil, err
		}
		records[i].Lanes = lanes
	}

	return records, nil
}

// matchLanes loads the per-lane standings of one match, best rank first.
func (s *Store) matchLanes(matchID string) ([]MatchLane, error) {
	rows, err := s.db.Query(
		`SELECT lane, player, is_bot, seconds, rank
		 FROM match_lanes
		 WHERE match_id = ?
		 ORDER BY rank ASC`,
		matchID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query match lanes: %w", err)
	}
	defer rows.Close()

	var lanes []MatchLane
	for rows.Next() {
		var lane MatchLane
		if err := rows.Scan(&lane.Lane, &lane.Player, &lane.IsBot, &lane.Seconds, &lane.Rank); err != nil {
			return nil, fmt.Errorf("storage: cannot scan lane row: %w", err)
		}
		lanes = append(lanes, lane)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return lanes, nil
}

// parseTime converts a scanned created_at column to a time.Time.
// The driver may hand back either a time.Time or a string.
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
