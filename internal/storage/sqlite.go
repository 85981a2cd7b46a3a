// Package storage provides SQLite-based persistence for completed runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
// It records run history only; episode progress is never saved.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Outcome is how a run ended.
type Outcome string

const (
	OutcomeFinished  Outcome = "finished"  // Door opened or boss defeated
	OutcomeAbandoned Outcome = "abandoned" // Quit before finishing
)

// Store manages the SQLite database connection for run records.
type Store struct {
	db *sql.DB
}

// Run is a single episode attempt.
type Run struct {
	ID         int64
	Episode    int
	EpisodeID  string
	Outcome    Outcome
	Duration   float64 // Simulated seconds
	Ticks      int64
	Tasks      int
	Deaths     int
	Seed       int64
	Difficulty string
	CreatedAt  time.Time
}

// EpisodeStats contains aggregated statistics for an episode.
type EpisodeStats struct {
	Episode    int
	Runs       int
	Finished   int
	BestTime   float64 // Fastest finished run, 0 if none
	AvgDeaths  float64
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
			episode INTEGER NOT NULL,
			episode_id TEXT NOT NULL,
			outcome TEXT NOT NULL,
			duration_secs REAL NOT NULL DEFAULT 0,
			ticks INTEGER NOT NULL DEFAULT 0,
			tasks INTEGER NOT NULL DEFAULT 0,
			deaths INTEGER NOT NULL DEFAULT 0,
			seed INTEGER NOT NULL DEFAULT 0,
			difficulty TEXT NOT NULL DEFAULT 'normal',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_episode ON runs(episode);
		CREATE INDEX IF NOT EXISTS idx_runs_best ON runs(episode, outcome, duration_secs);
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

// SaveRun records a run. Returns the ID of the inserted record.
func (s *Store) SaveRun(r Run) (int64, error) {
	if r.Outcome == "" {
		r.Outcome = OutcomeFinished
	}
	if r.Difficulty == "" {
		r.Difficulty = "normal"
	}
	result, err := s.db.Exec(
		`INSERT INTO runs
		 (episode, episode_id, outcome, duration_secs, ticks, tasks, deaths, seed, difficulty)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Episode, r.EpisodeID, string(r.Outcome), r.Duration, r.Ticks, r.Tasks, r.Deaths, r.Seed, r.Difficulty,
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

const runColumns = `id, episode, episode_id, outcome, duration_secs, ticks, tasks, deaths, seed, difficulty, created_at`

// RunByID retrieves a run by its ID. Returns nil if it does not exist.
func (s *Store) RunByID(id int64) (*Run, error) {
	row := s.db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return &r, nil
}

// BestRuns retrieves the fastest finished runs of an episode.
func (s *Store) BestRuns(episode, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE episode = ? AND outcome = ?
		 ORDER BY duration_secs ASC, deaths ASC
		 LIMIT ?`,
		episode, string(OutcomeFinished), limit,
	)
}

// RecentRuns retrieves the most recent runs. An episode of 0 means all episodes.
func (s *Store) RecentRuns(episode, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	if episode == 0 {
		return s.queryRuns(`SELECT `+runColumns+` FROM runs ORDER BY id DESC LIMIT ?`, limit)
	}
	return s.queryRuns(`SELECT `+runColumns+` FROM runs WHERE episode = ? ORDER BY id DESC LIMIT ?`, episode, limit)
}

// ClearRuns deletes all runs of an episode.
func (s *Store) ClearRuns(episode int) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE episode = ?", episode)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// GetEpisodeStats retrieves aggregated statistics for one episode.
func (s *Store) GetEpisodeStats(episode int) (*EpisodeStats, error) {
	stats := &EpisodeStats{Episode: episode}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END), 0),
		        COALESCE(MIN(CASE WHEN outcome = ? THEN duration_secs END), 0),
		        COALESCE(AVG(deaths), 0),
		        MAX(created_at)
		 FROM runs WHERE episode = ?`,
		string(OutcomeFinished), string(OutcomeFinished), episode,
	).Scan(&stats.Runs, &stats.Finished, &stats.BestTime, &stats.AvgDeaths, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get episode stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// GetAllEpisodeStats retrieves statistics for every episode that has runs.
func (s *Store) GetAllEpisodeStats() (map[int]*EpisodeStats, error) {
	rows, err := s.db.Query(
		`SELECT episode, COUNT(*),
		        SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END),
		        COALESCE(MIN(CASE WHEN outcome = ? THEN duration_secs END), 0),
		        AVG(deaths), MAX(created_at)
		 FROM runs
		 GROUP BY episode`,
		string(OutcomeFinished), string(OutcomeFinished),
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all episode stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[int]*EpisodeStats)
	for rows.Next() {
		var st EpisodeStats
		var lastPlayed any
		if err := rows.Scan(&st.Episode, &st.Runs, &st.Finished, &st.BestTime, &st.AvgDeaths, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.Episode] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

func (s *Store) queryRuns(query string, args ...any) ([]Run, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var r Run
	var outcome string
	var createdAt any
	err := sc.Scan(&r.ID, &r.Episode, &r.EpisodeID, &outcome, &r.Duration, &r.Ticks,
		&r.Tasks, &r.Deaths, &r.Seed, &r.Difficulty, &createdAt)
	if err != nil {
		return Run{}, err
	}
	r.Outcome = Outcome(outcome)
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
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
