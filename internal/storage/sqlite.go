// Package storage provides SQLite-based persistence for analysis runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/levelsim/internal/sim"
)

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// Run is one recorded check of one level.
type Run struct {
	ID         int64
	LevelID    string
	Passed     bool
	Strict     bool
	Structural int // structural findings
	Issues     int // per-animal issues, summed
	AvgFun     float64
	Elapsed    time.Duration
	CreatedAt  time.Time
	Animals    []AnimalRun
}

// AnimalRun is one animal's outcome within a run.
type AnimalRun struct {
	RunID     int64
	AnimalID  string
	FunScore  int
	Eggs      int // collectable eggs
	EggTotal  int
	Nest      bool
	Slides    int
	Issues    int
	CreatedAt time.Time
}

// LevelStats contains aggregated statistics for a level.
type LevelStats struct {
	LevelID   string
	RunsCount int
	PassCount int
	AvgFun    float64
	BestFun   float64
	LastRun   time.Time
}

// RunFromResult flattens an analysis result into a run record.
func RunFromResult(res sim.LevelResult, strict bool) Run {
	r := Run{
		LevelID:    res.Level.ID,
		Passed:     res.Passed(strict),
		Strict:     strict,
		Structural: len(res.Structural),
		Issues:     res.IssueCount(),
		AvgFun:     res.AvgFun(),
		Elapsed:    res.Elapsed,
	}
	for _, a := range res.Animals {
		r.Animals = append(r.Animals, AnimalRun{
			AnimalID: a.Animal.ID,
			FunScore: a.FunScore,
			Eggs:     a.EggsCollected(),
			EggTotal: len(a.Eggs),
			Nest:     a.Nest,
			Slides:   a.SlidesReached(),
			Issues:   len(a.Issues),
		})
	}
	return r
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
			level_id TEXT NOT NULL,
			passed INTEGER NOT NULL,
			strict INTEGER NOT NULL DEFAULT 0,
			structural INTEGER NOT NULL DEFAULT 0,
			issues INTEGER NOT NULL DEFAULT 0,
			avg_fun REAL NOT NULL DEFAULT 0,
			elapsed_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_level_id ON runs(level_id);

		CREATE TABLE IF NOT EXISTS animal_runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id INTEGER NOT NULL REFERENCES runs(id),
			animal_id TEXT NOT NULL,
			fun INTEGER NOT NULL,
			eggs INTEGER NOT NULL,
			egg_total INTEGER NOT NULL,
			nest INTEGER NOT NULL,
			slides INTEGER NOT NULL,
			issues INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_animal_runs_run_id ON animal_runs(run_id);
		CREATE INDEX IF NOT EXISTS idx_animal_runs_animal ON animal_runs(animal_id);
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

// SaveRun records a run and its per-animal rows in one transaction.
// Returns the ID of the inserted run.
func (s *Store) SaveRun(r Run) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	result, err := tx.Exec(
		`INSERT INTO runs (level_id, passed, strict, structural, issues, avg_fun, elapsed_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.LevelID, r.Passed, r.Strict, r.Structural, r.Issues, r.AvgFun, r.Elapsed.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	for _, a := range r.Animals {
		_, err := tx.Exec(
			`INSERT INTO animal_runs (run_id, animal_id, fun, eggs, egg_total, nest, slides, issues)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			id, a.AnimalID, a.FunScore, a.Eggs, a.EggTotal, a.Nest, a.Slides, a.Issues,
		)
		if err != nil {
			return 0, fmt.Errorf("storage: cannot save animal %s: %w", a.AnimalID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit run: %w", err)
	}
	return id, nil
}

// RecentRuns retrieves the most recent runs for a level, newest first.
// Per-animal rows are loaded too.
func (s *Store) RecentRuns(levelID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, level_id, passed, strict, structural, issues, avg_fun, elapsed_ms, created_at
		 FROM runs
		 WHERE level_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		levelID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var elapsedMS int64
		var createdAt any
		if err := rows.Scan(&r.ID, &r.LevelID, &r.Passed, &r.Strict, &r.Structural, &r.Issues,
			&r.AvgFun, &elapsedMS, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	rows.Close()

	for i := range runs {
		animals, err := s.runAnimals(runs[i].ID)
		if err != nil {
			return nil, err
		}
		runs[i].Animals = animals
	}
	return runs, nil
}

func (s *Store) runAnimals(runID int64) ([]AnimalRun, error) {
	rows, err := s.db.Query(
		`SELECT run_id, animal_id, fun, eggs, egg_total, nest, slides, issues
		 FROM animal_runs
		 WHERE run_id = ?
		 ORDER BY id`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query animal runs: %w", err)
	}
	defer rows.Close()

	var out []AnimalRun
	for rows.Next() {
		var a AnimalRun
		if err := rows.Scan(&a.RunID, &a.AnimalID, &a.FunScore, &a.Eggs, &a.EggTotal, &a.Nest, &a.Slides, &a.Issues); err != nil {
			return nil, fmt.Errorf("storage: cannot scan animal row: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// AnimalTrend returns one animal's outcomes on a level across the most
// recent runs, newest first.
func (s *Store) AnimalTrend(levelID, animalID string, limit int) ([]AnimalRun, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT a.run_id, a.animal_id, a.fun, a.eggs, a.egg_total, a.nest, a.slides, a.issues, r.created_at
		 FROM animal_runs a
		 JOIN runs r ON r.id = a.run_id
		 WHERE r.level_id = ? AND a.animal_id = ?
		 ORDER BY r.id DESC
		 LIMIT ?`,
		levelID, animalID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query trend: %w", err)
	}
	defer rows.Close()

	var out []AnimalRun
	for rows.Next() {
		var a AnimalRun
		var createdAt any
		if err := rows.Scan(&a.RunID, &a.AnimalID, &a.FunScore, &a.Eggs, &a.EggTotal, &a.Nest, &a.Slides, &a.Issues, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan trend row: %w", err)
		}
		a.CreatedAt = parseTime(createdAt)
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// LevelStats retrieves aggregated statistics for a level. A level with no
// runs yields zero counts.
func (s *Store) LevelStats(levelID string) (*LevelStats, error) {
	stats := &LevelStats{LevelID: levelID}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(passed), 0), COALESCE(AVG(avg_fun), 0), COALESCE(MAX(avg_fun), 0)
		 FROM runs WHERE level_id = ?`,
		levelID,
	).Scan(&stats.RunsCount, &stats.PassCount, &stats.AvgFun, &stats.BestFun)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}

	var lastRun any
	err = s.db.QueryRow(
		`SELECT created_at FROM runs WHERE level_id = ? ORDER BY id DESC LIMIT 1`,
		levelID,
	).Scan(&lastRun)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last run: %w", err)
	}
	if err == nil {
		stats.LastRun = parseTime(lastRun)
	}

	return stats, nil
}

// AllLevelStats retrieves statistics for every level that has been run.
func (s *Store) AllLevelStats() (map[string]*LevelStats, error) {
	rows, err := s.db.Query(
		`SELECT level_id, COUNT(*), SUM(passed), AVG(avg_fun), MAX(avg_fun), MAX(created_at)
		 FROM runs
		 GROUP BY level_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all level stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*LevelStats)
	for rows.Next() {
		var ls LevelStats
		var lastRun any
		if err := rows.Scan(&ls.LevelID, &ls.RunsCount, &ls.PassCount, &ls.AvgFun, &ls.BestFun, &lastRun); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		ls.LastRun = parseTime(lastRun)
		stats[ls.LevelID] = &ls
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// ClearRuns deletes all runs recorded for the given level.
func (s *Store) ClearRuns(levelID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.Exec(
		`DELETE FROM animal_runs WHERE run_id IN (SELECT id FROM runs WHERE level_id = ?)`,
		levelID,
	); err != nil {
		return fmt.Errorf("storage: cannot clear animal runs: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM runs WHERE level_id = ?", levelID); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return tx.Commit()
}

// parseTime handles the driver returning DATETIME columns as either
// time.Time or text.
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
