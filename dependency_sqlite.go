package examplegen

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// DependencyRun summarizes a stored dependency analysis.
type DependencyRun struct {
	RunID      string
	Locale     string
	Started    time.Time
	Finished   time.Time
	Candidates int
	Skipped    int
	Edges      int
}

// SQLiteReportStore persists dependency graphs to SQLite.
type SQLiteReportStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
}

// NewSQLiteReportStore opens a report store at path, or ":memory:" for tests.
func NewSQLiteReportStore(path string) (*SQLiteReportStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// an in-memory database lives as long as its single connection
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS dependency_runs (
			run_id TEXT PRIMARY KEY,
			locale TEXT NOT NULL,
			started TEXT NOT NULL,
			finished TEXT NOT NULL,
			candidates INTEGER NOT NULL,
			skipped INTEGER NOT NULL
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create runs table: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS dependency_edges (
			run_id TEXT NOT NULL,
			source_path TEXT NOT NULL,
			target_path TEXT NOT NULL,
			PRIMARY KEY (run_id, source_path, target_path)
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create edges table: %w", err)
	}

	if _, err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_dependency_edges_target
		ON dependency_edges(run_id, target_path)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create index: %w", err)
	}

	return &SQLiteReportStore{db: db}, nil
}

// Save stores graph and all of its edges in one transaction.
func (s *SQLiteReportStore) Save(graph *DependencyGraph) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}
	if graph == nil {
		return fmt.Errorf("save dependency run: nil graph")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.Exec(`
		INSERT INTO dependency_runs (run_id, locale, started, finished, candidates, skipped)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id) DO UPDATE SET
			locale = excluded.locale,
			started = excluded.started,
			finished = excluded.finished,
			candidates = excluded.candidates,
			skipped = excluded.skipped
	`, graph.RunID, graph.Locale,
		graph.Started.UTC().Format(time.RFC3339Nano),
		graph.Finished.UTC().Format(time.RFC3339Nano),
		graph.Candidates, graph.Skipped); err != nil {
		return fmt.Errorf("save dependency run: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM dependency_edges WHERE run_id = ?`, graph.RunID); err != nil {
		return fmt.Errorf("clear dependency edges: %w", err)
	}
	stmt, err := tx.Prepare(`
		INSERT INTO dependency_edges (run_id, source_path, target_path)
		VALUES (?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare edge insert: %w", err)
	}
	defer stmt.Close()

	for _, source := range graph.Sources() {
		for _, target := range graph.Dependents(source) {
			if _, err := stmt.Exec(graph.RunID, source, target); err != nil {
				return fmt.Errorf("save dependency edge: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Load rebuilds the graph stored under runID.
func (s *SQLiteReportStore) Load(runID string) (*DependencyGraph, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	run, err := s.run(runID)
	if err != nil {
		return nil, err
	}
	graph := &DependencyGraph{
		RunID:      run.RunID,
		Locale:     run.Locale,
		Started:    run.Started,
		Finished:   run.Finished,
		Candidates: run.Candidates,
		Skipped:    run.Skipped,
		forward:    make(map[string]map[string]struct{}),
		reverse:    make(map[string]map[string]struct{}),
	}

	rows, err := s.db.Query(`
		SELECT source_path, target_path FROM dependency_edges
		WHERE run_id = ?
		ORDER BY source_path, target_path
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("load dependency edges: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var source, target string
		if err := rows.Scan(&source, &target); err != nil {
			return nil, fmt.Errorf("scan dependency edge: %w", err)
		}
		graph.Add(source, target)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate dependency edges: %w", err)
	}
	return graph, nil
}

func (s *SQLiteReportStore) run(runID string) (DependencyRun, error) {
	var (
		run               DependencyRun
		started, finished string
	)
	err := s.db.QueryRow(`
		SELECT r.run_id, r.locale, r.started, r.finished, r.candidates, r.skipped,
			(SELECT COUNT(*) FROM dependency_edges e WHERE e.run_id = r.run_id)
		FROM dependency_runs r
		WHERE r.run_id = ?
	`, runID).Scan(&run.RunID, &run.Locale, &started, &finished, &run.Candidates, &run.Skipped, &run.Edges)
	if err == sql.ErrNoRows {
		return DependencyRun{}, fmt.Errorf("%w: dependency run %s", ErrMissingValue, runID)
	}
	if err != nil {
		return DependencyRun{}, fmt.Errorf("load dependency run: %w", err)
	}
	run.Started, _ = time.Parse(time.RFC3339Nano, started)
	run.Finished, _ = time.Parse(time.RFC3339Nano, finished)
	return run, nil
}

// Runs lists stored runs for locale, newest first. An empty locale lists all.
func (s *SQLiteReportStore) Runs(locale string) ([]DependencyRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	rows, err := s.db.Query(`
		SELECT r.run_id, r.locale, r.started, r.finished, r.candidates, r.skipped,
			(SELECT COUNT(*) FROM dependency_edges e WHERE e.run_id = r.run_id)
		FROM dependency_runs r
		WHERE ? = '' OR r.locale = ?
		ORDER BY r.started DESC
	`, locale, locale)
	if err != nil {
		return nil, fmt.Errorf("list dependency runs: %w", err)
	}
	defer rows.Close()

	var runs []DependencyRun
	for rows.Next() {
		var (
			run               DependencyRun
			started, finished string
		)
		if err := rows.Scan(&run.RunID, &run.Locale, &started, &finished, &run.Candidates, &run.Skipped, &run.Edges); err != nil {
			return nil, fmt.Errorf("scan dependency run: %w", err)
		}
		run.Started, _ = time.Parse(time.RFC3339Nano, started)
		run.Finished, _ = time.Parse(time.RFC3339Nano, finished)
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate dependency runs: %w", err)
	}
	return runs, nil
}

// Delete removes a run and its edges.
func (s *SQLiteReportStore) Delete(runID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}
	if _, err := s.db.Exec(`DELETE FROM dependency_edges WHERE run_id = ?`, runID); err != nil {
		return fmt.Errorf("delete dependency edges: %w", err)
	}
	if _, err := s.db.Exec(`DELETE FROM dependency_runs WHERE run_id = ?`, runID); err != nil {
		return fmt.Errorf("delete dependency run: %w", err)
	}
	return nil
}

// Close releases the database. It is safe to call more than once.
func (s *SQLiteReportStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}
