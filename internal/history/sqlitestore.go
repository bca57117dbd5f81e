package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Ismailco/PWA2Native/internal/paths"

	_ "modernc.org/sqlite"
)

// timeLayout is fixed-width so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000Z"

// SQLiteStore implements Store using a SQLite database.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore opens (or creates) a SQLite database at path and creates
// tables and indexes.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), paths.DirPerm); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// PRAGMAs are per connection; keep a single one so they stick.
	db.SetMaxOpenConns(1)

	// Set PRAGMAs before any DDL.
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("sqlite pragma: %w", err)
		}
	}

	ddl := `
CREATE TABLE IF NOT EXISTS runs (
    id             TEXT    PRIMARY KEY,
    started        TEXT    NOT NULL,
    duration_ms    INTEGER NOT NULL,
    url            TEXT    NOT NULL,
    app_name       TEXT    NOT NULL DEFAULT '',
    output         TEXT    NOT NULL DEFAULT '',
    icons_fetched  INTEGER NOT NULL DEFAULT 0,
    icons_failed   INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS platform_results (
    id              INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id          TEXT    NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    platform        TEXT    NOT NULL,
    ok              INTEGER NOT NULL,
    dir             TEXT    NOT NULL DEFAULT '',
    icons_produced  INTEGER NOT NULL DEFAULT 0,
    icons_failed    INTEGER NOT NULL DEFAULT 0,
    error           TEXT    NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_runs_started   ON runs(started DESC);
CREATE INDEX IF NOT EXISTS idx_results_run_id ON platform_results(run_id);
`
	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite schema: %w", err)
	}

	return &SQLiteStore{db: db, path: path}, nil
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string { return s.path }

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Record stores r and its platform results in one transaction.
func (s *SQLiteStore) Record(r Run) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`INSERT INTO runs (id, started, duration_ms, url, app_name, output, icons_fetched, icons_failed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Started.UTC().Format(timeLayout), r.Duration.Milliseconds(),
		r.URL, r.AppName, r.Output, r.IconsFetched, r.IconsFailed,
	); err != nil {
		return fmt.Errorf("history: insert run: %w", err)
	}

	for _, p := range r.Platforms {
		ok := 0
		if p.OK {
			ok = 1
		}
		if _, err := tx.Exec(
			`INSERT INTO platform_results (run_id, platform, ok, dir, icons_produced, icons_failed, error)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			r.ID, p.Platform, ok, p.Dir, p.IconsProduced, p.IconsFailed, p.Error,
		); err != nil {
			return fmt.Errorf("history: insert result: %w", err)
		}
	}

	return tx.Commit()
}

// Runs returns runs started within the last days (0 = all), newest first.
func (s *SQLiteStore) Runs(days int) ([]Run, error) {
	query := `SELECT id, started, duration_ms, url, app_name, output, icons_fetched, icons_failed FROM runs`
	var args []any
	if days > 0 {
		query += ` WHERE started >= ?`
		args = append(args, DayCutoff(days).UTC().Format(timeLayout))
	}
	query += ` ORDER BY started DESC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	index := map[string]int{}
	for rows.Next() {
		var r Run
		var started string
		var ms int64
		if err := rows.Scan(&r.ID, &started, &ms, &r.URL, &r.AppName, &r.Output, &r.IconsFetched, &r.IconsFailed); err != nil {
			return nil, err
		}
		ts, err := time.Parse(timeLayout, started)
		if err != nil {
			continue
		}
		r.Started = ts.Local()
		r.Duration = time.Duration(ms) * time.Millisecond
		index[r.ID] = len(runs)
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(runs)), ",")
	ids := make([]any, len(runs))
	for i, r := range runs {
		ids[i] = r.ID
	}
	prows, err := s.db.Query(
		`SELECT run_id, platform, ok, dir, icons_produced, icons_failed, error
		 FROM platform_results WHERE run_id IN (`+placeholders+`) ORDER BY id`, ids...)
	if err != nil {
		return nil, err
	}
	defer prows.Close()

	for prows.Next() {
		var runID string
		var p PlatformResult
		var ok int
		if err := prows.Scan(&runID, &p.Platform, &ok, &p.Dir, &p.IconsProduced, &p.IconsFailed, &p.Error); err != nil {
			return nil, err
		}
		p.OK = ok != 0
		if i, found := index[runID]; found {
			runs[i].Platforms = append(runs[i].Platforms, p)
		}
	}
	return runs, prows.Err()
}

// Clean removes runs started before the cutoff for days and returns how
// many were removed. Platform results go with them.
func (s *SQLiteStore) Clean(days int) (int, error) {
	if days <= 0 {
		return 0, nil
	}
	res, err := s.db.Exec(`DELETE FROM runs WHERE started < ?`, DayCutoff(days).UTC().Format(timeLayout))
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}
