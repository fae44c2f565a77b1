package results

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS results (
	id         TEXT PRIMARY KEY,
	task_name  TEXT NOT NULL,
	session_id TEXT NOT NULL,
	pass       INTEGER NOT NULL,
	reward     REAL NOT NULL,
	timed_out  INTEGER NOT NULL,
	duration   INTEGER NOT NULL,
	calls      TEXT NOT NULL,
	checks     TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_results_task ON results(task_name);
CREATE INDEX IF NOT EXISTS idx_results_created ON results(created_at);
`

// SQLiteConfig configures the SQLite results backend.
type SQLiteConfig struct {
	// Path is the database file path. ":memory:" works for tests.
	Path string

	// BusyTimeout is how long a writer waits on a locked database.
	BusyTimeout time.Duration
}

// DefaultSQLiteConfig returns the default backend configuration.
func DefaultSQLiteConfig() *SQLiteConfig {
	return &SQLiteConfig{
		Path:        "data/results.db",
		BusyTimeout: 5 * time.Second,
	}
}

// SQLiteStore implements Store on a SQLite database file.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteStore opens the database and initializes the schema.
func NewSQLiteStore(config *SQLiteConfig) (*SQLiteStore, error) {
	if config == nil {
		config = DefaultSQLiteConfig()
	}

	db, err := sql.Open("sqlite", config.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open results database %q: %w", config.Path, err)
	}
	// The driver is in-process; a single connection avoids writer contention.
	db.SetMaxOpenConns(1)

	if config.BusyTimeout > 0 {
		if _, err := db.Exec(fmt.Sprintf("PRAGMA busy_timeout = %d", config.BusyTimeout.Milliseconds())); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set busy timeout: %w", err)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize results schema: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		logger: slog.Default().With("component", "results.sqlite"),
	}, nil
}

// Save persists one record. Call and check details are stored as JSON.
func (s *SQLiteStore) Save(ctx context.Context, rec Record) error {
	calls, err := json.Marshal(rec.Calls)
	if err != nil {
		return fmt.Errorf("failed to encode call trace: %w", err)
	}
	checks, err := json.Marshal(rec.Checks)
	if err != nil {
		return fmt.Errorf("failed to encode checks: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO results (id, task_name, session_id, pass, reward, timed_out, duration, calls, checks, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.TaskName, rec.SessionID, boolInt(rec.Pass), rec.Reward,
		boolInt(rec.TimedOut), int64(rec.Duration), string(calls), string(checks), rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save result %s: %w", rec.ID, err)
	}
	return nil
}

// Get returns a record by ID.
func (s *SQLiteStore) Get(ctx context.Context, id string) (Record, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, task_name, session_id, pass, reward, timed_out, duration, calls, checks, created_at
		FROM results WHERE id = ?`, id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	return rec, err
}

// List returns records newest first, narrowed by the filter.
func (s *SQLiteStore) List(ctx context.Context, f Filter) ([]Record, error) {
	query := `SELECT id, task_name, session_id, pass, reward, timed_out, duration, calls, checks, created_at
		FROM results WHERE 1=1`
	var args []any
	if f.TaskName != "" {
		query += " AND task_name = ?"
		args = append(args, f.TaskName)
	}
	if f.FailOnly {
		query += " AND pass = 0"
	}
	query += " ORDER BY created_at DESC"
	if f.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, f.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// DeleteOlderThan removes records created before the cutoff.
func (s *SQLiteStore) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM results WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune results: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.logger.Info("pruned results", "deleted", n, "cutoff", cutoff)
	}
	return int(n), nil
}

// Count returns the number of stored records.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM results`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count results: %w", err)
	}
	return n, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error { return s.db.Close() }

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (Record, error) {
	var (
		rec            Record
		pass, timedOut int
		duration       int64
		calls, checks  string
	)
	err := row.Scan(&rec.ID, &rec.TaskName, &rec.SessionID, &pass, &rec.Reward,
		&timedOut, &duration, &calls, &checks, &rec.CreatedAt)
	if err != nil {
		return Record{}, err
	}
	rec.Pass = pass != 0
	rec.TimedOut = timedOut != 0
	rec.Duration = time.Duration(duration)
	if err := json.Unmarshal([]byte(calls), &rec.Calls); err != nil {
		return Record{}, fmt.Errorf("failed to decode call trace for %s: %w", rec.ID, err)
	}
	if err := json.Unmarshal([]byte(checks), &rec.Checks); err != nil {
		return Record{}, fmt.Errorf("failed to decode checks for %s: %w", rec.ID, err)
	}
	return rec, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
