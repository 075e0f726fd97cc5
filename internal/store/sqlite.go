package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL
// mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS count_samples (
	id         TEXT PRIMARY KEY,
	url        TEXT NOT NULL,
	registered INTEGER NOT NULL DEFAULT 0,
	integrated INTEGER NOT NULL DEFAULT 0,
	err        TEXT NOT NULL DEFAULT '',
	taken_at   DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_count_samples_url ON count_samples(url);
CREATE INDEX IF NOT EXISTS idx_count_samples_taken_at ON count_samples(taken_at);
`

// Migrate creates the schema.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

// AppendSample records one sample. A zero TakenAt defaults to now; a
// missing ID gets a fresh UUID.
func (s *SQLiteStore) AppendSample(ctx context.Context, sample Sample) error {
	if sample.ID == "" {
		sample.ID = uuid.NewString()
	}
	if sample.TakenAt.IsZero() {
		sample.TakenAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO count_samples (id, url, registered, integrated, err, taken_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		sample.ID, sample.URL, sample.Registered, sample.Integrated, sample.Err, sample.TakenAt,
	)
	return eris.Wrap(err, "sqlite: append sample")
}

// ListSamples returns samples ordered oldest first.
func (s *SQLiteStore) ListSamples(ctx context.Context, filter SampleFilter) ([]Sample, error) {
	query := `SELECT id, url, registered, integrated, err, taken_at FROM count_samples WHERE 1=1`
	var args []any
	if filter.URL != "" {
		query += ` AND url = ?`
		args = append(args, filter.URL)
	}
	if !filter.Since.IsZero() {
		query += ` AND taken_at >= ?`
		args = append(args, filter.Since)
	}
	query += ` ORDER BY taken_at ASC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list samples")
	}
	defer rows.Close() //nolint:errcheck

	var out []Sample
	for rows.Next() {
		var sm Sample
		if err := rows.Scan(&sm.ID, &sm.URL, &sm.Registered, &sm.Integrated, &sm.Err, &sm.TakenAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan sample")
		}
		out = append(out, sm)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: iterate samples")
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return eris.Wrap(s.db.Close(), "sqlite: close")
}
