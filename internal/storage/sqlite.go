package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/datadesk/scrub/internal/common"
	"github.com/datadesk/scrub/internal/model"
)

// SQLiteStore keeps checkpoints in a single SQLite database, one row per
// classified title keyed by (checkpoint key, sequence).
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the checkpoint database at dbPath.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
			return nil, fmt.Errorf("%w: creating database directory: %v", common.ErrCheckpointIO, err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("%w: opening database: %v", common.ErrCheckpointIO, err)
	}

	// SQLite doesn't benefit from multiple connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("%w: pinging database: %v", common.ErrCheckpointIO, err)
	}

	schema := `CREATE TABLE IF NOT EXISTS checkpoints (
		key      TEXT    NOT NULL,
		seq      INTEGER NOT NULL,
		filename TEXT    NOT NULL,
		title    TEXT    NOT NULL,
		url      TEXT    NOT NULL,
		label    TEXT    NOT NULL,
		PRIMARY KEY (key, seq)
	)`
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("%w: creating schema: %v", common.ErrCheckpointIO, err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Exists reports whether a checkpoint has been written for key.
func (s *SQLiteStore) Exists(ctx context.Context, key string) (bool, error) {
	if err := validateKey(key); err != nil {
		return false, err
	}

	var one int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM checkpoints WHERE key = ? LIMIT 1", key).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: querying %s: %v", common.ErrCheckpointIO, key, err)
	}
	return true, nil
}

// Load reads the checkpoint stored under key in sequence order.
func (s *SQLiteStore) Load(ctx context.Context, key string) ([]model.ClassifiedRow, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT filename, title, url, label FROM checkpoints WHERE key = ? ORDER BY seq", key)
	if err != nil {
		return nil, fmt.Errorf("%w: querying %s: %v", common.ErrCheckpointIO, key, err)
	}
	defer func() { _ = rows.Close() }()

	var result []model.ClassifiedRow
	for rows.Next() {
		var row model.ClassifiedRow
		if err := rows.Scan(&row.Filename, &row.Title, &row.URL, &row.Label); err != nil {
			return nil, fmt.Errorf("%w: scanning %s: %v", common.ErrCheckpointIO, key, err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating %s: %v", common.ErrCheckpointIO, key, err)
	}

	if result == nil {
		return nil, fmt.Errorf("%w: %s", ErrCheckpointNotFound, key)
	}
	return result, nil
}

// Save writes the checkpoint for key, replacing any existing rows.
func (s *SQLiteStore) Save(ctx context.Context, key string, rows []model.ClassifiedRow) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("%w: %s", ErrEmptyCheckpoint, key)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: beginning transaction: %v", common.ErrCheckpointIO, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM checkpoints WHERE key = ?", key); err != nil {
		return fmt.Errorf("%w: clearing %s: %v", common.ErrCheckpointIO, key, err)
	}

	for i, row := range rows {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO checkpoints (key, seq, filename, title, url, label) VALUES (?, ?, ?, ?, ?, ?)",
			key, i, row.Filename, row.Title, row.URL, row.Label)
		if err != nil {
			return fmt.Errorf("%w: inserting into %s: %v", common.ErrCheckpointIO, key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing %s: %v", common.ErrCheckpointIO, key, err)
	}
	return nil
}
