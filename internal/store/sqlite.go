package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Schema version tracking:
// 0 - Empty database
// 1 - containers and records tables
const currentSchemaVersion = 1

// sqliteBackend keeps containers and records in one SQLite database.
type sqliteBackend struct {
	db *sql.DB
}

// openSQLite creates or opens a SQLite database at the given path.
// Applies required pragmas and migrations automatically.
//
// This function is idempotent - safe to call multiple times.
func openSQLite(path string) (*sqliteBackend, error) {
	if path != ":memory:" {
		// Ensure parent directory exists
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	// Open database (creates file if doesn't exist)
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Verify connection works
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite only supports one writer at a time, and ":memory:" databases
	// are private to a connection, so keep exactly one.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &sqliteBackend{db: db}, nil
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

// applySchema creates tables if they don't exist and runs migrations.
func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	if err := runMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// runMigrations records the schema version in user_version.
// A database written by a newer reclog is refused rather than downgraded.
func runMigrations(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("get user_version: %w", err)
	}

	if version > currentSchemaVersion {
		return fmt.Errorf("schema version %d is newer than supported version %d", version, currentSchemaVersion)
	}

	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}

	return nil
}

// withTx runs fn in a transaction and commits it.
// The transaction is rolled back if fn or the commit fails.
func (s *sqliteBackend) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (s *sqliteBackend) ensureContainer(ctx context.Context, name string) (id int64, created bool, err error) {
	err = s.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			INSERT INTO containers (name)
			VALUES (?)
			ON CONFLICT(name) DO NOTHING
		`, name)
		if err != nil {
			return fmt.Errorf("insert container: %w", err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		created = rowsAffected > 0

		if err := tx.QueryRowContext(ctx, `
			SELECT id FROM containers WHERE name = ?
		`, name).Scan(&id); err != nil {
			return fmt.Errorf("select container: %w", err)
		}
		return nil
	})
	return id, created, err
}

func (s *sqliteBackend) containerNames(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name FROM containers
		ORDER BY name COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query containers: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan container: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate containers: %w", err)
	}
	return names, nil
}

func (s *sqliteBackend) put(ctx context.Context, cid int64, key string, value []byte) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO records (container_id, key, value)
			VALUES (?, ?, ?)
			ON CONFLICT(container_id, key) DO UPDATE SET value = excluded.value
		`, cid, key, value)
		return err
	})
}

func (s *sqliteBackend) get(ctx context.Context, cid int64, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT value FROM records
		WHERE container_id = ? AND key = ?
	`, cid, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, err
	}
	return cloneValue(value), nil
}

func (s *sqliteBackend) del(ctx context.Context, cid int64, key string) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			DELETE FROM records
			WHERE container_id = ? AND key = ?
		`, cid, key)
		if err != nil {
			return err
		}
		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		if rowsAffected == 0 {
			return ErrKeyNotFound
		}
		return nil
	})
}

func (s *sqliteBackend) page(ctx context.Context, cid int64, after string, limit int) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT key, value FROM records
		WHERE container_id = ? AND key > ?
		ORDER BY key COLLATE BINARY ASC
		LIMIT ?
	`, cid, after, limit)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	recs := make([]Record, 0, limit)
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.Key, &r.Value); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		recs = append(recs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return recs, nil
}

func (s *sqliteBackend) last(ctx context.Context, cid int64) (Record, bool, error) {
	var r Record
	err := s.db.QueryRowContext(ctx, `
		SELECT key, value FROM records
		WHERE container_id = ?
		ORDER BY key COLLATE BINARY DESC
		LIMIT 1
	`, cid).Scan(&r.Key, &r.Value)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, err
	}
	return r, true, nil
}

func (s *sqliteBackend) count(ctx context.Context, cid int64) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM records WHERE container_id = ?
	`, cid).Scan(&n)
	return n, err
}

func (s *sqliteBackend) close() error {
	return s.db.Close()
}

// verifyPragma checks that a pragma is set to the expected value.
// Used for testing.
func (s *sqliteBackend) verifyPragma(name, expected string) error {
	var value string
	query := fmt.Sprintf("PRAGMA %s", name)
	if err := s.db.QueryRow(query).Scan(&value); err != nil {
		return fmt.Errorf("failed to query %s: %w", name, err)
	}
	if value != expected {
		return fmt.Errorf("%s = %q, expected %q", name, value, expected)
	}
	return nil
}
