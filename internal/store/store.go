// Package store provides the durable state behind the sync engine: scanned
// artifacts, per-(artifact, target) sync state, append-only job and result
// history, mapping rules, and a small settings table.
//
// The store is SQLite opened in WAL mode with a 5s busy timeout and foreign
// keys enforced. All mutation goes through upsert/delete operations keyed
// by (artifact_id, target_system) or by job id, and reads use explicit
// ORDER BY so results are deterministic. sync_results is append-only: rows
// are never updated or deleted, forming the audit trail.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Masterminds/semver/v3"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// schemaVersion is the schema this binary writes. Opening a store written
// by a newer major version fails rather than risking silent corruption.
const schemaVersion = "1.0.0"

// Store wraps the SQLite connection. The caller must Close it.
type Store struct {
	conn *sql.DB
	path string
}

// Open creates or opens the state database at path, applying the schema and
// the schema-version gate. The parent directory is created if needed.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating state directory %s: %w", dir, err)
	}

	conn, err := sql.Open("sqlite3", "file:"+path)
	if err != nil {
		return nil, fmt.Errorf("opening state database: %w", err)
	}
	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("pinging state database: %w", err)
	}

	conn.SetMaxOpenConns(1)
	conn.SetConnMaxLifetime(5 * time.Minute)

	s := &Store{conn: conn, path: path}

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := s.conn.Exec(pragma); err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("applying %s: %w", pragma, err)
		}
	}

	if err := s.initSchema(); err != nil {
		_ = s.Close()
		return nil, err
	}
	if err := s.checkSchemaVersion(); err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

// Close closes the database connection.
func (s *Store) Close() error {
	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	return err
}

// checkSchemaVersion refuses stores written by a newer major version and
// stamps new stores with the current version.
func (s *Store) checkSchemaVersion() error {
	stored, err := s.GetSetting("schema_version")
	if errors.Is(err, ErrNotFound) {
		return s.SetSetting("schema_version", schemaVersion)
	}
	if err != nil {
		return err
	}

	storedV, err := semver.NewVersion(stored)
	if err != nil {
		return fmt.Errorf("parsing stored schema version %q: %w", stored, err)
	}
	currentV := semver.MustParse(schemaVersion)
	if storedV.Major() > currentV.Major() {
		return fmt.Errorf("state database schema %s is newer than this binary supports (%s); upgrade the tool", stored, schemaVersion)
	}
	return nil
}
