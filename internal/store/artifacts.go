package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/aicsync-labs/aicsync/internal/artifact"
)

const timeFormat = time.RFC3339Nano

// UpsertArtifact inserts or refreshes one scanned artifact row.
func (s *Store) UpsertArtifact(a artifact.Artifact) error {
	meta, err := json.Marshal(a.Metadata)
	if err != nil {
		return wrapErr("marshaling artifact metadata", err)
	}
	if a.Metadata == nil {
		meta = []byte("{}")
	}

	_, err = s.conn.Exec(`
		INSERT INTO artifacts (id, name, type, description, content_hash, source_system, source_path, metadata, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			content_hash = excluded.content_hash,
			source_path = excluded.source_path,
			metadata = excluded.metadata,
			updated_at = excluded.updated_at`,
		a.ID, a.Name, string(a.Type), a.Description, a.ContentHash,
		a.SourceSystem, a.SourcePath, string(meta), time.Now().UTC().Format(timeFormat))
	if err != nil {
		return wrapErr("upserting artifact "+a.ID, err)
	}
	return nil
}

// GetArtifact returns one artifact row by id.
func (s *Store) GetArtifact(id string) (artifact.Artifact, error) {
	row := s.conn.QueryRow(`
		SELECT id, name, type, description, content_hash, source_system, source_path, metadata
		FROM artifacts WHERE id = ?`, id)
	a, err := scanArtifact(row)
	if errors.Is(err, sql.ErrNoRows) {
		return artifact.Artifact{}, ErrNotFound
	}
	return a, err
}

// ListArtifacts returns artifacts for a source system, optionally filtered
// by type, ordered by (type, name) for deterministic output.
func (s *Store) ListArtifacts(sourceSystem string, types []artifact.Type) ([]artifact.Artifact, error) {
	query := `
		SELECT id, name, type, description, content_hash, source_system, source_path, metadata
		FROM artifacts WHERE source_system = ?`
	args := []any{sourceSystem}
	if len(types) > 0 {
		query += " AND type IN (" + placeholders(len(types)) + ")"
		for _, t := range types {
			args = append(args, string(t))
		}
	}
	query += " ORDER BY type ASC, name ASC"

	rows, err := s.conn.Query(query, args...)
	if err != nil {
		return nil, wrapErr("listing artifacts", err)
	}
	defer rows.Close()

	var out []artifact.Artifact
	for rows.Next() {
		a, err := scanArtifact(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArtifact(row rowScanner) (artifact.Artifact, error) {
	var a artifact.Artifact
	var typ, meta string
	if err := row.Scan(&a.ID, &a.Name, &typ, &a.Description, &a.ContentHash,
		&a.SourceSystem, &a.SourcePath, &meta); err != nil {
		return artifact.Artifact{}, err
	}
	a.Type = artifact.Type(typ)
	if meta != "" && meta != "{}" {
		if err := json.Unmarshal([]byte(meta), &a.Metadata); err != nil {
			return artifact.Artifact{}, wrapErr("parsing artifact metadata", err)
		}
	}
	return a, nil
}

func placeholders(n int) string {
	out := make([]byte, 0, n*2)
	for i := 0; i < n; i++ {
		if i > 0 {
			out = append(out, ',')
		}
		out = append(out, '?')
	}
	return string(out)
}
