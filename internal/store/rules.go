package store

import (
	"database/sql"
	"errors"
)

// UpsertMappingRule inserts or replaces one (source, target, type) rule.
func (s *Store) UpsertMappingRule(r MappingRule) error {
	_, err := s.conn.Exec(`
		INSERT INTO mapping_rules (source_system, target_system, artifact_type, use_symlink, transform_type)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(source_system, target_system, artifact_type) DO UPDATE SET
			use_symlink = excluded.use_symlink,
			transform_type = excluded.transform_type`,
		r.SourceSystem, r.TargetSystem, r.ArtifactType, boolInt(r.UseSymlink), r.TransformType)
	if err != nil {
		return wrapErr("upserting mapping rule", err)
	}
	return nil
}

// GetMappingRule returns the rule for a (source, target, type) triple, or
// ErrNotFound when none is configured.
func (s *Store) GetMappingRule(source, target, artifactType string) (MappingRule, error) {
	row := s.conn.QueryRow(`
		SELECT source_system, target_system, artifact_type, use_symlink, transform_type
		FROM mapping_rules
		WHERE source_system = ? AND target_system = ? AND artifact_type = ?`,
		source, target, artifactType)

	var r MappingRule
	var useSymlink int
	err := row.Scan(&r.SourceSystem, &r.TargetSystem, &r.ArtifactType, &useSymlink, &r.TransformType)
	if errors.Is(err, sql.ErrNoRows) {
		return MappingRule{}, ErrNotFound
	}
	if err != nil {
		return MappingRule{}, wrapErr("reading mapping rule", err)
	}
	r.UseSymlink = useSymlink != 0
	return r, nil
}

// ListMappingRules returns every rule for a (source, target) pair, ordered
// by artifact type.
func (s *Store) ListMappingRules(source, target string) ([]MappingRule, error) {
	rows, err := s.conn.Query(`
		SELECT source_system, target_system, artifact_type, use_symlink, transform_type
		FROM mapping_rules
		WHERE source_system = ? AND target_system = ?
		ORDER BY artifact_type ASC`, source, target)
	if err != nil {
		return nil, wrapErr("listing mapping rules", err)
	}
	defer rows.Close()

	var out []MappingRule
	for rows.Next() {
		var r MappingRule
		var useSymlink int
		if err := rows.Scan(&r.SourceSystem, &r.TargetSystem, &r.ArtifactType, &useSymlink, &r.TransformType); err != nil {
			return nil, err
		}
		r.UseSymlink = useSymlink != 0
		out = append(out, r)
	}
	return out, rows.Err()
}
