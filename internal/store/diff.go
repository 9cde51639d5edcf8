package store

import "github.com/aicsync-labs/aicsync/internal/artifact"

// OutOfSync returns drift entries for (source, target): artifacts whose
// stored sync hash differs from the current content hash, plus artifacts
// with no sync_state row at all. Read-only.
func (s *Store) OutOfSync(source, target string, types []artifact.Type) ([]OutOfSyncEntry, error) {
	query := `
		SELECT a.id, a.name, a.type, a.content_hash,
		       COALESCE(ss.synced_hash, ''), COALESCE(ss.target_path, '')
		FROM artifacts a
		LEFT JOIN sync_state ss
		       ON ss.artifact_id = a.id AND ss.target_system = ?
		WHERE a.source_system = ?
		  AND (ss.artifact_id IS NULL OR ss.synced_hash != a.content_hash)`
	args := []any{target, source}
	if len(types) > 0 {
		query += " AND a.type IN (" + placeholders(len(types)) + ")"
		for _, t := range types {
			args = append(args, string(t))
		}
	}
	query += " ORDER BY a.type ASC, a.name ASC"

	rows, err := s.conn.Query(query, args...)
	if err != nil {
		return nil, wrapErr("querying out-of-sync artifacts", err)
	}
	defer rows.Close()

	var out []OutOfSyncEntry
	for rows.Next() {
		var e OutOfSyncEntry
		if err := rows.Scan(&e.ArtifactID, &e.ArtifactName, &e.ArtifactType,
			&e.ContentHash, &e.SyncedHash, &e.TargetPath); err != nil {
			return nil, err
		}
		e.NeverSynced = e.SyncedHash == ""
		out = append(out, e)
	}
	return out, rows.Err()
}
