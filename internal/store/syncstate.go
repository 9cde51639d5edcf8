package store

import (
	"database/sql"
	"errors"
	"time"
)

// UpsertSyncState inserts or replaces the row for (artifact, target).
func (s *Store) UpsertSyncState(st SyncState) error {
	_, err := s.conn.Exec(`
		INSERT INTO sync_state (artifact_id, target_system, target_path, sync_method, synced_hash, last_synced_at, status, error_message)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(artifact_id, target_system) DO UPDATE SET
			target_path = excluded.target_path,
			sync_method = excluded.sync_method,
			synced_hash = excluded.synced_hash,
			last_synced_at = excluded.last_synced_at,
			status = excluded.status,
			error_message = excluded.error_message`,
		st.ArtifactID, st.TargetSystem, st.TargetPath, st.SyncMethod,
		st.SyncedHash, st.LastSyncedAt.UTC().Format(timeFormat), st.Status, st.ErrorMessage)
	if err != nil {
		return wrapErr("upserting sync state for "+st.ArtifactID, err)
	}
	return nil
}

// GetSyncState returns the row for (artifactID, targetSystem), or
// ErrNotFound when the pair was never synced.
func (s *Store) GetSyncState(artifactID, targetSystem string) (SyncState, error) {
	row := s.conn.QueryRow(`
		SELECT artifact_id, target_system, target_path, sync_method, synced_hash, last_synced_at, status, error_message
		FROM sync_state WHERE artifact_id = ? AND target_system = ?`,
		artifactID, targetSystem)
	st, err := scanSyncState(row)
	if errors.Is(err, sql.ErrNoRows) {
		return SyncState{}, ErrNotFound
	}
	return st, err
}

// ListSyncStateForTarget returns every row for a target system, ordered by
// artifact id.
func (s *Store) ListSyncStateForTarget(targetSystem string) ([]SyncState, error) {
	rows, err := s.conn.Query(`
		SELECT artifact_id, target_system, target_path, sync_method, synced_hash, last_synced_at, status, error_message
		FROM sync_state WHERE target_system = ?
		ORDER BY artifact_id ASC`, targetSystem)
	if err != nil {
		return nil, wrapErr("listing sync state", err)
	}
	defer rows.Close()

	var out []SyncState
	for rows.Next() {
		st, err := scanSyncState(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

// DeleteSyncState removes the row for (artifactID, targetSystem). Used only
// by the deletion reconciler.
func (s *Store) DeleteSyncState(artifactID, targetSystem string) error {
	_, err := s.conn.Exec(`DELETE FROM sync_state WHERE artifact_id = ? AND target_system = ?`,
		artifactID, targetSystem)
	if err != nil {
		return wrapErr("deleting sync state for "+artifactID, err)
	}
	return nil
}

// HasSyncedPath reports whether any sync_state row names this exact path
// for the target system — i.e., whether this tool created the path before.
// Input to the destructive-action guard.
func (s *Store) HasSyncedPath(targetSystem, targetPath string) (bool, error) {
	var n int
	err := s.conn.QueryRow(`SELECT COUNT(*) FROM sync_state WHERE target_system = ? AND target_path = ?`,
		targetSystem, targetPath).Scan(&n)
	if err != nil {
		return false, wrapErr("checking synced path", err)
	}
	return n > 0, nil
}

// CountSyncedForTarget returns how many pairs are recorded for a target.
func (s *Store) CountSyncedForTarget(targetSystem string) (int, error) {
	var n int
	err := s.conn.QueryRow(`SELECT COUNT(*) FROM sync_state WHERE target_system = ? AND status = ?`,
		targetSystem, StateSynced).Scan(&n)
	if err != nil {
		return 0, wrapErr("counting sync state", err)
	}
	return n, nil
}

func scanSyncState(row rowScanner) (SyncState, error) {
	var st SyncState
	var syncedAt string
	if err := row.Scan(&st.ArtifactID, &st.TargetSystem, &st.TargetPath, &st.SyncMethod,
		&st.SyncedHash, &syncedAt, &st.Status, &st.ErrorMessage); err != nil {
		return SyncState{}, err
	}
	if t, err := time.Parse(timeFormat, syncedAt); err == nil {
		st.LastSyncedAt = t
	}
	return st, nil
}
