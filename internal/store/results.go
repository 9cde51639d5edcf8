package store

// AppendResult appends one audit-trail row. Results are never updated or
// deleted.
func (s *Store) AppendResult(r SyncResult) error {
	_, err := s.conn.Exec(`
		INSERT INTO sync_results (job_id, artifact_id, artifact_name, artifact_type, source_system, target_system, operation, success, message, error, source_path, target_path)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.JobID, r.ArtifactID, r.ArtifactName, r.ArtifactType,
		r.SourceSystem, r.TargetSystem, r.Operation, boolInt(r.Success),
		r.Message, r.Error, r.SourcePath, r.TargetPath)
	if err != nil {
		return wrapErr("appending sync result", err)
	}
	return nil
}

// ListResultsForJob returns a job's results in insertion order.
func (s *Store) ListResultsForJob(jobID int64) ([]SyncResult, error) {
	rows, err := s.conn.Query(`
		SELECT id, job_id, artifact_id, artifact_name, artifact_type, source_system, target_system, operation, success, message, error, source_path, target_path
		FROM sync_results WHERE job_id = ? ORDER BY id ASC`, jobID)
	if err != nil {
		return nil, wrapErr("listing sync results", err)
	}
	defer rows.Close()

	var out []SyncResult
	for rows.Next() {
		var r SyncResult
		var success int
		if err := rows.Scan(&r.ID, &r.JobID, &r.ArtifactID, &r.ArtifactName, &r.ArtifactType,
			&r.SourceSystem, &r.TargetSystem, &r.Operation, &success,
			&r.Message, &r.Error, &r.SourcePath, &r.TargetPath); err != nil {
			return nil, err
		}
		r.Success = success != 0
		out = append(out, r)
	}
	return out, rows.Err()
}
