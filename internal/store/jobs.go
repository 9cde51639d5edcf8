package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

// CreateJob appends a running job row and returns its id. Dry-run jobs are
// recorded too, flagged, so history distinguishes them.
func (s *Store) CreateJob(job SyncJob) (int64, error) {
	targets, err := json.Marshal(job.TargetSystems)
	if err != nil {
		return 0, wrapErr("marshaling job targets", err)
	}
	types, err := json.Marshal(job.ArtifactTypes)
	if err != nil {
		return 0, wrapErr("marshaling job types", err)
	}

	res, err := s.conn.Exec(`
		INSERT INTO sync_jobs (source_system, target_systems, artifact_types, dry_run, force, use_symlinks, started_at, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		job.SourceSystem, string(targets), string(types),
		boolInt(job.DryRun), boolInt(job.Force), boolInt(job.UseSymlinks),
		job.StartedAt.UTC().Format(timeFormat), JobRunning)
	if err != nil {
		return 0, wrapErr("creating sync job", err)
	}
	return res.LastInsertId()
}

// CompleteJob updates a job row exactly once at job end with its final
// status and aggregate summary. The row is immutable thereafter.
func (s *Store) CompleteJob(id int64, status string, summary *Summary) error {
	var summaryJSON any
	if summary != nil {
		data, err := json.Marshal(summary)
		if err != nil {
			return wrapErr("marshaling job summary", err)
		}
		summaryJSON = string(data)
	}

	_, err := s.conn.Exec(`
		UPDATE sync_jobs SET status = ?, summary = ?, completed_at = ?
		WHERE id = ?`,
		status, summaryJSON, time.Now().UTC().Format(timeFormat), id)
	if err != nil {
		return wrapErr("completing sync job", err)
	}
	return nil
}

// GetJob returns one job row by id.
func (s *Store) GetJob(id int64) (SyncJob, error) {
	row := s.conn.QueryRow(`
		SELECT id, source_system, target_systems, artifact_types, dry_run, force, use_symlinks, started_at, completed_at, status, summary
		FROM sync_jobs WHERE id = ?`, id)
	job, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return SyncJob{}, ErrNotFound
	}
	return job, err
}

// ListJobs returns up to limit jobs, newest first.
func (s *Store) ListJobs(limit int) ([]SyncJob, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.conn.Query(`
		SELECT id, source_system, target_systems, artifact_types, dry_run, force, use_symlinks, started_at, completed_at, status, summary
		FROM sync_jobs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, wrapErr("listing sync jobs", err)
	}
	defer rows.Close()

	var out []SyncJob
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, job)
	}
	return out, rows.Err()
}

func scanJob(row rowScanner) (SyncJob, error) {
	var job SyncJob
	var targets, types, startedAt string
	var completedAt, summary sql.NullString
	var dryRun, force, useSymlinks int
	if err := row.Scan(&job.ID, &job.SourceSystem, &targets, &types,
		&dryRun, &force, &useSymlinks, &startedAt, &completedAt, &job.Status, &summary); err != nil {
		return SyncJob{}, err
	}

	job.DryRun = dryRun != 0
	job.Force = force != 0
	job.UseSymlinks = useSymlinks != 0
	if err := json.Unmarshal([]byte(targets), &job.TargetSystems); err != nil {
		return SyncJob{}, wrapErr("parsing job targets", err)
	}
	if err := json.Unmarshal([]byte(types), &job.ArtifactTypes); err != nil {
		return SyncJob{}, wrapErr("parsing job types", err)
	}
	if t, err := time.Parse(timeFormat, startedAt); err == nil {
		job.StartedAt = t
	}
	if completedAt.Valid {
		if t, err := time.Parse(timeFormat, completedAt.String); err == nil {
			job.CompletedAt = &t
		}
	}
	if summary.Valid && summary.String != "" {
		var sum Summary
		if err := json.Unmarshal([]byte(summary.String), &sum); err != nil {
			return SyncJob{}, wrapErr("parsing job summary", err)
		}
		job.Summary = &sum
	}
	return job, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
