package store

// Table DDL. sync_state is keyed UNIQUE(artifact_id, target_system);
// sync_results carries no unique key beyond its rowid because it is an
// append-only log.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS artifacts (
    id            TEXT PRIMARY KEY,
    name          TEXT NOT NULL,
    type          TEXT NOT NULL,
    description   TEXT NOT NULL DEFAULT '',
    content_hash  TEXT NOT NULL,
    source_system TEXT NOT NULL,
    source_path   TEXT NOT NULL,
    metadata      TEXT NOT NULL DEFAULT '{}',
    updated_at    TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_artifacts_source
    ON artifacts(source_system, type);

CREATE TABLE IF NOT EXISTS sync_state (
    artifact_id    TEXT NOT NULL REFERENCES artifacts(id),
    target_system  TEXT NOT NULL,
    target_path    TEXT NOT NULL,
    sync_method    TEXT NOT NULL,
    synced_hash    TEXT NOT NULL,
    last_synced_at TEXT NOT NULL,
    status         TEXT NOT NULL,
    error_message  TEXT NOT NULL DEFAULT '',
    UNIQUE(artifact_id, target_system)
);

CREATE INDEX IF NOT EXISTS idx_sync_state_target
    ON sync_state(target_system);

CREATE TABLE IF NOT EXISTS sync_jobs (
    id             INTEGER PRIMARY KEY AUTOINCREMENT,
    source_system  TEXT NOT NULL,
    target_systems TEXT NOT NULL,
    artifact_types TEXT NOT NULL,
    dry_run        INTEGER NOT NULL DEFAULT 0,
    force          INTEGER NOT NULL DEFAULT 0,
    use_symlinks   INTEGER NOT NULL DEFAULT 0,
    started_at     TEXT NOT NULL,
    completed_at   TEXT,
    status         TEXT NOT NULL,
    summary        TEXT
);

CREATE TABLE IF NOT EXISTS sync_results (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    job_id        INTEGER NOT NULL REFERENCES sync_jobs(id),
    artifact_id   TEXT NOT NULL,
    artifact_name TEXT NOT NULL,
    artifact_type TEXT NOT NULL,
    source_system TEXT NOT NULL,
    target_system TEXT NOT NULL,
    operation     TEXT NOT NULL,
    success       INTEGER NOT NULL,
    message       TEXT NOT NULL DEFAULT '',
    error         TEXT NOT NULL DEFAULT '',
    source_path   TEXT NOT NULL,
    target_path   TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_sync_results_job
    ON sync_results(job_id);

CREATE TABLE IF NOT EXISTS mapping_rules (
    source_system  TEXT NOT NULL,
    target_system  TEXT NOT NULL,
    artifact_type  TEXT NOT NULL,
    use_symlink    INTEGER NOT NULL DEFAULT 0,
    transform_type TEXT NOT NULL DEFAULT '',
    UNIQUE(source_system, target_system, artifact_type)
);

CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

func (s *Store) initSchema() error {
	if _, err := s.conn.Exec(schemaSQL); err != nil {
		return wrapErr("initializing schema", err)
	}
	return nil
}
