package store

import (
	"fmt"
	"time"
)

// Sync methods recorded in sync_state.
const (
	MethodCopy    = "copy"
	MethodSymlink = "symlink"
)

// Sync state statuses.
const (
	StateSynced = "synced"
	StateFailed = "failed"
)

// Job statuses.
const (
	JobRunning   = "running"
	JobCompleted = "completed"
	JobFailed    = "failed"
)

// Result operations.
const (
	OpCreate  = "create"
	OpUpdate  = "update"
	OpSkip    = "skip"
	OpSymlink = "symlink"
	OpDelete  = "delete"
)

// SyncState is the durable record of the last materialization of one
// artifact at one target. SyncedHash reflects the content hash as last
// successfully written; equality with the artifact's current hash means
// the pair is up to date.
type SyncState struct {
	ArtifactID   string
	TargetSystem string
	TargetPath   string
	SyncMethod   string
	SyncedHash   string
	LastSyncedAt time.Time
	Status       string
	ErrorMessage string
}

// Summary aggregates per-artifact outcomes for one job or one target.
type Summary struct {
	Total     int `json:"total"`
	Created   int `json:"created"`
	Updated   int `json:"updated"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
	Symlinked int `json:"symlinked"`
	Deleted   int `json:"deleted"`
}

// Add accumulates another summary into s.
func (s *Summary) Add(other Summary) {
	s.Total += other.Total
	s.Created += other.Created
	s.Updated += other.Updated
	s.Skipped += other.Skipped
	s.Failed += other.Failed
	s.Symlinked += other.Symlinked
	s.Deleted += other.Deleted
}

// String renders the summary in the form shown to users.
func (s Summary) String() string {
	return fmt.Sprintf("%d total: %d created, %d updated, %d symlinked, %d skipped, %d deleted, %d failed",
		s.Total, s.Created, s.Updated, s.Symlinked, s.Skipped, s.Deleted, s.Failed)
}

// SyncJob is one row of the append-only job history.
type SyncJob struct {
	ID            int64
	SourceSystem  string
	TargetSystems []string
	ArtifactTypes []string
	DryRun        bool
	Force         bool
	UseSymlinks   bool
	StartedAt     time.Time
	CompletedAt   *time.Time
	Status        string
	Summary       *Summary
}

// SyncResult is one row of the append-only audit trail: one artifact, one
// target, one job.
type SyncResult struct {
	ID           int64
	JobID        int64
	ArtifactID   string
	ArtifactName string
	ArtifactType string
	SourceSystem string
	TargetSystem string
	Operation    string
	Success      bool
	Message      string
	Error        string
	SourcePath   string
	TargetPath   string
}

// MappingRule configures how one artifact type moves between a specific
// source/target pair.
type MappingRule struct {
	SourceSystem  string
	TargetSystem  string
	ArtifactType  string
	UseSymlink    bool
	TransformType string
}

// OutOfSyncEntry is one drift report row from the diff query.
type OutOfSyncEntry struct {
	ArtifactID   string
	ArtifactName string
	ArtifactType string
	ContentHash  string
	SyncedHash   string // empty when never synced
	TargetPath   string
	NeverSynced  bool
}

func wrapErr(doing string, err error) error {
	return fmt.Errorf("%s: %w", doing, err)
}
