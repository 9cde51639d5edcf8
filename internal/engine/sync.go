package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/aicsync-labs/aicsync/internal/adapter"
	"github.com/aicsync-labs/aicsync/internal/artifact"
	"github.com/aicsync-labs/aicsync/internal/store"
)

// Sync runs one job: scan the source once, upsert artifacts, then process
// each target independently. Only source misconfiguration or a scan failure
// aborts the job; per-target and per-artifact failures are recorded and the
// run continues.
func (e *Engine) Sync(opts Options) (*JobResult, error) {
	src, err := e.registry.Get(opts.Source)
	if err != nil {
		return nil, err
	}

	jobID, err := e.store.CreateJob(store.SyncJob{
		SourceSystem:  opts.Source,
		TargetSystems: opts.Targets,
		ArtifactTypes: typeStrings(opts.ArtifactTypes),
		DryRun:        opts.DryRun,
		Force:         opts.Force,
		UseSymlinks:   opts.UseSymlinks,
		StartedAt:     time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	res := &JobResult{JobID: jobID, DryRun: opts.DryRun}

	if !src.IsConfigured(e.root) {
		err := fmt.Errorf("%w: %s has no configuration under %s", ErrSourceNotConfigured, opts.Source, e.root)
		_ = e.store.CompleteJob(jobID, store.JobFailed, nil)
		return nil, err
	}

	arts, err := src.ScanArtifacts(e.root, adapter.ScanOptions{Types: opts.ArtifactTypes})
	if err != nil {
		_ = e.store.CompleteJob(jobID, store.JobFailed, nil)
		return nil, fmt.Errorf("scanning %s: %w", opts.Source, err)
	}

	if !opts.DryRun {
		for _, a := range arts {
			if err := e.store.UpsertArtifact(a); err != nil {
				_ = e.store.CompleteJob(jobID, store.JobFailed, nil)
				return nil, err
			}
		}
	}

	for _, target := range opts.Targets {
		if target == opts.Source {
			continue
		}
		e.syncTarget(jobID, res, src, target, arts, opts)
	}

	res.Status = store.JobCompleted
	if err := e.store.CompleteJob(jobID, store.JobCompleted, &res.Summary); err != nil {
		return nil, err
	}
	if !opts.DryRun {
		_ = e.store.SetSetting("last_sync", time.Now().UTC().Format(time.RFC3339))
	}
	return res, nil
}

// syncTarget processes every artifact for one target. A failure escaping
// the per-target block marks the remaining artifacts failed without
// touching other targets.
func (e *Engine) syncTarget(jobID int64, res *JobResult, src adapter.Adapter, target string, arts []artifact.Artifact, opts Options) {
	tgt, err := e.registry.Get(target)
	if err == nil && !tgt.IsConfigured(e.root) && !opts.DryRun {
		err = tgt.Initialize(e.root)
	}
	if err != nil {
		for _, a := range arts {
			r := store.SyncResult{
				JobID:        jobID,
				ArtifactID:   a.ID,
				ArtifactName: a.Name,
				ArtifactType: string(a.Type),
				SourceSystem: a.SourceSystem,
				TargetSystem: target,
				Operation:    store.OpSkip,
				Success:      false,
				Error:        fmt.Sprintf("initializing target: %v", err),
				SourcePath:   a.SourcePath,
			}
			e.appendResult(res, r, opts.DryRun)
			tally(&res.Summary, r)
		}
		return
	}

	for _, a := range arts {
		r := e.syncArtifact(jobID, src, tgt, a, opts)
		e.appendResult(res, r, opts.DryRun)
		tally(&res.Summary, r)
	}

	if opts.SyncDeletions {
		for _, r := range e.reconcileDeletions(jobID, opts.Source, tgt, arts, opts) {
			e.appendResult(res, r, opts.DryRun)
			tally(&res.Summary, r)
		}
	}
}

// syncArtifact makes every per-artifact decision: capability resolution,
// transform fallback, idempotency, symlink-vs-copy, materialization, and
// state bookkeeping. It never returns an error; failures become failed,
// non-fatal results.
func (e *Engine) syncArtifact(jobID int64, src, tgt adapter.Adapter, a artifact.Artifact, opts Options) store.SyncResult {
	r := store.SyncResult{
		JobID:        jobID,
		ArtifactID:   a.ID,
		ArtifactName: a.Name,
		ArtifactType: string(a.Type),
		SourceSystem: a.SourceSystem,
		TargetSystem: tgt.System(),
		SourcePath:   a.SourcePath,
	}

	caps := tgt.Capabilities()
	effective := a
	transformed := false

	if !caps.Supports(a.Type) {
		if !caps.Rules || !transformableToRule(a.Type) {
			r.Operation = store.OpSkip
			r.Success = true
			r.Message = fmt.Sprintf("artifact type %s not supported by %s", a.Type, tgt.System())
			return r
		}
		out, err := tgt.TransformArtifact(a, adapter.TransformOptions{TargetFormat: string(artifact.TypeRule)})
		if err != nil {
			r.Operation = store.OpSkip
			r.Success = false
			r.Error = fmt.Sprintf("transforming to rule: %v", err)
			return r
		}
		// Bookkeeping stays keyed by the original artifact id so future
		// scans reconcile even though the on-disk shape changed.
		out.ID = a.ID
		effective = out
		transformed = true
	}

	rule, err := e.store.GetMappingRule(a.SourceSystem, tgt.System(), string(a.Type))
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		r.Operation = store.OpSkip
		r.Success = false
		r.Error = fmt.Sprintf("loading mapping rule: %v", err)
		return r
	}

	if !transformed && rule.TransformType != "" {
		out, terr := tgt.TransformArtifact(a, adapter.TransformOptions{TargetFormat: rule.TransformType})
		if terr != nil {
			r.Operation = store.OpSkip
			r.Success = false
			r.Error = fmt.Sprintf("applying %s transform: %v", rule.TransformType, terr)
			return r
		}
		out.ID = a.ID
		effective = out
		transformed = true
	}

	prev, prevErr := e.store.GetSyncState(a.ID, tgt.System())
	hasPrev := prevErr == nil

	// Idempotency: an up-to-date pair is skipped unless forced.
	if hasPrev && !opts.Force && prev.Status == store.StateSynced && prev.SyncedHash == effective.ContentHash {
		r.Operation = store.OpSkip
		r.Success = true
		r.Message = "already up to date"
		return r
	}

	method := store.MethodCopy
	if rule.UseSymlink && opts.UseSymlinks && !transformed {
		method = store.MethodSymlink
	}

	switch {
	case method == store.MethodSymlink:
		r.Operation = store.OpSymlink
	case hasPrev:
		r.Operation = store.OpUpdate
	default:
		r.Operation = store.OpCreate
	}

	targetPath := tgt.ArtifactPath(e.root, effective)
	if targetPath == "" {
		r.Operation = store.OpSkip
		r.Success = false
		r.Error = fmt.Sprintf("no path for %s artifacts on %s", effective.Type, tgt.System())
		return r
	}
	r.TargetPath = e.relPath(targetPath)

	if opts.DryRun {
		r.Success = true
		r.Message = "dry run"
		return r
	}

	if err := e.materialize(tgt, effective, targetPath, method, opts.Force); err != nil {
		if errors.Is(err, ErrNativeDirectory) {
			// Guard trip: leave the directory untouched and record no
			// sync state, so an unmanaged path never becomes managed.
			r.Operation = store.OpSkip
			r.Success = false
			r.Error = err.Error()
			return r
		}
		r.Success = false
		r.Error = err.Error()
		_ = e.store.UpsertSyncState(store.SyncState{
			ArtifactID:   a.ID,
			TargetSystem: tgt.System(),
			TargetPath:   r.TargetPath,
			SyncMethod:   method,
			SyncedHash:   "",
			LastSyncedAt: time.Now().UTC(),
			Status:       store.StateFailed,
			ErrorMessage: err.Error(),
		})
		return r
	}

	if err := e.store.UpsertSyncState(store.SyncState{
		ArtifactID:   a.ID,
		TargetSystem: tgt.System(),
		TargetPath:   r.TargetPath,
		SyncMethod:   method,
		SyncedHash:   effective.ContentHash,
		LastSyncedAt: time.Now().UTC(),
		Status:       store.StateSynced,
	}); err != nil {
		r.Success = false
		r.Error = err.Error()
		return r
	}

	r.Success = true
	return r
}

// transformableToRule reports whether the rule fallback applies to a type.
func transformableToRule(t artifact.Type) bool {
	switch t {
	case artifact.TypeSkill, artifact.TypeAgent, artifact.TypeCommand:
		return true
	default:
		return false
	}
}

func tally(sum *store.Summary, r store.SyncResult) {
	sum.Total++
	if !r.Success {
		sum.Failed++
		return
	}
	switch r.Operation {
	case store.OpCreate:
		sum.Created++
	case store.OpUpdate:
		sum.Updated++
	case store.OpSymlink:
		sum.Symlinked++
	case store.OpSkip:
		sum.Skipped++
	case store.OpDelete:
		sum.Deleted++
	}
}
