package engine

import (
	"errors"
	"fmt"

	"github.com/aicsync-labs/aicsync/internal/adapter"
	"github.com/aicsync-labs/aicsync/internal/artifact"
	"github.com/aicsync-labs/aicsync/internal/store"
)

// reconcileDeletions removes the mirrored counterparts of artifacts that
// vanished from the source since the last successful sync. Artifacts
// outside the run's type filter are out of scope so a narrow run never
// deletes types it was not asked to manage. Delete failures are recorded
// and reconciliation continues.
func (e *Engine) reconcileDeletions(jobID int64, source string, tgt adapter.Adapter, current []artifact.Artifact, opts Options) []store.SyncResult {
	states, err := e.store.ListSyncStateForTarget(tgt.System())
	if err != nil {
		return []store.SyncResult{{
			JobID:        jobID,
			TargetSystem: tgt.System(),
			SourceSystem: source,
			Operation:    store.OpDelete,
			Success:      false,
			Error:        fmt.Sprintf("listing sync state: %v", err),
		}}
	}

	currentIDs := make(map[string]bool, len(current))
	for _, a := range current {
		currentIDs[a.ID] = true
	}

	var out []store.SyncResult
	for _, st := range states {
		if currentIDs[st.ArtifactID] {
			continue
		}

		a, err := e.store.GetArtifact(st.ArtifactID)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil || a.SourceSystem != source {
			continue
		}
		if len(opts.ArtifactTypes) > 0 && !containsType(opts.ArtifactTypes, a.Type) {
			continue
		}

		r := store.SyncResult{
			JobID:        jobID,
			ArtifactID:   a.ID,
			ArtifactName: a.Name,
			ArtifactType: string(a.Type),
			SourceSystem: source,
			TargetSystem: tgt.System(),
			Operation:    store.OpDelete,
			SourcePath:   a.SourcePath,
			TargetPath:   st.TargetPath,
		}

		if opts.DryRun {
			r.Success = true
			r.Message = "dry run"
			out = append(out, r)
			continue
		}

		if err := tgt.DeleteArtifact(e.root, e.absPath(st.TargetPath)); err != nil {
			r.Success = false
			r.Error = fmt.Sprintf("deleting %s: %v", st.TargetPath, err)
			out = append(out, r)
			continue
		}
		if err := e.store.DeleteSyncState(st.ArtifactID, tgt.System()); err != nil {
			r.Success = false
			r.Error = err.Error()
			out = append(out, r)
			continue
		}

		r.Success = true
		r.Message = "source artifact no longer exists"
		out = append(out, r)
	}
	return out
}
