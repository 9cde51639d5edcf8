package engine

import (
	"fmt"

	"github.com/aicsync-labs/aicsync/internal/adapter"
	"github.com/aicsync-labs/aicsync/internal/artifact"
	"github.com/aicsync-labs/aicsync/internal/store"
)

// Diff re-scans the source, refreshes artifact hashes, and reports every
// (source, target) pair whose stored sync hash differs from the current
// content hash or which was never synced. No target-side file is created,
// updated, or deleted.
func (e *Engine) Diff(source, target string, types []artifact.Type) ([]store.OutOfSyncEntry, error) {
	src, err := e.registry.Get(source)
	if err != nil {
		return nil, err
	}
	if _, err := e.registry.Get(target); err != nil {
		return nil, err
	}
	if !src.IsConfigured(e.root) {
		return nil, fmt.Errorf("%w: %s has no configuration under %s", ErrSourceNotConfigured, source, e.root)
	}

	arts, err := src.ScanArtifacts(e.root, adapter.ScanOptions{Types: types})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", source, err)
	}
	for _, a := range arts {
		if err := e.store.UpsertArtifact(a); err != nil {
			return nil, err
		}
	}

	return e.store.OutOfSync(source, target, types)
}
