package engine

import (
	"fmt"
	"os"

	"github.com/aicsync-labs/aicsync/internal/adapter"
	"github.com/aicsync-labs/aicsync/internal/artifact"
	"github.com/aicsync-labs/aicsync/internal/platform"
	"github.com/aicsync-labs/aicsync/internal/store"
)

// materialize clears whatever occupies targetPath under the destructive-
// action guard, then writes the artifact via the target adapter using the
// requested method.
func (e *Engine) materialize(tgt adapter.Adapter, a artifact.Artifact, targetPath, method string, force bool) error {
	if err := e.clearTarget(tgt, targetPath, force); err != nil {
		return err
	}

	opts := adapter.WriteOptions{Overwrite: true, CreateDirectories: true}
	if method == store.MethodSymlink {
		// Directory-shaped artifacts link the whole directory; the target
		// is stored relative to the link's parent so the mirrored tree
		// keeps resolving if the project is relocated.
		opts.SymlinkTarget = platform.RelativeLink(a.SourcePath, targetPath)
	}
	return tgt.WriteArtifact(e.root, a, opts)
}

// clearTarget removes the current occupant of targetPath when that is safe:
// symlinks and plain files are never native user content; a real directory
// is removed only when a prior sync_state row names this exact path for
// this target (this tool created it) or force is set. Otherwise the guard
// trips and the path is left untouched.
func (e *Engine) clearTarget(tgt adapter.Adapter, targetPath string, force bool) error {
	info, err := os.Lstat(targetPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("inspecting %s: %w", targetPath, err)
	}

	if info.Mode()&os.ModeSymlink != 0 {
		if err := platform.RemoveSymlink(targetPath); err != nil {
			return fmt.Errorf("removing symlink %s: %w", targetPath, err)
		}
		return nil
	}

	if !info.IsDir() {
		if err := os.Remove(targetPath); err != nil {
			return fmt.Errorf("removing %s: %w", targetPath, err)
		}
		return nil
	}

	if !force {
		managed, err := e.store.HasSyncedPath(tgt.System(), e.relPath(targetPath))
		if err != nil {
			return err
		}
		if !managed {
			return fmt.Errorf("%w at %s; re-run with --force to replace it", ErrNativeDirectory, targetPath)
		}
	}

	if err := os.RemoveAll(targetPath); err != nil {
		return fmt.Errorf("removing directory %s: %w", targetPath, err)
	}
	return nil
}
