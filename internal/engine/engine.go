// Package engine drives artifact synchronization: one source system scanned
// once, then each target processed independently with capability checks,
// transformation, symlink-vs-copy policy, idempotency checks, and deletion
// reconciliation. The engine holds no durable state of its own — every
// decision is reconstructable from the state store plus a fresh scan.
package engine

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/aicsync-labs/aicsync/internal/adapter"
	"github.com/aicsync-labs/aicsync/internal/artifact"
	"github.com/aicsync-labs/aicsync/internal/store"
)

// ErrSourceNotConfigured is the one fatal configuration error: the source
// system has no directory structure to scan.
var ErrSourceNotConfigured = errors.New("source system not configured")

// ErrNativeDirectory marks a destructive-action guard trip: the target path
// is a directory this tool did not create.
var ErrNativeDirectory = errors.New("target directory contains native content")

// Engine coordinates the store, the adapter registry, and one project root.
// The store is constructor-injected; the caller owns its lifecycle.
type Engine struct {
	store    *store.Store
	registry *adapter.Registry
	root     string
}

// New returns an engine for a project root.
func New(st *store.Store, reg *adapter.Registry, projectRoot string) *Engine {
	return &Engine{store: st, registry: reg, root: projectRoot}
}

// Store exposes the injected store for read-only CLI queries.
func (e *Engine) Store() *store.Store { return e.store }

// Registry exposes the adapter registry.
func (e *Engine) Registry() *adapter.Registry { return e.registry }

// Root returns the project root.
func (e *Engine) Root() string { return e.root }

// Options configure one sync run.
type Options struct {
	Source        string
	Targets       []string
	ArtifactTypes []artifact.Type
	DryRun        bool
	Force         bool
	// UseSymlinks globally enables symlink materialization; a mapping rule
	// must also request it per type. Disabled forces copies everywhere.
	UseSymlinks   bool
	SyncDeletions bool
}

// JobResult is the outcome of one Sync invocation.
type JobResult struct {
	JobID   int64
	DryRun  bool
	Status  string
	Summary store.Summary
	Results []store.SyncResult
}

// relPath stores target paths relative to the project root with forward
// slashes so state survives project relocation.
func (e *Engine) relPath(path string) string {
	rel, err := filepath.Rel(e.root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// absPath resolves a stored target path back under the project root.
func (e *Engine) absPath(stored string) string {
	p := filepath.FromSlash(stored)
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(e.root, p)
}

func typeStrings(types []artifact.Type) []string {
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = string(t)
	}
	return out
}

func containsType(types []artifact.Type, t artifact.Type) bool {
	for _, want := range types {
		if want == t {
			return true
		}
	}
	return false
}

// appendResult records r in the audit trail unless the run is a dry run,
// then adds it to the in-memory result set either way.
func (e *Engine) appendResult(res *JobResult, r store.SyncResult, dryRun bool) {
	if !dryRun {
		if err := e.store.AppendResult(r); err != nil {
			// The audit row is best-effort once the sync itself succeeded;
			// surface the problem on the result instead of aborting.
			r.Error = fmt.Sprintf("recording result: %v", err)
		}
	}
	res.Results = append(res.Results, r)
}
