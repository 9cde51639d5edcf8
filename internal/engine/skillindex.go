package engine

import (
	"fmt"

	"github.com/aicsync-labs/aicsync/internal/adapter"
	"github.com/aicsync-labs/aicsync/internal/artifact"
	"github.com/aicsync-labs/aicsync/internal/skillindex"
)

// GenerateSkillIndex scans the source's skill artifacts and builds the
// index document without mutating anything.
func (e *Engine) GenerateSkillIndex(source string) (*skillindex.Result, error) {
	src, err := e.registry.Get(source)
	if err != nil {
		return nil, err
	}
	if !src.IsConfigured(e.root) {
		return nil, fmt.Errorf("%w: %s has no configuration under %s", ErrSourceNotConfigured, source, e.root)
	}

	arts, err := src.ScanArtifacts(e.root, adapter.ScanOptions{Types: []artifact.Type{artifact.TypeSkill}})
	if err != nil {
		return nil, fmt.Errorf("scanning %s skills: %w", source, err)
	}
	return skillindex.Generate(arts), nil
}

// SkillIndexOutcome reports where the index landed per target.
type SkillIndexOutcome struct {
	Index *skillindex.Result
	// Written maps target system to the document path; targets with
	// native skill support or no index capability are absent.
	Written map[string]string
	Skipped map[string]string
}

// SyncSkillIndex writes the generated index to every target that lacks
// native skill support and can hold an index document. The target's own
// config file is patched to reference the index, idempotently.
func (e *Engine) SyncSkillIndex(source string, targets []string, dryRun bool) (*SkillIndexOutcome, error) {
	idx, err := e.GenerateSkillIndex(source)
	if err != nil {
		return nil, err
	}

	out := &SkillIndexOutcome{
		Index:   idx,
		Written: make(map[string]string),
		Skipped: make(map[string]string),
	}

	for _, target := range targets {
		if target == source {
			continue
		}
		tgt, err := e.registry.Get(target)
		if err != nil {
			out.Skipped[target] = err.Error()
			continue
		}
		if tgt.Capabilities().Skills {
			out.Skipped[target] = "has native skill support"
			continue
		}
		writer, ok := tgt.(adapter.SkillIndexWriter)
		if !ok {
			out.Skipped[target] = "cannot hold a skill index"
			continue
		}

		if dryRun {
			out.Written[target] = "(dry run)"
			continue
		}
		path, err := writer.WriteSkillIndex(e.root, []byte(idx.Content))
		if err != nil {
			out.Skipped[target] = err.Error()
			continue
		}
		out.Written[target] = path
	}
	return out, nil
}
