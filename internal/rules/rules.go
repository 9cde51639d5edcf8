// Package rules loads the mapping-rules file (.aicsync/rules.yaml) that
// configures symlink eligibility and content transforms per
// (source, target, artifact type) triple, validates it against an embedded
// JSON schema, and seeds it into the state store.
package rules

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aicsync-labs/aicsync/internal/artifact"
	"github.com/aicsync-labs/aicsync/internal/branding"
	"github.com/aicsync-labs/aicsync/internal/store"
	"go.yaml.in/yaml/v3"
)

const rulesFileName = "rules.yaml"

// File is the parsed rules document.
type File struct {
	Version int    `yaml:"version"`
	Rules   []Rule `yaml:"rules"`
}

// Rule is one mapping-rule entry.
type Rule struct {
	Source     string `yaml:"source"`
	Target     string `yaml:"target"`
	Type       string `yaml:"type"`
	UseSymlink bool   `yaml:"use_symlink,omitempty"`
	Transform  string `yaml:"transform,omitempty"`
}

// FilePath returns the rules file location for a project root.
func FilePath(projectRoot string) string {
	return filepath.Join(projectRoot, branding.HomeDir(), rulesFileName)
}

// Load reads and validates the rules file. A missing file returns an empty
// document, not an error.
func Load(projectRoot string) (*File, error) {
	path := FilePath(projectRoot)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &File{Version: 1}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	result, err := Validate(data)
	if err != nil {
		return nil, fmt.Errorf("validating %s: %w", path, err)
	}
	if !result.Valid {
		return nil, fmt.Errorf("invalid rules file %s: %s", path, result.Issues[0].Message)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	for _, r := range f.Rules {
		if _, ok := artifact.ParseType(r.Type); !ok {
			return nil, fmt.Errorf("invalid rules file %s: unknown artifact type %q", path, r.Type)
		}
	}
	return &f, nil
}

// Seed upserts the file's rules into the store. Rules already present are
// replaced; rules absent from the file are left alone.
func Seed(st *store.Store, f *File) error {
	for _, r := range f.Rules {
		t, _ := artifact.ParseType(r.Type)
		rule := store.MappingRule{
			SourceSystem:  r.Source,
			TargetSystem:  r.Target,
			ArtifactType:  string(t),
			UseSymlink:    r.UseSymlink,
			TransformType: r.Transform,
		}
		if err := st.UpsertMappingRule(rule); err != nil {
			return err
		}
	}
	return nil
}

// SeedDefaults installs the default policy for a (source, target) pair when
// no rule exists yet: skills are symlinked, everything else is copied with
// no transform.
func SeedDefaults(st *store.Store, source, target string) error {
	_, err := st.GetMappingRule(source, target, string(artifact.TypeSkill))
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return err
	}
	return st.UpsertMappingRule(store.MappingRule{
		SourceSystem: source,
		TargetSystem: target,
		ArtifactType: string(artifact.TypeSkill),
		UseSymlink:   true,
	})
}
