package rules

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aicsync-labs/aicsync/internal/store"
)

func writeRules(t *testing.T, root, content string) {
	t.Helper()
	path := FilePath(root)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	f, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if f.Version != 1 || len(f.Rules) != 0 {
		t.Errorf("empty file = %+v", f)
	}
}

func TestLoadValidFile(t *testing.T) {
	root := t.TempDir()
	writeRules(t, root, `version: 1
rules:
  - source: claude
    target: cursor
    type: skill
    use_symlink: true
  - source: claude
    target: cursor
    type: command
    transform: rule
`)

	f, err := Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(f.Rules) != 2 {
		t.Fatalf("got %d rules, want 2", len(f.Rules))
	}
	if !f.Rules[0].UseSymlink || f.Rules[0].Type != "skill" {
		t.Errorf("first rule = %+v", f.Rules[0])
	}
	if f.Rules[1].Transform != "rule" {
		t.Errorf("second rule = %+v", f.Rules[1])
	}
}

func TestLoadRejectsInvalidFiles(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing version", "rules: []\n"},
		{"wrong version", "version: 2\nrules: []\n"},
		{"missing target", "version: 1\nrules:\n  - source: claude\n    type: skill\n"},
		{"bad type", "version: 1\nrules:\n  - source: claude\n    target: cursor\n    type: persona\n"},
		{"unknown field", "version: 1\nrules: []\nextra: true\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeRules(t, root, tt.content)
			if _, err := Load(root); err == nil {
				t.Errorf("Load accepted invalid file:\n%s", tt.content)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	good := []byte("version: 1\nrules:\n  - source: claude\n    target: cursor\n    type: agent\n")
	res, err := Validate(good)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !res.Valid {
		t.Errorf("expected valid, got issues: %+v", res.Issues)
	}

	bad := []byte("version: 1\nrules:\n  - source: \"\"\n    target: cursor\n    type: agent\n")
	res, err = Validate(bad)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if res.Valid {
		t.Error("expected invalid for empty source")
	}
	if len(res.Issues) == 0 {
		t.Error("expected at least one issue")
	}
}

func TestSeed(t *testing.T) {
	s := newTestStore(t)

	f := &File{Version: 1, Rules: []Rule{
		{Source: "claude", Target: "cursor", Type: "skills", UseSymlink: true},
		{Source: "claude", Target: "cursor", Type: "command", Transform: "rule"},
	}}
	if err := Seed(s, f); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	// Plural type names normalize to the canonical singular.
	rule, err := s.GetMappingRule("claude", "cursor", "skill")
	if err != nil {
		t.Fatalf("GetMappingRule: %v", err)
	}
	if !rule.UseSymlink {
		t.Errorf("rule = %+v", rule)
	}

	rule, err = s.GetMappingRule("claude", "cursor", "command")
	if err != nil {
		t.Fatal(err)
	}
	if rule.TransformType != "rule" {
		t.Errorf("rule = %+v", rule)
	}
}

func TestSeedDefaults(t *testing.T) {
	s := newTestStore(t)

	if err := SeedDefaults(s, "claude", "cursor"); err != nil {
		t.Fatalf("SeedDefaults: %v", err)
	}
	rule, err := s.GetMappingRule("claude", "cursor", "skill")
	if err != nil {
		t.Fatal(err)
	}
	if !rule.UseSymlink {
		t.Error("default skill rule should request a symlink")
	}

	// An existing rule is left alone.
	if err := s.UpsertMappingRule(store.MappingRule{
		SourceSystem: "claude", TargetSystem: "cursor", ArtifactType: "skill", UseSymlink: false,
	}); err != nil {
		t.Fatal(err)
	}
	if err := SeedDefaults(s, "claude", "cursor"); err != nil {
		t.Fatal(err)
	}
	rule, err = s.GetMappingRule("claude", "cursor", "skill")
	if err != nil {
		t.Fatal(err)
	}
	if rule.UseSymlink {
		t.Error("SeedDefaults overwrote an existing rule")
	}
}

func TestLoadThenSeed(t *testing.T) {
	root := t.TempDir()
	writeRules(t, root, "version: 1\nrules:\n  - source: claude\n    target: codex\n    type: agent\n")

	f, err := Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	s := newTestStore(t)
	if err := Seed(s, f); err != nil {
		t.Fatal(err)
	}
	if _, err := s.GetMappingRule("claude", "codex", "agent"); err != nil {
		t.Errorf("seeded rule not found: %v", err)
	}
	if _, err := s.GetMappingRule("claude", "codex", "command"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("unexpected rule in store: %v", err)
	}
}
