package fsdir

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aicsync-labs/aicsync/internal/adapter"
	"github.com/aicsync-labs/aicsync/internal/artifact"
)

func cursorAdapter(t *testing.T) adapter.Adapter {
	t.Helper()
	l, ok := BuiltinLayout(adapter.SystemCursor)
	if !ok {
		t.Fatal("no builtin cursor layout")
	}
	return New(l)
}

func TestTransformCommandToRule(t *testing.T) {
	src := filepath.Join(t.TempDir(), "deploy.md")
	writeFile(t, src, "---\ndescription: Ship it\n---\nrun the deploy steps\n")

	in := artifact.Artifact{
		ID:           "claude:command:deploy",
		Name:         "deploy",
		Type:         artifact.TypeCommand,
		Description:  "Ship it",
		SourceSystem: "claude",
		SourcePath:   src,
	}

	a := cursorAdapter(t)
	out, err := a.TransformArtifact(in, adapter.TransformOptions{TargetFormat: string(artifact.TypeRule)})
	if err != nil {
		t.Fatalf("TransformArtifact: %v", err)
	}

	if out.Type != artifact.TypeRule {
		t.Errorf("type = %s, want rule", out.Type)
	}
	if out.Metadata["transformed_from"] != "command" {
		t.Errorf("transformed_from = %q", out.Metadata["transformed_from"])
	}
	if out.ContentHash == "" || out.ContentHash == in.ContentHash {
		t.Error("content hash not recomputed from transformed bytes")
	}

	content, err := transformedContent(out)
	if err != nil {
		t.Fatalf("transformedContent: %v", err)
	}
	text := string(content)
	if !strings.Contains(text, "# deploy") {
		t.Errorf("missing heading:\n%s", text)
	}
	if !strings.Contains(text, "<!-- synced from command claude/deploy -->") {
		t.Errorf("missing provenance line:\n%s", text)
	}
	if strings.Contains(text, "description: Ship it") {
		t.Errorf("frontmatter not stripped:\n%s", text)
	}
	if out.ContentHash != artifact.HashBytes(content) {
		t.Error("hash does not match regenerated content")
	}
}

func TestTransformDeterministic(t *testing.T) {
	src := filepath.Join(t.TempDir(), "deploy.md")
	writeFile(t, src, "body\n")
	in := artifact.Artifact{Name: "deploy", Type: artifact.TypeCommand, SourceSystem: "claude", SourcePath: src}

	a := cursorAdapter(t)
	first, err := a.TransformArtifact(in, adapter.TransformOptions{})
	if err != nil {
		t.Fatal(err)
	}
	second, err := a.TransformArtifact(in, adapter.TransformOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if first.ContentHash != second.ContentHash {
		t.Errorf("transform not deterministic: %s vs %s", first.ContentHash, second.ContentHash)
	}
}

func TestTransformSkillUsesManifest(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "code-review")
	writeFile(t, filepath.Join(dir, "SKILL.md"), "---\nname: code-review\n---\nreview steps\n")
	writeFile(t, filepath.Join(dir, "extra.md"), "supporting file\n")

	in := artifact.Artifact{Name: "code-review", Type: artifact.TypeSkill, SourceSystem: "claude", SourcePath: dir}

	a := cursorAdapter(t)
	out, err := a.TransformArtifact(in, adapter.TransformOptions{})
	if err != nil {
		t.Fatalf("TransformArtifact: %v", err)
	}
	content, err := transformedContent(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(content), "review steps") {
		t.Errorf("manifest body missing:\n%s", content)
	}
	if strings.Contains(string(content), "supporting file") {
		t.Errorf("supporting files should not flow into the rule:\n%s", content)
	}
}

func TestTransformRejectsNonTransformableTypes(t *testing.T) {
	a := cursorAdapter(t)
	for _, typ := range []artifact.Type{artifact.TypeHook, artifact.TypeRule, artifact.TypeMCPServer} {
		in := artifact.Artifact{Name: "x", Type: typ}
		if _, err := a.TransformArtifact(in, adapter.TransformOptions{}); err == nil {
			t.Errorf("expected error transforming %s", typ)
		}
	}
}

func TestWriteTransformedArtifact(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, ".claude", "commands", "deploy.md")
	writeFile(t, src, "deploy body\n")

	in := artifact.Artifact{
		ID: "claude:command:deploy", Name: "deploy", Type: artifact.TypeCommand,
		SourceSystem: "claude", SourcePath: src,
	}
	a := cursorAdapter(t)
	out, err := a.TransformArtifact(in, adapter.TransformOptions{})
	if err != nil {
		t.Fatal(err)
	}

	if err := a.WriteArtifact(root, out, adapter.WriteOptions{Overwrite: true, CreateDirectories: true}); err != nil {
		t.Fatalf("WriteArtifact: %v", err)
	}

	written, err := os.ReadFile(filepath.Join(root, ".cursor", "rules", "deploy.md"))
	if err != nil {
		t.Fatalf("reading written rule: %v", err)
	}
	if artifact.HashBytes(written) != out.ContentHash {
		t.Error("written bytes do not match the transformed hash")
	}
}
