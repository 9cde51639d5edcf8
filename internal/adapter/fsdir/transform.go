package fsdir

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aicsync-labs/aicsync/internal/adapter"
	"github.com/aicsync-labs/aicsync/internal/artifact"
)

// TransformArtifact rewrites a skill, agent, or command as a rule-typed
// artifact for systems without the original capability. The result keeps
// the input's ID so sync-state bookkeeping reconciles against future source
// scans, and its content hash is computed from the transformed bytes so the
// idempotency check holds across transformed types.
func (a *sysAdapter) TransformArtifact(art artifact.Artifact, opts adapter.TransformOptions) (artifact.Artifact, error) {
	switch art.Type {
	case artifact.TypeSkill, artifact.TypeAgent, artifact.TypeCommand:
	default:
		return artifact.Artifact{}, fmt.Errorf("cannot transform %s artifact %q to a rule", art.Type, art.Name)
	}

	content, err := ruleContent(art)
	if err != nil {
		return artifact.Artifact{}, err
	}

	out := art
	out.Type = artifact.TypeRule
	out.ContentHash = artifact.HashBytes(content)
	out.Metadata = cloneMetadata(art.Metadata)
	out.Metadata["transformed_from"] = string(art.Type)
	return out, nil
}

// transformedContent regenerates the bytes for a transformed artifact at
// write time. Deterministic: the same source content always produces the
// same output.
func transformedContent(art artifact.Artifact) ([]byte, error) {
	return ruleContent(art)
}

// ruleContent wraps an artifact's body in the rule document shape: a
// heading, the provenance line, and the original body with its frontmatter
// stripped.
func ruleContent(art artifact.Artifact) ([]byte, error) {
	src := art.SourcePath
	if art.Type == artifact.TypeSkill || art.Metadata["transformed_from"] == string(artifact.TypeSkill) {
		src = filepath.Join(art.SourcePath, skillManifestName)
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return nil, fmt.Errorf("reading %s for transform: %w", src, err)
	}
	_, body, err := artifact.SplitFrontmatter(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s for transform: %w", src, err)
	}

	origType := art.Metadata["transformed_from"]
	if origType == "" {
		origType = string(art.Type)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s\n\n", art.Name)
	if art.Description != "" {
		fmt.Fprintf(&buf, "%s\n\n", art.Description)
	}
	fmt.Fprintf(&buf, "<!-- synced from %s %s/%s -->\n\n", origType, art.SourceSystem, art.Name)
	buf.Write(bytes.TrimSpace(body))
	buf.WriteString("\n")
	return buf.Bytes(), nil
}

func cloneMetadata(m map[string]string) map[string]string {
	out := make(map[string]string, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	return out
}
