package fsdir

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aicsync-labs/aicsync/internal/adapter"
	"github.com/aicsync-labs/aicsync/internal/artifact"
)

const skillManifestName = "SKILL.md"

// descriptionLimit caps derived descriptions when no explicit one exists.
const descriptionLimit = 100

// ScanArtifacts discovers artifacts under projectRoot for every supported
// type the scan asks for. Results are sorted by (type, name) so repeated
// scans are deterministic.
func (a *sysAdapter) ScanArtifacts(projectRoot string, opts adapter.ScanOptions) ([]artifact.Artifact, error) {
	var out []artifact.Artifact

	for _, t := range artifact.AllTypes() {
		if t == artifact.TypeMCPServer || !opts.Wants(t) {
			continue
		}
		root := a.ArtifactRoot(projectRoot, t)
		if root == "" {
			continue
		}
		arts, err := a.scanType(root, t)
		if err != nil {
			return nil, err
		}
		out = append(out, arts...)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Type != out[j].Type {
			return out[i].Type < out[j].Type
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (a *sysAdapter) scanType(root string, t artifact.Type) ([]artifact.Artifact, error) {
	entries, err := os.ReadDir(root)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", root, err)
	}

	var out []artifact.Artifact
	for _, entry := range entries {
		path := filepath.Join(root, entry.Name())

		if t == artifact.TypeSkill {
			if !entry.IsDir() {
				continue
			}
			art, ok, err := a.scanSkill(path, entry.Name())
			if err != nil {
				return nil, err
			}
			if ok {
				out = append(out, art)
			}
			continue
		}

		ext := a.ext(t)
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ext) {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ext)
		art, err := a.scanFile(path, t, name)
		if err != nil {
			return nil, err
		}
		out = append(out, art)
	}
	return out, nil
}

// scanSkill reads a skill directory. Directories without a SKILL.md are not
// skills and are skipped rather than treated as errors.
func (a *sysAdapter) scanSkill(dir, name string) (artifact.Artifact, bool, error) {
	manifest := filepath.Join(dir, skillManifestName)
	data, err := os.ReadFile(manifest)
	if os.IsNotExist(err) {
		return artifact.Artifact{}, false, nil
	}
	if err != nil {
		return artifact.Artifact{}, false, fmt.Errorf("reading %s: %w", manifest, err)
	}

	fm, body, err := artifact.SplitFrontmatter(data)
	if err != nil {
		return artifact.Artifact{}, false, fmt.Errorf("parsing %s: %w", manifest, err)
	}

	hash, err := artifact.HashDir(dir)
	if err != nil {
		return artifact.Artifact{}, false, err
	}

	art := artifact.Artifact{
		ID:           artifact.MakeID(a.layout.System, artifact.TypeSkill, name),
		Name:         name,
		Type:         artifact.TypeSkill,
		ContentHash:  hash,
		SourceSystem: a.layout.System,
		SourcePath:   dir,
	}
	if fm != nil && fm.Description != "" {
		art.Description = fm.Description
	} else {
		art.Description = artifact.FirstProseLine(string(body), descriptionLimit)
	}
	if fm != nil && fm.Version != "" {
		art.Metadata = map[string]string{"version": fm.Version}
	}
	return art, true, nil
}

func (a *sysAdapter) scanFile(path string, t artifact.Type, name string) (artifact.Artifact, error) {
	hash, err := artifact.HashFile(path)
	if err != nil {
		return artifact.Artifact{}, err
	}

	art := artifact.Artifact{
		ID:           artifact.MakeID(a.layout.System, t, name),
		Name:         name,
		Type:         t,
		ContentHash:  hash,
		SourceSystem: a.layout.System,
		SourcePath:   path,
	}

	// Hooks are JSON and carry no frontmatter.
	if t == artifact.TypeHook {
		return art, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return artifact.Artifact{}, fmt.Errorf("reading %s: %w", path, err)
	}
	fm, body, err := artifact.SplitFrontmatter(data)
	if err != nil {
		return artifact.Artifact{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	if fm != nil && fm.Description != "" {
		art.Description = fm.Description
	} else {
		art.Description = artifact.FirstProseLine(string(body), descriptionLimit)
	}
	return art, nil
}
