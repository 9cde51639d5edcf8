package fsdir

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aicsync-labs/aicsync/internal/adapter"
	"github.com/aicsync-labs/aicsync/internal/artifact"
	"github.com/aicsync-labs/aicsync/internal/platform"
)

// sysAdapter is the shared layout-driven implementation.
type sysAdapter struct {
	layout Layout
}

// New returns the adapter for a layout. The dynamic type depends on what
// the layout supports, so MCP and skill-index support remain typed
// interface upgrades rather than runtime probes.
func New(l Layout) adapter.Adapter {
	base := &sysAdapter{layout: l}
	switch {
	case l.MCPFile != "" && l.IndexFile != "":
		return &mcpIndexAdapter{base}
	case l.MCPFile != "":
		return &mcpAdapter{base}
	case l.IndexFile != "":
		return &indexAdapter{base}
	default:
		return base
	}
}

func (a *sysAdapter) System() string { return a.layout.System }

func (a *sysAdapter) Capabilities() adapter.Capabilities { return a.layout.Capabilities() }

// IsConfigured reports whether the system's base directory exists.
func (a *sysAdapter) IsConfigured(projectRoot string) bool {
	info, err := os.Stat(filepath.Join(projectRoot, a.layout.BaseDir))
	return err == nil && info.IsDir()
}

// Initialize creates the base directory and one subdirectory per supported
// artifact type.
func (a *sysAdapter) Initialize(projectRoot string) error {
	base := filepath.Join(projectRoot, a.layout.BaseDir)
	if err := os.MkdirAll(base, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", base, err)
	}
	for _, sub := range a.layout.TypeDirs {
		dir := filepath.Join(base, sub)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	return nil
}

// ArtifactRoot returns the directory holding artifacts of type t, or ""
// when the type is unsupported.
func (a *sysAdapter) ArtifactRoot(projectRoot string, t artifact.Type) string {
	sub, ok := a.layout.TypeDirs[t]
	if !ok {
		return ""
	}
	return filepath.Join(projectRoot, a.layout.BaseDir, sub)
}

func (a *sysAdapter) ext(t artifact.Type) string {
	if t == artifact.TypeHook && a.layout.HookExt != "" {
		return a.layout.HookExt
	}
	return a.layout.FileExt
}

// ArtifactPath computes where an artifact lives for this system: a
// directory for skills, a single file for everything else.
func (a *sysAdapter) ArtifactPath(projectRoot string, art artifact.Artifact) string {
	root := a.ArtifactRoot(projectRoot, art.Type)
	if root == "" {
		return ""
	}
	if art.IsDirectoryShaped() {
		return filepath.Join(root, art.Name)
	}
	return filepath.Join(root, art.Name+a.ext(art.Type))
}

// WriteArtifact materializes art at its computed path. With SymlinkTarget
// set it links instead of copying. The caller is responsible for having
// cleared the destination; Overwrite removes a leftover file or link.
func (a *sysAdapter) WriteArtifact(projectRoot string, art artifact.Artifact, opts adapter.WriteOptions) error {
	dst := a.ArtifactPath(projectRoot, art)
	if dst == "" {
		return fmt.Errorf("system %s does not support %s artifacts", a.layout.System, art.Type)
	}

	if opts.CreateDirectories {
		if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
			return fmt.Errorf("creating parent of %s: %w", dst, err)
		}
	}

	if opts.Overwrite {
		if info, err := os.Lstat(dst); err == nil && !info.IsDir() {
			if err := os.Remove(dst); err != nil {
				return fmt.Errorf("removing existing %s: %w", dst, err)
			}
		}
	}

	if opts.SymlinkTarget != "" {
		if err := platform.CreateSymlink(opts.SymlinkTarget, dst); err != nil {
			return fmt.Errorf("linking %s: %w", dst, err)
		}
		return nil
	}

	if art.Metadata["transformed_from"] != "" {
		content, err := transformedContent(art)
		if err != nil {
			return err
		}
		if err := os.WriteFile(dst, content, 0644); err != nil {
			return fmt.Errorf("writing %s: %w", dst, err)
		}
		return nil
	}

	if art.IsDirectoryShaped() {
		if err := copyDir(art.SourcePath, dst); err != nil {
			return fmt.Errorf("copying %s to %s: %w", art.SourcePath, dst, err)
		}
		return nil
	}
	if err := copyFile(art.SourcePath, dst); err != nil {
		return fmt.Errorf("copying %s to %s: %w", art.SourcePath, dst, err)
	}
	return nil
}

// DeleteArtifact removes a previously materialized artifact. Symlinks are
// removed as links; directories recursively.
func (a *sysAdapter) DeleteArtifact(projectRoot, path string) error {
	if !filepath.IsAbs(path) {
		path = filepath.Join(projectRoot, path)
	}
	if platform.IsSymlink(path) {
		return platform.RemoveSymlink(path)
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return os.RemoveAll(path)
	}
	return os.Remove(path)
}

// mcpAdapter adds MCP descriptor support.
type mcpAdapter struct{ *sysAdapter }

func (a *mcpAdapter) ReadMCPServers(projectRoot string) ([]artifact.MCPServer, error) {
	return a.readMCPServers(projectRoot)
}

func (a *mcpAdapter) WriteMCPServers(projectRoot string, servers []artifact.MCPServer) error {
	return a.writeMCPServers(projectRoot, servers)
}

// indexAdapter adds skill-index support for systems without native skills.
type indexAdapter struct{ *sysAdapter }

func (a *indexAdapter) WriteSkillIndex(projectRoot string, content []byte) (string, error) {
	return a.writeSkillIndex(projectRoot, content)
}

// mcpIndexAdapter combines both upgrades.
type mcpIndexAdapter struct{ *sysAdapter }

func (a *mcpIndexAdapter) ReadMCPServers(projectRoot string) ([]artifact.MCPServer, error) {
	return a.readMCPServers(projectRoot)
}

func (a *mcpIndexAdapter) WriteMCPServers(projectRoot string, servers []artifact.MCPServer) error {
	return a.writeMCPServers(projectRoot, servers)
}

func (a *mcpIndexAdapter) WriteSkillIndex(projectRoot string, content []byte) (string, error) {
	return a.writeSkillIndex(projectRoot, content)
}
