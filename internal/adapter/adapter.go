// Package adapter defines the per-system gateway contract consumed by the
// sync engine. An Adapter knows how one assistant system lays out its
// artifacts on disk; the engine depends only on this interface and each
// adapter's declared capability set.
package adapter

import (
	"github.com/aicsync-labs/aicsync/internal/artifact"
)

// Capabilities declares which artifact types a system supports natively.
// The set is fixed per adapter, not discovered at runtime.
type Capabilities struct {
	Skills     bool `json:"skills"`
	Agents     bool `json:"agents"`
	Commands   bool `json:"commands"`
	Hooks      bool `json:"hooks"`
	Rules      bool `json:"rules"`
	MCPServers bool `json:"mcpServers"`
}

// Supports reports whether the capability set includes the given type.
func (c Capabilities) Supports(t artifact.Type) bool {
	switch t {
	case artifact.TypeSkill:
		return c.Skills
	case artifact.TypeAgent:
		return c.Agents
	case artifact.TypeCommand:
		return c.Commands
	case artifact.TypeHook:
		return c.Hooks
	case artifact.TypeRule:
		return c.Rules
	case artifact.TypeMCPServer:
		return c.MCPServers
	default:
		return false
	}
}

// ScanOptions narrows a scan to specific artifact types. Empty means all.
type ScanOptions struct {
	Types []artifact.Type
}

// Wants reports whether a scan limited by opts includes type t.
func (o ScanOptions) Wants(t artifact.Type) bool {
	if len(o.Types) == 0 {
		return true
	}
	for _, want := range o.Types {
		if want == t {
			return true
		}
	}
	return false
}

// TransformOptions parameterize TransformArtifact.
type TransformOptions struct {
	SourceFormat string
	TargetFormat string
}

// WriteOptions parameterize WriteArtifact.
type WriteOptions struct {
	Overwrite         bool
	CreateDirectories bool
	// SymlinkTarget, when non-empty, requests a symlink pointing at this
	// path instead of a content copy.
	SymlinkTarget string
}

// Adapter is the per-system gateway. Implementations must be safe for
// sequential use by one engine; the engine never calls them concurrently
// for the same system.
type Adapter interface {
	// System returns the system id this adapter serves (e.g., "claude").
	System() string

	// Capabilities returns the fixed artifact-type support set.
	Capabilities() Capabilities

	// IsConfigured reports whether the system's directory structure exists
	// under projectRoot.
	IsConfigured(projectRoot string) bool

	// Initialize creates the system's directory structure.
	Initialize(projectRoot string) error

	// ScanArtifacts discovers artifacts under projectRoot, computing each
	// one's content hash.
	ScanArtifacts(projectRoot string, opts ScanOptions) ([]artifact.Artifact, error)

	// TransformArtifact converts an artifact to a shape this system can
	// hold (e.g., a command rewritten as a rule). It must be deterministic:
	// identical input yields an identical content hash.
	TransformArtifact(a artifact.Artifact, opts TransformOptions) (artifact.Artifact, error)

	// ArtifactPath computes where an artifact of this shape lives under
	// projectRoot for this system.
	ArtifactPath(projectRoot string, a artifact.Artifact) string

	// ArtifactRoot returns the directory under which this system keeps
	// artifacts of the given type.
	ArtifactRoot(projectRoot string, t artifact.Type) string

	// WriteArtifact materializes an artifact at its computed path.
	WriteArtifact(projectRoot string, a artifact.Artifact, opts WriteOptions) error

	// DeleteArtifact removes a previously materialized artifact at path.
	DeleteArtifact(projectRoot, path string) error
}

// MCPReader is implemented by adapters whose system stores MCP server
// descriptors. Support is a compile-time-checkable interface upgrade, not a
// structural probe.
type MCPReader interface {
	ReadMCPServers(projectRoot string) ([]artifact.MCPServer, error)
}

// MCPWriter is implemented by adapters that can persist a full MCP server
// set. Writes carry full-replace semantics.
type MCPWriter interface {
	WriteMCPServers(projectRoot string, servers []artifact.MCPServer) error
}

// SkillIndexWriter is implemented by adapters for systems with no native
// skill concept that can hold a generated skill index document instead.
type SkillIndexWriter interface {
	// WriteSkillIndex writes the index document and idempotently patches
	// the system's own config file to reference it. Returns the document
	// path.
	WriteSkillIndex(projectRoot string, content []byte) (string, error)
}
