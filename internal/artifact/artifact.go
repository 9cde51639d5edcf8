package artifact

import "fmt"

// Type identifies the kind of a syncable configuration unit.
type Type string

const (
	TypeSkill     Type = "skill"
	TypeAgent     Type = "agent"
	TypeCommand   Type = "command"
	TypeHook      Type = "hook"
	TypeRule      Type = "rule"
	TypeMCPServer Type = "mcpServer"
)

// AllTypes returns every artifact type in declaration order.
func AllTypes() []Type {
	return []Type{TypeSkill, TypeAgent, TypeCommand, TypeHook, TypeRule, TypeMCPServer}
}

// ParseType converts a string to a Type, returning false if invalid.
func ParseType(s string) (Type, bool) {
	switch s {
	case "skill", "skills":
		return TypeSkill, true
	case "agent", "agents":
		return TypeAgent, true
	case "command", "commands":
		return TypeCommand, true
	case "hook", "hooks":
		return TypeHook, true
	case "rule", "rules":
		return TypeRule, true
	case "mcpServer", "mcp-server", "mcp":
		return TypeMCPServer, true
	default:
		return "", false
	}
}

// ParseTypes converts a list of type strings, rejecting unknown values.
func ParseTypes(names []string) ([]Type, error) {
	types := make([]Type, 0, len(names))
	for _, n := range names {
		t, ok := ParseType(n)
		if !ok {
			return nil, fmt.Errorf("unknown artifact type %q", n)
		}
		types = append(types, t)
	}
	return types, nil
}

// Artifact is the canonical in-memory representation of one syncable unit.
// Identity is ID, stable across scans of the same logical artifact.
// ContentHash is a deterministic digest of the artifact's content and is the
// basis for all drift detection; target-side operations never mutate it.
type Artifact struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Type         Type              `json:"type"`
	Description  string            `json:"description,omitempty"`
	ContentHash  string            `json:"content_hash"`
	SourceSystem string            `json:"source_system"`
	SourcePath   string            `json:"source_path"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

// IsDirectoryShaped reports whether the artifact's on-disk unit is a
// directory rather than a single file. Skills are directory trees
// (SKILL.md plus supporting files); everything else is one file.
func (a *Artifact) IsDirectoryShaped() bool {
	return a.Type == TypeSkill
}

// MCPServer is a server connection descriptor, the artifact kind handled by
// the MCP sync flow. It is written as a full set, not diffed per item.
type MCPServer struct {
	Name      string            `json:"name" yaml:"name"`
	Command   string            `json:"command,omitempty" yaml:"command,omitempty"`
	Args      []string          `json:"args,omitempty" yaml:"args,omitempty"`
	Env       map[string]string `json:"env,omitempty" yaml:"env,omitempty"`
	URL       string            `json:"url,omitempty" yaml:"url,omitempty"`
	Transport string            `json:"transport,omitempty" yaml:"transport,omitempty"`
	// System and SyncedFrom identify the owning system and the provenance
	// tag rewritten during MCP sync.
	System     string `json:"system,omitempty" yaml:"system,omitempty"`
	SyncedFrom string `json:"synced_from,omitempty" yaml:"synced_from,omitempty"`
}
