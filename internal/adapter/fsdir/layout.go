// Package fsdir implements the Adapter contract for systems whose artifacts
// live in conventional directory layouts. One Layout row per system
// parameterizes the shared implementation, mirroring how each assistant
// arranges skills, agents, commands, hooks, and rules on disk.
package fsdir

import (
	"github.com/aicsync-labs/aicsync/internal/adapter"
	"github.com/aicsync-labs/aicsync/internal/artifact"
)

// Layout describes one system's on-disk conventions.
type Layout struct {
	System string

	// BaseDir is the system's dot-directory under the project root.
	BaseDir string

	// TypeDirs maps each natively supported artifact type to its
	// subdirectory under BaseDir. Absence means the type is unsupported.
	TypeDirs map[artifact.Type]string

	// FileExt is the extension for file-shaped artifacts (skills are
	// directories and ignore it). Hooks override via HookExt.
	FileExt string
	HookExt string

	// MCPFile, when set, is the project-relative path of the system's MCP
	// server descriptor file; the adapter then implements MCPReader and
	// MCPWriter.
	MCPFile string

	// IndexFile and ConfigFile, when set, mark a system without native
	// skill support that can hold a generated skill index: IndexFile is
	// where the document goes, ConfigFile is the system config patched to
	// reference it.
	IndexFile  string
	ConfigFile string
}

// Capabilities derives the capability set from the layout table.
func (l Layout) Capabilities() adapter.Capabilities {
	_, skills := l.TypeDirs[artifact.TypeSkill]
	_, agents := l.TypeDirs[artifact.TypeAgent]
	_, commands := l.TypeDirs[artifact.TypeCommand]
	_, hooks := l.TypeDirs[artifact.TypeHook]
	_, rules := l.TypeDirs[artifact.TypeRule]
	return adapter.Capabilities{
		Skills:     skills,
		Agents:     agents,
		Commands:   commands,
		Hooks:      hooks,
		Rules:      rules,
		MCPServers: l.MCPFile != "",
	}
}

// builtinLayouts is the closed set of known system conventions.
var builtinLayouts = []Layout{
	{
		System:  adapter.SystemClaude,
		BaseDir: ".claude",
		TypeDirs: map[artifact.Type]string{
			artifact.TypeSkill:   "skills",
			artifact.TypeAgent:   "agents",
			artifact.TypeCommand: "commands",
			artifact.TypeHook:    "hooks",
		},
		FileExt: ".md",
		HookExt: ".json",
		MCPFile: ".mcp.json",
	},
	{
		System:  adapter.SystemCursor,
		BaseDir: ".cursor",
		TypeDirs: map[artifact.Type]string{
			artifact.TypeRule: "rules",
		},
		FileExt:    ".md",
		MCPFile:    ".cursor/mcp.json",
		IndexFile:  ".cursor/rules/skills-index.md",
		ConfigFile: ".cursor/rules/project.md",
	},
	{
		System:  adapter.SystemCopilot,
		BaseDir: ".github",
		TypeDirs: map[artifact.Type]string{
			artifact.TypeRule: "instructions",
		},
		FileExt:    ".md",
		IndexFile:  ".github/instructions/skills-index.md",
		ConfigFile: ".github/copilot-instructions.md",
	},
	{
		System:  adapter.SystemCodex,
		BaseDir: ".codex",
		TypeDirs: map[artifact.Type]string{
			artifact.TypeRule: "rules",
		},
		FileExt:    ".md",
		MCPFile:    ".codex/mcp.json",
		IndexFile:  ".codex/rules/skills-index.md",
		ConfigFile: "AGENTS.md",
	},
	{
		System:  adapter.SystemWindsurf,
		BaseDir: ".windsurf",
		TypeDirs: map[artifact.Type]string{
			artifact.TypeRule: "rules",
		},
		FileExt:    ".md",
		IndexFile:  ".windsurf/rules/skills-index.md",
		ConfigFile: ".windsurfrules",
	},
}

// RegisterDefaults registers an adapter for every builtin layout.
func RegisterDefaults(reg *adapter.Registry) {
	for _, l := range builtinLayouts {
		reg.Register(New(l))
	}
}

// BuiltinLayout returns the layout for a known system id.
func BuiltinLayout(system string) (Layout, bool) {
	for _, l := range builtinLayouts {
		if l.System == system {
			return l, true
		}
	}
	return Layout{}, false
}
