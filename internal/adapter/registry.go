package adapter

import (
	"fmt"
	"sort"
)

// Known system ids. The set is closed: dispatch is a map over these
// variants, not reflection.
const (
	SystemClaude   = "claude"
	SystemCursor   = "cursor"
	SystemCopilot  = "copilot"
	SystemCodex    = "codex"
	SystemWindsurf = "windsurf"
)

// KnownSystems returns all registerable system ids.
func KnownSystems() []string {
	return []string{SystemClaude, SystemCursor, SystemCopilot, SystemCodex, SystemWindsurf}
}

// ParseSystem validates a system id string.
func ParseSystem(s string) (string, bool) {
	switch s {
	case SystemClaude, SystemCursor, SystemCopilot, SystemCodex, SystemWindsurf:
		return s, true
	default:
		return "", false
	}
}

// Registry holds the adapters available to one engine, keyed by system id.
type Registry struct {
	adapters map[string]Adapter
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{adapters: make(map[string]Adapter)}
}

// Register adds an adapter, replacing any previous one for the same system.
func (r *Registry) Register(a Adapter) {
	r.adapters[a.System()] = a
}

// Get returns the adapter for a system id.
func (r *Registry) Get(system string) (Adapter, error) {
	a, ok := r.adapters[system]
	if !ok {
		return nil, fmt.Errorf("unknown system %q (known: %v)", system, r.Systems())
	}
	return a, nil
}

// Systems returns the registered system ids in sorted order.
func (r *Registry) Systems() []string {
	ids := make([]string, 0, len(r.adapters))
	for id := range r.adapters {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
