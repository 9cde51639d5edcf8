package fsdir

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/aicsync-labs/aicsync/internal/artifact"
)

// mcpFile is the on-disk shape shared by the supported systems: a single
// JSON document keyed by server name.
type mcpFile struct {
	MCPServers map[string]mcpEntry `json:"mcpServers"`
}

type mcpEntry struct {
	Command    string            `json:"command,omitempty"`
	Args       []string          `json:"args,omitempty"`
	Env        map[string]string `json:"env,omitempty"`
	URL        string            `json:"url,omitempty"`
	Transport  string            `json:"transport,omitempty"`
	SyncedFrom string            `json:"syncedFrom,omitempty"`
}

func (a *sysAdapter) mcpPath(projectRoot string) string {
	return filepath.Join(projectRoot, filepath.FromSlash(a.layout.MCPFile))
}

// readMCPServers loads the system's descriptor file. A missing file is an
// empty set, not an error.
func (a *sysAdapter) readMCPServers(projectRoot string) ([]artifact.MCPServer, error) {
	path := a.mcpPath(projectRoot)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var doc mcpFile
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	names := make([]string, 0, len(doc.MCPServers))
	for name := range doc.MCPServers {
		names = append(names, name)
	}
	sort.Strings(names)

	servers := make([]artifact.MCPServer, 0, len(names))
	for _, name := range names {
		e := doc.MCPServers[name]
		servers = append(servers, artifact.MCPServer{
			Name:       name,
			Command:    e.Command,
			Args:       e.Args,
			Env:        e.Env,
			URL:        e.URL,
			Transport:  e.Transport,
			System:     a.layout.System,
			SyncedFrom: e.SyncedFrom,
		})
	}
	return servers, nil
}

// writeMCPServers replaces the full descriptor set.
func (a *sysAdapter) writeMCPServers(projectRoot string, servers []artifact.MCPServer) error {
	doc := mcpFile{MCPServers: make(map[string]mcpEntry, len(servers))}
	for _, s := range servers {
		doc.MCPServers[s.Name] = mcpEntry{
			Command:    s.Command,
			Args:       s.Args,
			Env:        s.Env,
			URL:        s.URL,
			Transport:  s.Transport,
			SyncedFrom: s.SyncedFrom,
		}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling MCP servers: %w", err)
	}
	data = append(data, '\n')

	path := a.mcpPath(projectRoot)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating parent of %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
