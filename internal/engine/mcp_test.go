package engine

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func writeClaudeMCP(t *testing.T, root string) {
	t.Helper()
	writeSourceFile(t, root, ".mcp.json", `{
  "mcpServers": {
    "github": {"command": "npx", "args": ["-y", "server-github"]},
    "fetch": {"url": "https://example.com/mcp", "transport": "sse"}
  }
}`)
}

func readMCPFile(t *testing.T, path string) map[string]map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	var doc struct {
		MCPServers map[string]map[string]any `json:"mcpServers"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("parsing %s: %v", path, err)
	}
	return doc.MCPServers
}

func TestSyncMCPServers(t *testing.T) {
	e := newTestEngine(t)
	writeClaudeMCP(t, e.Root())

	res, err := e.SyncMCPServers(Options{Source: "claude", Targets: []string{"cursor", "codex"}})
	if err != nil {
		t.Fatalf("SyncMCPServers: %v", err)
	}
	if res.Synced != 2 || res.Failed != 0 {
		t.Fatalf("result = %+v", res)
	}

	for _, rel := range []string{".cursor/mcp.json", ".codex/mcp.json"} {
		servers := readMCPFile(t, filepath.Join(e.Root(), filepath.FromSlash(rel)))
		if len(servers) != 2 {
			t.Errorf("%s has %d servers, want 2", rel, len(servers))
		}
		for name, entry := range servers {
			if entry["syncedFrom"] != "claude" {
				t.Errorf("%s server %s syncedFrom = %v", rel, name, entry["syncedFrom"])
			}
		}
	}
}

func TestSyncMCPServersSkipsIncapableTarget(t *testing.T) {
	e := newTestEngine(t)
	writeClaudeMCP(t, e.Root())

	// Copilot and windsurf have no MCP descriptor file.
	res, err := e.SyncMCPServers(Options{Source: "claude", Targets: []string{"copilot", "windsurf"}})
	if err != nil {
		t.Fatal(err)
	}
	if res.Skipped != 2 || res.Synced != 0 {
		t.Fatalf("result = %+v", res)
	}
	if _, err := os.Stat(filepath.Join(e.Root(), ".github")); !os.IsNotExist(err) {
		t.Error("incapable target gained files")
	}
}

func TestSyncMCPServersSourceWithoutSupport(t *testing.T) {
	e := newTestEngine(t)

	res, err := e.SyncMCPServers(Options{Source: "copilot", Targets: []string{"cursor", "codex"}})
	if err != nil {
		t.Fatalf("SyncMCPServers: %v", err)
	}
	if res.Skipped != 2 || res.Synced != 0 || res.Failed != 0 {
		t.Errorf("result = %+v", res)
	}
}

func TestSyncMCPServersDryRun(t *testing.T) {
	e := newTestEngine(t)
	writeClaudeMCP(t, e.Root())

	res, err := e.SyncMCPServers(Options{Source: "claude", Targets: []string{"cursor"}, DryRun: true})
	if err != nil {
		t.Fatal(err)
	}
	if res.Synced != 1 {
		t.Fatalf("result = %+v", res)
	}
	if res.Details[0].Message != "dry run" {
		t.Errorf("detail = %+v", res.Details[0])
	}
	if _, err := os.Stat(filepath.Join(e.Root(), ".cursor")); !os.IsNotExist(err) {
		t.Error("dry run wrote target files")
	}
}

func TestSyncMCPServersEmptySource(t *testing.T) {
	e := newTestEngine(t)
	writeSourceFile(t, e.Root(), ".mcp.json", `{"mcpServers": {}}`)

	res, err := e.SyncMCPServers(Options{Source: "claude", Targets: []string{"cursor"}})
	if err != nil {
		t.Fatal(err)
	}
	if res.Synced != 1 {
		t.Fatalf("result = %+v", res)
	}
	// Full-replace semantics: an empty set still writes the file.
	servers := readMCPFile(t, filepath.Join(e.Root(), ".cursor", "mcp.json"))
	if len(servers) != 0 {
		t.Errorf("servers = %+v", servers)
	}
}
