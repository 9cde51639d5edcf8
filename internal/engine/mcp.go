package engine

import (
	"fmt"

	"github.com/aicsync-labs/aicsync/internal/adapter"
	"github.com/aicsync-labs/aicsync/internal/artifact"
)

// MCPSyncResult summarizes one MCP server sync run.
type MCPSyncResult struct {
	Synced  int         `json:"synced"`
	Skipped int         `json:"skipped"`
	Failed  int         `json:"failed"`
	Details []MCPDetail `json:"details"`
}

// MCPDetail is the outcome for one target system.
type MCPDetail struct {
	Target  string `json:"target"`
	Servers int    `json:"servers"`
	Status  string `json:"status"` // synced, skipped, failed
	Message string `json:"message,omitempty"`
}

// SyncMCPServers mirrors the source's MCP server descriptors to every
// capable target with full-replace semantics. Each descriptor is rewritten
// to carry the target system id and a provenance tag. Targets without the
// capability are skipped; so is the whole run when the source cannot be
// read.
func (e *Engine) SyncMCPServers(opts Options) (*MCPSyncResult, error) {
	src, err := e.registry.Get(opts.Source)
	if err != nil {
		return nil, err
	}

	res := &MCPSyncResult{}

	reader, ok := src.(adapter.MCPReader)
	if !ok || !src.Capabilities().MCPServers {
		for _, target := range opts.Targets {
			res.Skipped++
			res.Details = append(res.Details, MCPDetail{
				Target:  target,
				Status:  "skipped",
				Message: fmt.Sprintf("source %s has no MCP server support", opts.Source),
			})
		}
		return res, nil
	}

	servers, err := reader.ReadMCPServers(e.root)
	if err != nil {
		return nil, fmt.Errorf("reading MCP servers from %s: %w", opts.Source, err)
	}

	for _, target := range opts.Targets {
		if target == opts.Source {
			continue
		}
		detail := e.syncMCPTarget(target, opts, servers)
		switch detail.Status {
		case "synced":
			res.Synced++
		case "skipped":
			res.Skipped++
		default:
			res.Failed++
		}
		res.Details = append(res.Details, detail)
	}
	return res, nil
}

func (e *Engine) syncMCPTarget(target string, opts Options, servers []artifact.MCPServer) MCPDetail {
	tgt, err := e.registry.Get(target)
	if err != nil {
		return MCPDetail{Target: target, Status: "failed", Message: err.Error()}
	}

	writer, ok := tgt.(adapter.MCPWriter)
	if !ok || !tgt.Capabilities().MCPServers {
		return MCPDetail{
			Target:  target,
			Status:  "skipped",
			Message: fmt.Sprintf("%s has no MCP server support", target),
		}
	}

	rewritten := make([]artifact.MCPServer, len(servers))
	for i, s := range servers {
		s.System = target
		s.SyncedFrom = opts.Source
		rewritten[i] = s
	}

	if opts.DryRun {
		return MCPDetail{
			Target:  target,
			Servers: len(rewritten),
			Status:  "synced",
			Message: "dry run",
		}
	}

	if err := writer.WriteMCPServers(e.root, rewritten); err != nil {
		return MCPDetail{Target: target, Status: "failed", Message: err.Error()}
	}
	return MCPDetail{Target: target, Servers: len(rewritten), Status: "synced"}
}
