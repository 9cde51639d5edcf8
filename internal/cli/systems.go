package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/aicsync-labs/aicsync/internal/adapter"
	"github.com/spf13/cobra"
)

var (
	systemsAll  bool
	systemsJSON bool
)

var systemsCmd = &cobra.Command{
	Use:   "systems",
	Short: "List known systems and their capabilities",
	RunE:  runSystems,
}

func init() {
	systemsCmd.Flags().BoolVar(&systemsAll, "all", false, "Include systems not configured in this project")
	systemsCmd.Flags().BoolVar(&systemsJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(systemsCmd)
}

func runSystems(cmd *cobra.Command, args []string) error {
	eng, done, err := newEngine()
	if err != nil {
		return err
	}
	defer done()

	type systemEntry struct {
		System       string               `json:"system"`
		Configured   bool                 `json:"configured"`
		Capabilities adapter.Capabilities `json:"capabilities"`
	}
	var entries []systemEntry
	for _, id := range eng.Registry().Systems() {
		a, err := eng.Registry().Get(id)
		if err != nil {
			return err
		}
		configured := a.IsConfigured(eng.Root())
		if !systemsAll && !configured {
			continue
		}
		entries = append(entries, systemEntry{System: id, Configured: configured, Capabilities: a.Capabilities()})
	}

	if systemsJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SYSTEM\tSKILLS\tAGENTS\tCOMMANDS\tHOOKS\tRULES\tMCP")
	for _, e := range entries {
		caps := e.Capabilities
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n", e.System,
			mark(caps.Skills), mark(caps.Agents), mark(caps.Commands),
			mark(caps.Hooks), mark(caps.Rules), mark(caps.MCPServers))
	}
	return w.Flush()
}

func mark(b bool) string {
	if b {
		return "x"
	}
	return "-"
}
