package cli

import (
	"fmt"

	"github.com/aicsync-labs/aicsync/internal/config"
	"github.com/aicsync-labs/aicsync/internal/engine"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	mcpSource  string
	mcpTargets []string
	mcpDryRun  bool
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Manage MCP server descriptor syncing",
}

var mcpSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Mirror MCP server descriptors to target systems",
	Long: `Read the source system's MCP server descriptors and write the full
set to every target that supports them, rewriting each descriptor's system
id and provenance tag. Targets without MCP support are skipped.`,
	RunE: runMCPSync,
}

func init() {
	mcpSyncCmd.Flags().StringVar(&mcpSource, "source", "", "Source system (default from config)")
	mcpSyncCmd.Flags().StringSliceVar(&mcpTargets, "targets", nil, "Target systems (default from config)")
	mcpSyncCmd.Flags().BoolVar(&mcpDryRun, "dry-run", false, "Report intent without writing anything")
	mcpCmd.AddCommand(mcpSyncCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPSync(cmd *cobra.Command, args []string) error {
	source := mcpSource
	if source == "" {
		source = viper.GetString(config.KeyDefaultSource)
	}
	targets := mcpTargets
	if len(targets) == 0 {
		targets = viper.GetStringSlice(config.KeyDefaultTargets)
	}
	if len(targets) == 0 {
		return fmt.Errorf("no targets: pass --targets or set %s", config.KeyDefaultTargets)
	}

	eng, done, err := newEngine()
	if err != nil {
		return err
	}
	defer done()

	res, err := eng.SyncMCPServers(engine.Options{
		Source:  source,
		Targets: targets,
		DryRun:  mcpDryRun,
	})
	if err != nil {
		return err
	}

	for _, d := range res.Details {
		switch d.Status {
		case "synced":
			printer.Fprintf(cmd.OutOrStdout(), "%s: %d servers synced", d.Target, d.Servers)
			if d.Message != "" {
				fmt.Fprintf(cmd.OutOrStdout(), " (%s)", d.Message)
			}
			fmt.Fprintln(cmd.OutOrStdout())
		default:
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (%s)\n", d.Target, d.Status, d.Message)
		}
	}
	printer.Fprintf(cmd.OutOrStdout(), "%d synced, %d skipped, %d failed\n", res.Synced, res.Skipped, res.Failed)
	return nil
}
