package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/aicsync-labs/aicsync/internal/store"
	"github.com/spf13/cobra"
)

var statusJSON bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show configured systems and sync state",
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(statusCmd)
}

type systemStatus struct {
	System     string `json:"system"`
	Configured bool   `json:"configured"`
	Synced     int    `json:"synced_artifacts"`
}

func runStatus(cmd *cobra.Command, args []string) error {
	eng, done, err := newEngine()
	if err != nil {
		return err
	}
	defer done()

	lastSync, err := eng.Store().GetSetting("last_sync")
	if errors.Is(err, store.ErrNotFound) {
		lastSync = "never"
	} else if err != nil {
		return err
	}

	var rows []systemStatus
	for _, id := range eng.Registry().Systems() {
		a, err := eng.Registry().Get(id)
		if err != nil {
			return err
		}
		count, err := eng.Store().CountSyncedForTarget(id)
		if err != nil {
			return err
		}
		rows = append(rows, systemStatus{System: id, Configured: a.IsConfigured(eng.Root()), Synced: count})
	}

	if statusJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Project  string         `json:"project"`
			LastSync string         `json:"last_sync"`
			Systems  []systemStatus `json:"systems"`
		}{eng.Root(), lastSync, rows})
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Project: %s\nLast sync: %s\n\n", eng.Root(), lastSync)

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SYSTEM\tCONFIGURED\tSYNCED ARTIFACTS")
	for _, row := range rows {
		configured := "no"
		if row.Configured {
			configured = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\n", row.System, configured, row.Synced)
	}
	return w.Flush()
}
