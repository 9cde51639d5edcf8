package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/aicsync-labs/aicsync/internal/artifact"
	"github.com/aicsync-labs/aicsync/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	diffSource string
	diffTarget string
	diffType   string
	diffJSON   bool
)

var diffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Show artifacts out of sync between a source and a target",
	Long: `Re-scan the source and compare current content hashes against the
recorded sync state for the target. Nothing on the target is modified.`,
	RunE: runDiff,
}

func init() {
	diffCmd.Flags().StringVar(&diffSource, "source", "", "Source system (default from config)")
	diffCmd.Flags().StringVar(&diffTarget, "target", "", "Target system")
	diffCmd.Flags().StringVar(&diffType, "type", "", "Restrict to one artifact type")
	diffCmd.Flags().BoolVar(&diffJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(diffCmd)
}

func runDiff(cmd *cobra.Command, args []string) error {
	source := diffSource
	if source == "" {
		source = viper.GetString(config.KeyDefaultSource)
	}
	if diffTarget == "" {
		return fmt.Errorf("--target is required")
	}

	var types []artifact.Type
	if diffType != "" {
		t, ok := artifact.ParseType(diffType)
		if !ok {
			return fmt.Errorf("unknown artifact type %q", diffType)
		}
		types = []artifact.Type{t}
	}

	eng, done, err := newEngine()
	if err != nil {
		return err
	}
	defer done()

	entries, err := eng.Diff(source, diffTarget, types)
	if err != nil {
		return err
	}

	if diffJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "%s and %s are in sync.\n", source, diffTarget)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TYPE\tNAME\tSTATE")
	for _, e := range entries {
		state := "modified"
		if e.NeverSynced {
			state = "never synced"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", e.ArtifactType, e.ArtifactName, state)
	}
	return w.Flush()
}
