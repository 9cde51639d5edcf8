package cli

import (
	"fmt"

	"github.com/aicsync-labs/aicsync/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	indexSource  string
	indexTargets []string
	indexSync    bool
	indexDryRun  bool
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Generate a skill index for systems without native skills",
	Long: `Build a categorized quick-reference document from the source's skill
artifacts. With --sync, write it to every target that lacks native skill
support and patch that system's config file to reference it.`,
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().StringVar(&indexSource, "source", "", "Source system (default from config)")
	indexCmd.Flags().StringSliceVar(&indexTargets, "targets", nil, "Target systems for --sync (default from config)")
	indexCmd.Flags().BoolVar(&indexSync, "sync", false, "Write the index to capable targets")
	indexCmd.Flags().BoolVar(&indexDryRun, "dry-run", false, "Report intent without writing anything")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	source := indexSource
	if source == "" {
		source = viper.GetString(config.KeyDefaultSource)
	}

	eng, done, err := newEngine()
	if err != nil {
		return err
	}
	defer done()

	if !indexSync {
		idx, err := eng.GenerateSkillIndex(source)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), idx.Content)
		return nil
	}

	targets := indexTargets
	if len(targets) == 0 {
		targets = viper.GetStringSlice(config.KeyDefaultTargets)
	}
	if len(targets) == 0 {
		return fmt.Errorf("no targets: pass --targets or set %s", config.KeyDefaultTargets)
	}

	out, err := eng.SyncSkillIndex(source, targets, indexDryRun)
	if err != nil {
		return err
	}

	printer.Fprintf(cmd.OutOrStdout(), "Indexed %d skills in %d categories\n", out.Index.SkillCount, len(out.Index.Categories))
	for target, path := range out.Written {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: wrote %s\n", target, path)
	}
	for target, reason := range out.Skipped {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: skipped (%s)\n", target, reason)
	}
	return nil
}
