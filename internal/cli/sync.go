package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/aicsync-labs/aicsync/internal/artifact"
	"github.com/aicsync-labs/aicsync/internal/config"
	"github.com/aicsync-labs/aicsync/internal/engine"
	"github.com/aicsync-labs/aicsync/internal/rules"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	syncSource     string
	syncTargets    []string
	syncTypes      []string
	syncDryRun     bool
	syncForce      bool
	syncDelete     bool
	syncNoSymlinks bool
	syncVerbose    bool
	syncWatch      bool
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync artifacts from a source system to target systems",
	Long: `Scan the source system's artifacts and mirror them to each target,
skipping anything already up to date. Unsupported types fall back to a
rule-shaped transform where the target allows it.`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().StringVar(&syncSource, "source", "", "Source system (default from config)")
	syncCmd.Flags().StringSliceVar(&syncTargets, "targets", nil, "Target systems (default from config)")
	syncCmd.Flags().StringSliceVar(&syncTypes, "types", nil, "Artifact types to sync (default all)")
	syncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "Report decisions without writing anything")
	syncCmd.Flags().BoolVar(&syncForce, "force", false, "Re-sync up-to-date artifacts and replace unmanaged directories")
	syncCmd.Flags().BoolVar(&syncDelete, "delete", false, "Remove mirrored artifacts whose source disappeared")
	syncCmd.Flags().BoolVar(&syncNoSymlinks, "no-symlinks", false, "Copy everywhere, ignoring symlink rules")
	syncCmd.Flags().BoolVarP(&syncVerbose, "verbose", "v", false, "Print one line per artifact")
	syncCmd.Flags().BoolVar(&syncWatch, "watch", false, "Keep running and re-sync when the source changes")
	rootCmd.AddCommand(syncCmd)
}

// syncOptions resolves flags against config defaults.
func syncOptions() (engine.Options, error) {
	source := syncSource
	if source == "" {
		source = viper.GetString(config.KeyDefaultSource)
	}
	targets := syncTargets
	if len(targets) == 0 {
		targets = viper.GetStringSlice(config.KeyDefaultTargets)
	}
	if len(targets) == 0 {
		return engine.Options{}, fmt.Errorf("no targets: pass --targets or set %s", config.KeyDefaultTargets)
	}

	types, err := artifact.ParseTypes(syncTypes)
	if err != nil {
		return engine.Options{}, err
	}

	useSymlinks := viper.GetBool(config.KeyUseSymlinks)
	if syncNoSymlinks {
		useSymlinks = false
	}

	return engine.Options{
		Source:        source,
		Targets:       targets,
		ArtifactTypes: types,
		DryRun:        syncDryRun,
		Force:         syncForce,
		UseSymlinks:   useSymlinks,
		SyncDeletions: syncDelete,
	}, nil
}

func runSync(cmd *cobra.Command, args []string) error {
	opts, err := syncOptions()
	if err != nil {
		return err
	}

	eng, done, err := newEngine()
	if err != nil {
		return err
	}
	defer done()

	// Seed mapping rules from .aicsync/rules.yaml plus per-pair defaults
	// before the run decides symlink eligibility.
	rulesFile, err := rules.Load(eng.Root())
	if err != nil {
		return err
	}
	if err := rules.Seed(eng.Store(), rulesFile); err != nil {
		return err
	}
	for _, target := range opts.Targets {
		if err := rules.SeedDefaults(eng.Store(), opts.Source, target); err != nil {
			return err
		}
	}

	if syncWatch {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		fmt.Fprintf(cmd.OutOrStdout(), "Watching %s for changes (Ctrl-C to stop)\n", opts.Source)
		err := eng.Watch(ctx, opts, func(res *engine.JobResult, err error) {
			reportSync(cmd, res, err)
		})
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}

	res, err := eng.Sync(opts)
	reportSync(cmd, res, err)
	return err
}

func reportSync(cmd *cobra.Command, res *engine.JobResult, err error) {
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "sync failed: %v\n", err)
		return
	}

	if syncVerbose {
		for _, r := range res.Results {
			line := fmt.Sprintf("%-8s %-8s %s/%s -> %s", r.Operation, r.TargetSystem, r.ArtifactType, r.ArtifactName, r.TargetPath)
			if !r.Success {
				line += "  ERROR: " + r.Error
			} else if r.Message != "" {
				line += "  (" + r.Message + ")"
			}
			fmt.Fprintln(cmd.OutOrStdout(), line)
		}
	}

	prefix := ""
	if res.DryRun {
		prefix = "[dry run] "
	}
	printer.Fprintf(cmd.OutOrStdout(), "%sjob %d: %s\n", prefix, res.JobID, res.Summary)
}
