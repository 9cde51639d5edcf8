package cli

import (
	"fmt"

	"github.com/aicsync-labs/aicsync/internal/adapter"
	"github.com/aicsync-labs/aicsync/internal/rules"
	"github.com/spf13/cobra"
)

var (
	initSystems []string
	initForce   bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize system directories and the state store",
	Long: `Create the directory structure for the given systems (all known
systems by default), open the state store, and seed mapping rules from
.aicsync/rules.yaml when present.`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().StringSliceVar(&initSystems, "systems", nil, "Systems to initialize (default all)")
	initCmd.Flags().BoolVar(&initForce, "force", false, "Re-initialize systems that are already configured")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	systems := initSystems
	if len(systems) == 0 {
		systems = adapter.KnownSystems()
	}

	eng, done, err := newEngine()
	if err != nil {
		return err
	}
	defer done()

	for _, id := range systems {
		a, err := eng.Registry().Get(id)
		if err != nil {
			return err
		}
		if a.IsConfigured(eng.Root()) && !initForce {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: already configured\n", id)
			continue
		}
		if err := a.Initialize(eng.Root()); err != nil {
			return fmt.Errorf("initializing %s: %w", id, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: initialized\n", id)
	}

	rulesFile, err := rules.Load(eng.Root())
	if err != nil {
		return err
	}
	if len(rulesFile.Rules) > 0 {
		if err := rules.Seed(eng.Store(), rulesFile); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d mapping rules from %s\n", len(rulesFile.Rules), rules.FilePath(eng.Root()))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "State store: %s\n", eng.Store().Path())
	return nil
}
