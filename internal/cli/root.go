package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aicsync-labs/aicsync/internal/adapter"
	"github.com/aicsync-labs/aicsync/internal/adapter/fsdir"
	"github.com/aicsync-labs/aicsync/internal/branding"
	"github.com/aicsync-labs/aicsync/internal/config"
	"github.com/aicsync-labs/aicsync/internal/engine"
	"github.com/aicsync-labs/aicsync/internal/store"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

// printer formats counts in user-facing summaries.
var printer = message.NewPrinter(language.English)

var projectRoot string

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` mirrors configuration artifacts (skills, agents, commands,
hooks, rules, MCP servers) produced for one AI assistant into equivalent
artifacts for others, tracking provenance and drift in a local state store.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&projectRoot, "project", ".", "Project root directory")
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// newEngine opens the state store for the project root and builds an
// engine over the builtin adapters. The returned closer must be called.
func newEngine() (*engine.Engine, func(), error) {
	root, err := filepath.Abs(projectRoot)
	if err != nil {
		return nil, nil, fmt.Errorf("resolving project root: %w", err)
	}

	st, err := store.Open(config.StateDBPath(root))
	if err != nil {
		return nil, nil, err
	}

	reg := adapter.NewRegistry()
	fsdir.RegisterDefaults(reg)

	closer := func() { _ = st.Close() }
	return engine.New(st, reg, root), closer, nil
}
