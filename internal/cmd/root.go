package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/runger/skillet/internal/config"
	"github.com/runger/skillet/internal/installer"
	"github.com/runger/skillet/internal/registry"
	"github.com/runger/skillet/internal/state"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "skillet",
	Short: "install agent skills from a shared registry",
	Long: `skillet - install agent skills from a shared registry
  - browse the registry and pick skills interactively
  - install, update and remove skills by name`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// app bundles the collaborators a command needs: config, registry client,
// receipt store and installer.
type app struct {
	cfg   *config.Config
	paths *config.Paths
	reg   *registry.Client
	store *state.Store
	inst  *installer.Installer
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if !cfg.UI.Color {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	paths := config.DefaultPaths()
	if err := paths.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}

	store, err := state.Open(paths.DatabaseFile())
	if err != nil {
		return nil, err
	}

	dir := cfg.Install.Dir
	if dir == "" {
		dir = paths.SkillsDir()
	}

	return &app{
		cfg:   cfg,
		paths: paths,
		reg:   registry.New(cfg.Registry, slog.Default()),
		store: store,
		inst:  installer.New(dir, store, slog.Default()),
	}, nil
}

func (a *app) close() {
	if err := a.store.Close(); err != nil {
		slog.Warn("closing receipt store", "error", err)
	}
}
