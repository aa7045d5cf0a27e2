package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runger/skillet/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Get or set configuration values",
	Long: `Get or set skillet configuration values.

Without arguments, lists all configuration keys.
With one argument, shows the value of that key.
With two arguments, sets the key to the value.

Configuration is stored in ~/.config/skillet/config.yaml (XDG compliant).

Keys are in the format: section.key
Sections: registry, install, ui

Examples:
  skillet config                        # List all keys
  skillet config registry.owner         # Get the registry owner
  skillet config registry.ref v2        # Pin the registry to a ref
  skillet config ui.color false         # Disable styled output`,
	Args: cobra.MaximumNArgs(2),
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	paths := config.DefaultPaths()
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	switch len(args) {
	case 0:
		return listConfig(cfg, paths)
	case 1:
		return getConfig(cfg, args[0])
	case 2:
		return setConfig(cfg, paths, args[0], args[1])
	}

	return nil
}

func listConfig(cfg *config.Config, paths *config.Paths) error {
	fmt.Printf("%s\n\n", dimStyle.Render(paths.ConfigFile()))
	for _, key := range config.ListKeys() {
		value, err := cfg.Get(key)
		if err != nil {
			return err
		}
		fmt.Printf("%-16s %s\n", key, value)
	}
	return nil
}

func getConfig(cfg *config.Config, key string) error {
	value, err := cfg.Get(key)
	if err != nil {
		return err
	}
	fmt.Println(value)
	return nil
}

func setConfig(cfg *config.Config, paths *config.Paths, key, value string) error {
	if err := cfg.Set(key, value); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := cfg.SaveToFile(paths.ConfigFile()); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	fmt.Printf("%s = %s\n", key, value)
	return nil
}
