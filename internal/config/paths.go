// Package config provides configuration management for skillet.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Paths holds all the path configurations for skillet.
type Paths struct {
	// ConfigDir is the directory for configuration files (~/.config/skillet)
	ConfigDir string

	// DataDir is the directory for data files (~/.local/share/skillet)
	DataDir string
}

// DefaultPaths returns the default paths based on XDG Base Directory spec.
// On Windows, it uses %APPDATA% instead.
func DefaultPaths() *Paths {
	home := homeDir()

	if runtime.GOOS == "windows" {
		appData := os.Getenv("APPDATA")
		if appData == "" {
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			localAppData = filepath.Join(home, "AppData", "Local")
		}

		return &Paths{
			ConfigDir: filepath.Join(appData, "skillet"),
			DataDir:   filepath.Join(localAppData, "skillet"),
		}
	}

	// Unix-like systems follow XDG Base Directory spec
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		configHome = filepath.Join(home, ".config")
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		dataHome = filepath.Join(home, ".local", "share")
	}

	return &Paths{
		ConfigDir: filepath.Join(configHome, "skillet"),
		DataDir:   filepath.Join(dataHome, "skillet"),
	}
}

// ConfigFile returns the path to the main configuration file.
func (p *Paths) ConfigFile() string {
	return filepath.Join(p.ConfigDir, "config.yaml")
}

// DatabaseFile returns the path to the SQLite receipt database.
func (p *Paths) DatabaseFile() string {
	return filepath.Join(p.DataDir, "state.db")
}

// SkillsDir returns the default directory skills are installed into.
func (p *Paths) SkillsDir() string {
	return filepath.Join(p.DataDir, "skills")
}

// EnsureDirectories creates the config and data directories if missing.
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.ConfigDir, p.DataDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}

func homeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	// Last resort: current directory keeps paths relative instead of empty.
	return "."
}
