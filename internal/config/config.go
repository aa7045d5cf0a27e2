package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the skillet configuration.
type Config struct {
	Registry RegistryConfig `yaml:"registry"`
	Install  InstallConfig  `yaml:"install"`
	UI       UIConfig       `yaml:"ui"`
}

// RegistryConfig identifies the GitHub repository skills are discovered in.
type RegistryConfig struct {
	Owner string `yaml:"owner"` // Repository owner
	Repo  string `yaml:"repo"`  // Repository name
	Ref   string `yaml:"ref"`   // Branch, tag, or commit (empty = default branch)
	Root  string `yaml:"root"`  // Path inside the repository holding skills
	Token string `yaml:"token"` // Optional bearer token for private registries
}

// InstallConfig holds installation settings.
type InstallConfig struct {
	Dir string `yaml:"dir"` // Directory skills are installed into (empty = default)
}

// UIConfig holds terminal output settings.
type UIConfig struct {
	Color bool `yaml:"color"` // Styled output (NO_COLOR always wins)
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Registry: RegistryConfig{
			Owner: "runger",
			Repo:  "skills",
			Ref:   "",
			Root:  "skills",
		},
		Install: InstallConfig{
			Dir: "", // Use default from paths
		},
		UI: UIConfig{
			Color: true,
		},
	}
}

// Load loads configuration from the default path.
func Load() (*Config, error) {
	paths := DefaultPaths()
	return LoadFromFile(paths.ConfigFile())
}

// LoadFromFile loads configuration from the specified file.
// If the file doesn't exist, returns default configuration.
// Environment variable overrides are applied after file loading.
func LoadFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.ApplyEnvOverrides()
			return cfg, nil // Return defaults if file doesn't exist
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.ApplyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Save saves the configuration to the default path.
func (c *Config) Save() error {
	paths := DefaultPaths()
	return c.SaveToFile(paths.ConfigFile())
}

// SaveToFile saves the configuration to the specified file.
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Get retrieves a configuration value by dot-separated key.
// For example: "registry.owner" or "ui.color"
func (c *Config) Get(key string) (string, error) {
	parts := strings.Split(key, ".")
	if len(parts) != 2 {
		return "", errors.New("key must be in format 'section.key'")
	}

	section, field := parts[0], parts[1]

	switch section {
	case "registry":
		return c.getRegistryField(field)
	case "install":
		return c.getInstallField(field)
	case "ui":
		return c.getUIField(field)
	default:
		return "", fmt.Errorf("unknown section: %s", section)
	}
}

// Set sets a configuration value by dot-separated key.
func (c *Config) Set(key, value string) error {
	parts := strings.Split(key, ".")
	if len(parts) != 2 {
		return errors.New("key must be in format 'section.key'")
	}

	section, field := parts[0], parts[1]

	switch section {
	case "registry":
		return c.setRegistryField(field, value)
	case "install":
		return c.setInstallField(field, value)
	case "ui":
		return c.setUIField(field, value)
	default:
		return fmt.Errorf("unknown section: %s", section)
	}
}

func (c *Config) getRegistryField(field string) (string, error) {
	switch field {
	case "owner":
		return c.Registry.Owner, nil
	case "repo":
		return c.Registry.Repo, nil
	case "ref":
		return c.Registry.Ref, nil
	case "root":
		return c.Registry.Root, nil
	case "token":
		if c.Registry.Token != "" {
			return "(set)", nil // Never echo the token back
		}
		return "", nil
	default:
		return "", fmt.Errorf("unknown field: registry.%s", field)
	}
}

func (c *Config) setRegistryField(field, value string) error {
	switch field {
	case "owner":
		c.Registry.Owner = value
	case "repo":
		c.Registry.Repo = value
	case "ref":
		c.Registry.Ref = value
	case "root":
		c.Registry.Root = value
	case "token":
		c.Registry.Token = value
	default:
		return fmt.Errorf("unknown field: registry.%s", field)
	}
	return nil
}

func (c *Config) getInstallField(field string) (string, error) {
	switch field {
	case "dir":
		return c.Install.Dir, nil
	default:
		return "", fmt.Errorf("unknown field: install.%s", field)
	}
}

func (c *Config) setInstallField(field, value string) error {
	switch field {
	case "dir":
		c.Install.Dir = value
	default:
		return fmt.Errorf("unknown field: install.%s", field)
	}
	return nil
}

func (c *Config) getUIField(field string) (string, error) {
	switch field {
	case "color":
		return strconv.FormatBool(c.UI.Color), nil
	default:
		return "", fmt.Errorf("unknown field: ui.%s", field)
	}
}

func (c *Config) setUIField(field, value string) error {
	switch field {
	case "color":
		v, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value for color: %w", err)
		}
		c.UI.Color = v
	default:
		return fmt.Errorf("unknown field: ui.%s", field)
	}
	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Registry.Owner == "" {
		return errors.New("registry.owner must not be empty")
	}
	if c.Registry.Repo == "" {
		return errors.New("registry.repo must not be empty")
	}
	if strings.ContainsAny(c.Registry.Owner, "/ ") {
		return fmt.Errorf("registry.owner must be a bare GitHub account name (got: %s)", c.Registry.Owner)
	}
	if strings.ContainsAny(c.Registry.Repo, "/ ") {
		return fmt.Errorf("registry.repo must be a bare repository name (got: %s)", c.Registry.Repo)
	}
	return nil
}

// ApplyEnvOverrides applies environment variable overrides to the config.
// Environment variables override config file values.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("SKILLET_REGISTRY"); v != "" {
		// owner/repo[@ref] shorthand
		ref := ""
		if at := strings.LastIndex(v, "@"); at >= 0 {
			ref = v[at+1:]
			v = v[:at]
		}
		if owner, repo, ok := strings.Cut(v, "/"); ok && owner != "" && repo != "" {
			c.Registry.Owner = owner
			c.Registry.Repo = repo
			if ref != "" {
				c.Registry.Ref = ref
			}
		}
	}
	if v := os.Getenv("SKILLET_TOKEN"); v != "" {
		c.Registry.Token = v
	}
	if v := os.Getenv("SKILLET_INSTALL_DIR"); v != "" {
		c.Install.Dir = v
	}
	if os.Getenv("NO_COLOR") != "" {
		c.UI.Color = false
	}
}

// ListKeys returns user-facing configuration keys.
func ListKeys() []string {
	return []string{
		"registry.owner",
		"registry.repo",
		"registry.ref",
		"registry.root",
		"registry.token",
		"install.dir",
		"ui.color",
	}
}
