package config

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPathsHonorXDG(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("XDG paths are not used on Windows")
	}

	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")

	p := DefaultPaths()
	assert.Equal(t, "/tmp/xdg-config/skillet", p.ConfigDir)
	assert.Equal(t, "/tmp/xdg-data/skillet", p.DataDir)
	assert.Equal(t, "/tmp/xdg-config/skillet/config.yaml", p.ConfigFile())
	assert.Equal(t, "/tmp/xdg-data/skillet/state.db", p.DatabaseFile())
	assert.Equal(t, "/tmp/xdg-data/skillet/skills", p.SkillsDir())
}

func TestEnsureDirectories(t *testing.T) {
	base := t.TempDir()
	p := &Paths{
		ConfigDir: filepath.Join(base, "config"),
		DataDir:   filepath.Join(base, "data"),
	}

	require.NoError(t, p.EnsureDirectories())
	assert.DirExists(t, p.ConfigDir)
	assert.DirExists(t, p.DataDir)
}
