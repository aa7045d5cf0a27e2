package cmd

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runger/skillet/internal/registry"
	"github.com/runger/skillet/internal/state"
)

func sampleSkills() []registry.Skill {
	return []registry.Skill{
		{Name: "git-helper", Version: "1.0.0", Description: "git shortcuts"},
		{Name: "git-hooks", Version: "0.2.0"},
		{Name: "review", Version: "2.1.0", Description: "code review checklist"},
	}
}

func TestResolveSkillExactMatchWinsOverPrefix(t *testing.T) {
	skills := []registry.Skill{
		{Name: "git"},
		{Name: "git-helper"},
	}

	sk, err := resolveSkill(skills, "git")
	require.NoError(t, err)
	assert.Equal(t, "git", sk.Name)
}

func TestResolveSkillUniquePrefix(t *testing.T) {
	sk, err := resolveSkill(sampleSkills(), "rev")
	require.NoError(t, err)
	assert.Equal(t, "review", sk.Name)
}

func TestResolveSkillUnknownName(t *testing.T) {
	_, err := resolveSkill(sampleSkills(), "nope")
	require.ErrorIs(t, err, registry.ErrSkillNotFound)
}

func TestPrefixMatches(t *testing.T) {
	matches := prefixMatches(sampleSkills(), "git-")
	require.Len(t, matches, 2)
	assert.Equal(t, "git-helper", matches[0].Name)
	assert.Equal(t, "git-hooks", matches[1].Name)
}

func TestSkillItemsFallBackToVersionHint(t *testing.T) {
	items := skillItems(sampleSkills())
	require.Len(t, items, 3)

	assert.Equal(t, "git shortcuts", items[0].Hint)
	assert.Equal(t, "0.2.0", items[1].Hint) // no description
	assert.Equal(t, "git-hooks", items[1].Value)
}

func TestReceiptRowPadsNames(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	r := state.Receipt{
		Name:        "alpha",
		Version:     "1.2.0",
		Source:      "acme/toolbelt",
		InstalledAt: time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC),
	}

	row := receiptRow(r, 10)
	assert.Contains(t, row, "alpha     ")
	assert.Contains(t, row, "1.2.0")
	assert.Contains(t, row, "acme/toolbelt (2026-03-14)")
}

func TestReceiptRowMissingVersion(t *testing.T) {
	row := receiptRow(state.Receipt{Name: "alpha", InstalledAt: time.Now()}, 5)
	assert.Contains(t, row, "-")
}

func TestReceiptHint(t *testing.T) {
	assert.Equal(t, "1.0.0 from acme/toolbelt",
		receiptHint(state.Receipt{Version: "1.0.0", Source: "acme/toolbelt"}))
	assert.Equal(t, "acme/toolbelt",
		receiptHint(state.Receipt{Source: "acme/toolbelt"}))
}

func TestAnnotateInstalled(t *testing.T) {
	items := skillItems(sampleSkills())
	receipts := []state.Receipt{
		{Name: "git-helper", Version: "1.0.0"},
		{Name: "review"},
	}

	out := annotateInstalled(items, receipts)
	assert.Equal(t, "installed 1.0.0, git shortcuts", out[0].Hint)
	assert.Equal(t, "0.2.0", out[1].Hint) // not installed, untouched
	assert.Equal(t, "installed, code review checklist", out[2].Hint)
}

func TestMatchNames(t *testing.T) {
	assert.Equal(t, "git-helper, git-hooks", matchNames(prefixMatches(sampleSkills(), "git")))
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	for _, name := range []string{"browse", "install", "list", "remove", "update", "config", "version"} {
		found := false
		for _, c := range rootCmd.Commands() {
			if c.Name() == name {
				found = true
				break
			}
		}
		assert.True(t, found, "expected subcommand %q", name)
	}
}

func TestHelpMentionsRegistry(t *testing.T) {
	assert.True(t, strings.Contains(rootCmd.Long, "registry"))
}
