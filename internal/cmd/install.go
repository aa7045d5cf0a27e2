package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/runger/skillet/internal/registry"
	"github.com/runger/skillet/internal/ui"
)

var installCmd = &cobra.Command{
	Use:   "install <name>...",
	Short: "Install skills by name",
	Long: `Install one or more skills from the registry.

A name that matches no skill exactly is treated as a prefix; if several
skills share the prefix an interactive picker disambiguates.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInstall,
}

func runInstall(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	skills, err := a.reg.List(cmd.Context())
	if err != nil {
		return err
	}

	for _, arg := range args {
		sk, err := resolveSkill(skills, arg)
		if err != nil {
			return err
		}
		if err := installSkill(cmd.Context(), a, sk); err != nil {
			return err
		}
	}
	return nil
}

// resolveSkill maps a user-supplied name to a registry entry. Exact match
// wins; otherwise prefix matches are tried, with a picker when several
// skills qualify.
func resolveSkill(skills []registry.Skill, name string) (registry.Skill, error) {
	if sk, err := findSkill(skills, name); err == nil {
		return sk, nil
	}

	matches := prefixMatches(skills, name)
	switch len(matches) {
	case 0:
		return registry.Skill{}, fmt.Errorf("%q: %w", name, registry.ErrSkillNotFound)
	case 1:
		return matches[0], nil
	}

	picked, err := ui.Select(fmt.Sprintf("Multiple skills match %q", name), skillItems(matches))
	if err != nil {
		if errors.Is(err, ui.ErrNotTerminal) {
			return registry.Skill{}, fmt.Errorf("%q is ambiguous (%s)", name, matchNames(matches))
		}
		return registry.Skill{}, err
	}
	return findSkill(matches, picked)
}

func prefixMatches(skills []registry.Skill, prefix string) []registry.Skill {
	var out []registry.Skill
	for _, sk := range skills {
		if strings.HasPrefix(sk.Name, prefix) {
			out = append(out, sk)
		}
	}
	return out
}

func matchNames(skills []registry.Skill) string {
	names := make([]string, len(skills))
	for i, sk := range skills {
		names[i] = sk.Name
	}
	return strings.Join(names, ", ")
}
