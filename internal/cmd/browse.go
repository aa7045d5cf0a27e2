package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runger/skillet/internal/registry"
	"github.com/runger/skillet/internal/state"
	"github.com/runger/skillet/internal/ui"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Pick skills from the registry and install them",
	Args:  cobra.NoArgs,
	RunE:  runBrowse,
}

func runBrowse(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	skills, err := a.reg.List(cmd.Context())
	if err != nil {
		return err
	}
	if len(skills) == 0 {
		fmt.Printf("registry %s has no skills\n", a.reg.Source())
		return nil
	}

	receipts, err := a.store.List(cmd.Context())
	if err != nil {
		return err
	}

	names, err := ui.MultiSelect("Select skills to install", annotateInstalled(skillItems(skills), receipts))
	if err != nil {
		if errors.Is(err, ui.ErrNotTerminal) {
			return errors.New("browse needs an interactive terminal; use 'skillet install <name>' instead")
		}
		return err
	}
	if len(names) == 0 {
		fmt.Println(dimStyle.Render("nothing selected"))
		return nil
	}

	for _, name := range names {
		sk, err := findSkill(skills, name)
		if err != nil {
			return err
		}
		if err := installSkill(cmd.Context(), a, sk); err != nil {
			return err
		}
	}
	return nil
}

func skillItems(skills []registry.Skill) []ui.Item {
	items := make([]ui.Item, len(skills))
	for i, sk := range skills {
		hint := sk.Description
		if hint == "" {
			hint = sk.Version
		}
		items[i] = ui.Item{Label: sk.Name, Hint: hint, Value: sk.Name}
	}
	return items
}

// annotateInstalled flags items that already have a receipt so the picker
// shows what a re-install would touch.
func annotateInstalled(items []ui.Item, receipts []state.Receipt) []ui.Item {
	installed := make(map[string]string, len(receipts))
	for _, r := range receipts {
		installed[r.Name] = r.Version
	}
	for i, it := range items {
		v, ok := installed[it.Value]
		if !ok {
			continue
		}
		note := "installed"
		if v != "" {
			note = "installed " + v
		}
		if it.Hint == "" {
			items[i].Hint = note
		} else {
			items[i].Hint = note + ", " + it.Hint
		}
	}
	return items
}

func findSkill(skills []registry.Skill, name string) (registry.Skill, error) {
	for _, sk := range skills {
		if sk.Name == name {
			return sk, nil
		}
	}
	return registry.Skill{}, fmt.Errorf("%q: %w", name, registry.ErrSkillNotFound)
}

// installSkill fetches and installs one skill, reporting the outcome.
func installSkill(ctx context.Context, a *app, sk registry.Skill) error {
	files, err := a.reg.Fetch(ctx, sk)
	if err != nil {
		return err
	}

	res, err := a.inst.Install(ctx, sk, files, a.reg.Source())
	if err != nil {
		return err
	}

	if !res.Updated {
		fmt.Printf("%s %s\n", nameStyle.Render(sk.Name), dimStyle.Render("already up to date"))
		return nil
	}
	fmt.Printf("%s %s %s\n", okStyle.Render("installed"), nameStyle.Render(sk.Name), dimStyle.Render(sk.Version))
	return nil
}
