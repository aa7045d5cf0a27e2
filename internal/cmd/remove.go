package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runger/skillet/internal/state"
	"github.com/runger/skillet/internal/ui"
)

var removeCmd = &cobra.Command{
	Use:     "remove [name]...",
	Aliases: []string{"rm", "uninstall"},
	Short:   "Remove installed skills",
	Long: `Remove installed skills by name.

Without arguments, an interactive picker lists the installed skills.`,
	RunE: runRemove,
}

func runRemove(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	names := args
	if len(names) == 0 {
		name, err := pickInstalled(cmd.Context(), a)
		if err != nil {
			return err
		}
		if name == "" {
			return nil
		}
		names = []string{name}
	}

	for _, name := range names {
		if err := a.inst.Remove(cmd.Context(), name); err != nil {
			return err
		}
		fmt.Printf("%s %s\n", okStyle.Render("removed"), nameStyle.Render(name))
	}
	return nil
}

// pickInstalled asks the user which installed skill to remove. An empty name
// means there was nothing to pick.
func pickInstalled(ctx context.Context, a *app) (string, error) {
	receipts, err := a.store.List(ctx)
	if err != nil {
		return "", err
	}
	if len(receipts) == 0 {
		fmt.Println(dimStyle.Render("no skills installed"))
		return "", nil
	}

	items := make([]ui.Item, len(receipts))
	for i, r := range receipts {
		items[i] = ui.Item{Label: r.Name, Hint: receiptHint(r), Value: r.Name}
	}

	name, err := ui.Select("Select a skill to remove", items)
	if errors.Is(err, ui.ErrNotTerminal) {
		return "", errors.New("remove needs a name when not run interactively")
	}
	return name, err
}

func receiptHint(r state.Receipt) string {
	if r.Version == "" {
		return r.Source
	}
	return fmt.Sprintf("%s from %s", r.Version, r.Source)
}
