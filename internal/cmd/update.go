package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runger/skillet/internal/registry"
)

var updateCmd = &cobra.Command{
	Use:   "update [name]...",
	Short: "Update installed skills to the registry version",
	Long: `Update installed skills by re-fetching them from the registry.

Without arguments every installed skill is checked. Skills whose content is
unchanged are left alone; skills that no longer exist in the registry are
reported and skipped.`,
	RunE: runUpdate,
}

func runUpdate(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	names := args
	if len(names) == 0 {
		receipts, err := a.store.List(cmd.Context())
		if err != nil {
			return err
		}
		if len(receipts) == 0 {
			fmt.Println(dimStyle.Render("no skills installed"))
			return nil
		}
		for _, r := range receipts {
			names = append(names, r.Name)
		}
	}

	for _, name := range names {
		sk, err := a.reg.Get(cmd.Context(), name)
		if err != nil {
			if errors.Is(err, registry.ErrSkillNotFound) {
				fmt.Printf("%s %s\n", warnStyle.Render("gone from registry:"), name)
				continue
			}
			return err
		}
		if err := installSkill(cmd.Context(), a, sk); err != nil {
			return err
		}
	}
	return nil
}
