package cmd

import (
	"fmt"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/runger/skillet/internal/state"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List installed skills",
	Args:    cobra.NoArgs,
	RunE:    runList,
}

func runList(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	receipts, err := a.store.List(cmd.Context())
	if err != nil {
		return err
	}
	if len(receipts) == 0 {
		fmt.Println(dimStyle.Render("no skills installed"))
		return nil
	}

	nameWidth := 0
	for _, r := range receipts {
		if w := runewidth.StringWidth(r.Name); w > nameWidth {
			nameWidth = w
		}
	}

	for _, r := range receipts {
		fmt.Println(receiptRow(r, nameWidth))
	}
	return nil
}

// receiptRow formats one installed skill, padding the name so versions line
// up. Styling is applied after padding; escape codes have no width.
func receiptRow(r state.Receipt, nameWidth int) string {
	name := runewidth.FillRight(r.Name, nameWidth)
	version := r.Version
	if version == "" {
		version = "-"
	}
	return fmt.Sprintf("%s  %-10s  %s",
		nameStyle.Render(name),
		version,
		dimStyle.Render(fmt.Sprintf("%s (%s)", r.Source, r.InstalledAt.Format("2006-01-02"))))
}
