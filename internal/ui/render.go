package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// ANSI escape sequences for terminal control.
const (
	ansiHideCursor = "\x1b[?25l"
	ansiShowCursor = "\x1b[?25h"
	ansiClearLine  = "\x1b[K"
	ansiClearDown  = "\x1b[J"
	ansiBold       = "\x1b[1m"
	ansiDim        = "\x1b[2m"
	ansiReset      = "\x1b[0m"
)

// hintBudget is the display-width budget for a hint before it is truncated
// with an ellipsis.
const hintBudget = 48

// Item is one selectable entry. Label is shown in the list, Hint (optional)
// is rendered dimmed after it, and Value is what a confirmed selection
// resolves to; callers match it back to their own data.
type Item struct {
	Label string
	Hint  string
	Value string
}

// redraw repaints the full picker frame in place: it moves the cursor up by
// the previous frame's line count (prev is 0 on the first paint, meaning
// there is nothing to move over), rewrites every line behind a clear-line
// escape, and returns the new line count for the next call. It never clears
// the screen and never writes more or fewer lines than it accounts for.
func redraw(w io.Writer, title string, items []Item, s selection, m pickMode, prev int) int {
	if prev > 0 {
		fmt.Fprintf(w, "\x1b[%dA", prev)
	}

	fmt.Fprintf(w, "\r%s%s%s%s", ansiClearLine, ansiBold, title, ansiReset)
	if m == modeMulti {
		fmt.Fprintf(w, " %s(space toggles, a toggles all, enter confirms)%s", ansiDim, ansiReset)
	}
	fmt.Fprint(w, "\r\n")
	lines := 1

	for i, item := range items {
		fmt.Fprintf(w, "\r%s%s\r\n", ansiClearLine, itemLine(item, i, s, m))
		lines++
	}

	// Blank separator between the list and whatever follows.
	fmt.Fprintf(w, "\r%s\r\n", ansiClearLine)
	lines++

	return lines
}

// itemLine formats a single list row: pointer, checkbox (multi mode), label,
// dimmed hint.
func itemLine(item Item, idx int, s selection, m pickMode) string {
	var b strings.Builder

	if idx == s.cursor {
		b.WriteString("  " + ansiBold + "> ")
	} else {
		b.WriteString("    ")
	}

	if m == modeMulti {
		if _, ok := s.selected[idx]; ok {
			b.WriteString("[x] ")
		} else {
			b.WriteString("[ ] ")
		}
	}

	b.WriteString(item.Label)
	b.WriteString(ansiReset)

	if item.Hint != "" {
		b.WriteString(" " + ansiDim + "- " + truncateHint(item.Hint, hintBudget) + ansiReset)
	}

	return b.String()
}

// finish replaces the previous frame with a single summary line and clears
// the remainder, leaving the cursor on a fresh line so normal program output
// resumes with no residual list content on screen.
func finish(w io.Writer, summary string, prev int) {
	if prev > 0 {
		fmt.Fprintf(w, "\x1b[%dA", prev)
	}
	fmt.Fprintf(w, "\r%s%s\r\n", ansiClearLine, summary)
	fmt.Fprint(w, ansiClearDown)
}

// clearFrame erases the previous frame entirely, used on the interrupt path.
func clearFrame(w io.Writer, prev int) {
	if prev > 0 {
		fmt.Fprintf(w, "\x1b[%dA", prev)
	}
	fmt.Fprint(w, "\r"+ansiClearDown)
}

// truncateHint hard-truncates s to the given display-width budget, appending
// an ellipsis when anything was cut. Width-aware so CJK characters and emoji
// that occupy two columns do not overflow the budget.
func truncateHint(s string, budget int) string {
	if runewidth.StringWidth(s) <= budget {
		return s
	}
	w := 0
	for i, r := range s {
		rw := runewidth.RuneWidth(r)
		if w+rw > budget-1 {
			return s[:i] + "…"
		}
		w += rw
	}
	return s
}
