package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testItems() []Item {
	return []Item{
		{Label: "alpha", Hint: "first skill", Value: "alpha"},
		{Label: "beta", Value: "beta"},
		{Label: "gamma", Hint: "third skill", Value: "gamma"},
	}
}

func TestRedrawFirstFrame(t *testing.T) {
	var buf bytes.Buffer
	lines := redraw(&buf, "Pick one", testItems(), newSelection(modeSingle), modeSingle, 0)

	out := buf.String()
	assert.Equal(t, 5, lines, "title + 3 items + blank separator")
	assert.True(t, strings.HasPrefix(out, "\r"+ansiClearLine), "frame 0 must not move the cursor up")
	assert.Contains(t, out, "Pick one")
	assert.Equal(t, 5, strings.Count(out, "\r\n"))
}

func TestRedrawMovesOverPreviousFrame(t *testing.T) {
	var buf bytes.Buffer
	redraw(&buf, "Pick one", testItems(), newSelection(modeSingle), modeSingle, 5)

	assert.True(t, strings.HasPrefix(buf.String(), "\x1b[5A"))
}

func TestRedrawPointerFollowsCursor(t *testing.T) {
	s := newSelection(modeSingle)
	s.cursor = 1

	var buf bytes.Buffer
	redraw(&buf, "Pick one", testItems(), s, modeSingle, 0)

	rows := strings.Split(buf.String(), "\r\n")
	assert.NotContains(t, rows[1], "> ")
	assert.Contains(t, rows[2], "> ")
	assert.Contains(t, rows[2], "beta")
	assert.NotContains(t, rows[3], "> ")
}

func TestRedrawCheckboxes(t *testing.T) {
	s := newSelection(modeMulti)
	s.selected[0] = struct{}{}
	s.selected[2] = struct{}{}

	var buf bytes.Buffer
	redraw(&buf, "Pick some", testItems(), s, modeMulti, 0)

	rows := strings.Split(buf.String(), "\r\n")
	assert.Contains(t, rows[1], "[x] alpha")
	assert.Contains(t, rows[2], "[ ] beta")
	assert.Contains(t, rows[3], "[x] gamma")
}

func TestRedrawSingleModeHasNoCheckboxes(t *testing.T) {
	var buf bytes.Buffer
	redraw(&buf, "Pick one", testItems(), newSelection(modeSingle), modeSingle, 0)

	assert.NotContains(t, buf.String(), "[ ]")
	assert.NotContains(t, buf.String(), "[x]")
}

func TestFinishLeavesSummaryAndClearsBelow(t *testing.T) {
	var buf bytes.Buffer
	finish(&buf, "Pick one alpha", 5)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "\x1b[5A"))
	assert.Contains(t, out, "Pick one alpha")
	assert.True(t, strings.HasSuffix(out, ansiClearDown), "everything below the summary must be cleared")
}

func TestClearFrame(t *testing.T) {
	var buf bytes.Buffer
	clearFrame(&buf, 3)
	assert.Equal(t, "\x1b[3A\r"+ansiClearDown, buf.String())
}

func TestTruncateHint(t *testing.T) {
	assert.Equal(t, "short", truncateHint("short", 10))

	long := strings.Repeat("x", 80)
	got := truncateHint(long, hintBudget)
	require.True(t, strings.HasSuffix(got, "…"))
	assert.LessOrEqual(t, runewidth.StringWidth(got), hintBudget)

	// Double-width runes must not blow the budget.
	cjk := strings.Repeat("漢", 40)
	got = truncateHint(cjk, hintBudget)
	require.True(t, strings.HasSuffix(got, "…"))
	assert.LessOrEqual(t, runewidth.StringWidth(got), hintBudget)
}
