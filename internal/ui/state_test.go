package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyCursorWrap(t *testing.T) {
	const n = 3

	s := newSelection(modeSingle)
	s = apply(s, keyUp, n, modeSingle)
	assert.Equal(t, n-1, s.cursor, "Up from 0 wraps to the last index")

	s = apply(s, keyDown, n, modeSingle)
	assert.Equal(t, 0, s.cursor, "Down from the last index wraps to 0")
}

func TestApplyCursorStaysInBounds(t *testing.T) {
	const n = 4

	events := []keyEvent{
		keyUp, keyUp, keyUp, keyDown, keyUp, keyDown, keyDown, keyDown,
		keyDown, keyDown, keyUp, keyUp, keyDown, keyUp, keyUp, keyUp,
	}

	s := newSelection(modeMulti)
	for _, ev := range events {
		s = apply(s, ev, n, modeMulti)
		require.GreaterOrEqual(t, s.cursor, 0)
		require.Less(t, s.cursor, n)
	}
}

func TestApplyToggleInvolution(t *testing.T) {
	const n = 3

	s := newSelection(modeMulti)
	s = apply(s, keyDown, n, modeMulti)

	once := apply(s, keyToggle, n, modeMulti)
	assert.Contains(t, once.selected, 1)

	twice := apply(once, keyToggle, n, modeMulti)
	assert.NotContains(t, twice.selected, 1)
	assert.True(t, twice.equal(s), "two toggles restore the prior membership")
}

func TestApplyToggleAllSaturation(t *testing.T) {
	const n = 3

	// From empty: everything selected.
	s := apply(newSelection(modeMulti), keyToggleAll, n, modeMulti)
	assert.Len(t, s.selected, n)

	// From all: cleared.
	s = apply(s, keyToggleAll, n, modeMulti)
	assert.Empty(t, s.selected)

	// From a partial selection: saturates to all, not to the complement.
	partial := apply(newSelection(modeMulti), keyToggle, n, modeMulti)
	require.Len(t, partial.selected, 1)
	s = apply(partial, keyToggleAll, n, modeMulti)
	assert.Len(t, s.selected, n)
}

func TestApplyTogglesIgnoredInSingleMode(t *testing.T) {
	s := newSelection(modeSingle)

	next := apply(s, keyToggle, 3, modeSingle)
	assert.True(t, next.equal(s))

	next = apply(s, keyToggleAll, 3, modeSingle)
	assert.True(t, next.equal(s))
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	const n = 3

	s := newSelection(modeMulti)
	s = apply(s, keyToggle, n, modeMulti)
	require.Len(t, s.selected, 1)

	_ = apply(s, keyToggleAll, n, modeMulti)
	assert.Len(t, s.selected, 1, "apply must not mutate its input")

	_ = apply(s, keyDown, n, modeMulti)
	assert.Equal(t, 0, s.cursor)
}

func TestIndicesOrderedByItemIndex(t *testing.T) {
	const n = 4

	// Toggle 2, then 0, then 3: resolution order must be by index.
	s := newSelection(modeMulti)
	s = apply(s, keyDown, n, modeMulti)
	s = apply(s, keyDown, n, modeMulti)
	s = apply(s, keyToggle, n, modeMulti) // 2
	s = apply(s, keyUp, n, modeMulti)
	s = apply(s, keyUp, n, modeMulti)
	s = apply(s, keyToggle, n, modeMulti) // 0
	s = apply(s, keyUp, n, modeMulti)     // wraps to 3
	s = apply(s, keyToggle, n, modeMulti) // 3

	assert.Equal(t, []int{0, 2, 3}, s.indices())
}
