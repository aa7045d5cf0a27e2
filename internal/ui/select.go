// Package ui implements skillet's interactive terminal pickers: raw-mode
// single-select and multi-select lists with flicker-free in-place repaints.
//
// The engine is deliberately framework-free. Input is a synchronous pull
// (block until the next logical key event), state transitions are pure
// functions over an explicit selection value, and the renderer threads the
// previous frame's line count through every repaint instead of keeping
// hidden draw state. The pickers block until the user confirms or
// interrupts; callers needing a deadline must wrap the call.
package ui

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrNoItems is returned when a picker is invoked with an empty item list.
var ErrNoItems = errors.New("no items to select from")

// errInterrupted marks the Ctrl+C path inside the event loop. It never
// escapes the package: the public entry points release the terminal and
// terminate the process instead.
var errInterrupted = errors.New("interrupted")

// exit is swapped out in tests.
var exit = os.Exit

// Select prompts on the controlling terminal for a single choice and returns
// the confirmed item's Value. Ctrl+C restores the terminal and exits the
// process with status 130; it is never reported as an error.
func Select(title string, items []Item) (string, error) {
	s, err := runPicker(os.Stdin, os.Stderr, title, items, modeSingle)
	if err != nil {
		return "", err
	}
	return items[s.cursor].Value, nil
}

// MultiSelect prompts for zero or more choices and returns the confirmed
// Values ordered by their original item index, never by toggle order. A
// confirmed empty selection returns an empty slice and a nil error, which is
// distinct from an interrupt (the process exits before returning).
func MultiSelect(title string, items []Item) ([]string, error) {
	s, err := runPicker(os.Stdin, os.Stderr, title, items, modeMulti)
	if err != nil {
		return nil, err
	}
	values := make([]string, 0, len(s.selected))
	for _, i := range s.indices() {
		values = append(values, items[i].Value)
	}
	return values, nil
}

// runPicker acquires the terminal, runs the event loop, and guarantees mode
// restoration on every exit path, including the interrupt exit.
func runPicker(in *os.File, out io.Writer, title string, items []Item, m pickMode) (selection, error) {
	if len(items) == 0 {
		return selection{}, ErrNoItems
	}

	sess, err := newSession(in, out)
	if err != nil {
		return selection{}, err
	}

	s, err := pickLoop(in, out, title, items, m)
	sess.restore()

	if errors.Is(err, errInterrupted) {
		exit(130)
	}
	return s, err
}

// pickLoop is the synchronous controller: decode one key, apply the pure
// transition, repaint, repeat. It owns no terminal state, so tests drive it
// with scripted readers and an in-memory writer.
func pickLoop(r io.Reader, w io.Writer, title string, items []Item, m pickMode) (selection, error) {
	s := newSelection(m)
	lines := redraw(w, title, items, s, m, 0)

	for {
		ev, err := decodeKey(r)
		if err != nil {
			clearFrame(w, lines)
			return s, err
		}

		switch ev {
		case keyConfirm:
			finish(w, summaryLine(title, items, s, m), lines)
			return s, nil
		case keyInterrupt:
			clearFrame(w, lines)
			return s, errInterrupted
		case keyUnknown:
			// Absorbed: no state change, no repaint.
		default:
			next := apply(s, ev, len(items), m)
			if !next.equal(s) {
				s = next
				lines = redraw(w, title, items, s, m, lines)
			}
		}
	}
}

// summaryLine is the single confirmation line left behind by finish.
func summaryLine(title string, items []Item, s selection, m pickMode) string {
	if m == modeSingle {
		return fmt.Sprintf("%s%s%s %s", ansiBold, title, ansiReset, items[s.cursor].Label)
	}
	return fmt.Sprintf("%s%s%s %s%d selected%s", ansiBold, title, ansiReset, ansiDim, len(s.selected), ansiReset)
}
