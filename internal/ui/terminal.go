package ui

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// ErrNotTerminal is returned when a picker is invoked without a terminal on
// standard input.
var ErrNotTerminal = errors.New("standard input is not a terminal")

// session owns the terminal mode for the lifetime of one picker invocation.
// Construction switches the terminal to raw input and hides the cursor;
// restore undoes both. At most one session is active at a time: pickers are
// invoked synchronously and nothing else writes to the terminal while one
// runs.
type session struct {
	fd    int
	out   io.Writer
	saved *term.State
}

func newSession(in *os.File, out io.Writer) (*session, error) {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return nil, ErrNotTerminal
	}
	saved, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("enter raw mode: %w", err)
	}
	fmt.Fprint(out, ansiHideCursor)
	return &session{fd: fd, out: out, saved: saved}, nil
}

// restore returns the terminal to its pre-acquisition mode and re-shows the
// cursor. It is safe to call exactly once on every exit path.
func (s *session) restore() {
	fmt.Fprint(s.out, ansiShowCursor)
	term.Restore(s.fd, s.saved)
}
