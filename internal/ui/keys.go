package ui

import "io"

// keyEvent is a logical key decoded from raw terminal input.
type keyEvent int

const (
	keyUnknown keyEvent = iota
	keyUp
	keyDown
	keyToggle
	keyToggleAll
	keyConfirm
	keyInterrupt
)

// decodeKey reads one unit of raw input from r and maps it to a logical key
// event. In raw mode a complete arrow-key escape sequence arrives in a single
// read; a sequence that is split across reads decodes as keyUnknown rather
// than being buffered, which real terminal emulators tolerate because the
// decoder has no standalone Escape binding to confuse it with.
func decodeKey(r io.Reader) (keyEvent, error) {
	buf := make([]byte, 3)
	n, err := r.Read(buf)
	if err != nil {
		return keyUnknown, err
	}

	if n == 3 && buf[0] == 0x1b && buf[1] == '[' {
		switch buf[2] {
		case 'A':
			return keyUp, nil
		case 'B':
			return keyDown, nil
		}
		return keyUnknown, nil
	}

	if n != 1 {
		return keyUnknown, nil
	}

	switch buf[0] {
	case 'k':
		return keyUp, nil
	case 'j':
		return keyDown, nil
	case ' ':
		return keyToggle, nil
	case 'a', 'A':
		return keyToggleAll, nil
	case '\r', '\n':
		return keyConfirm, nil
	case 0x03: // Ctrl+C
		return keyInterrupt, nil
	}

	return keyUnknown, nil
}
