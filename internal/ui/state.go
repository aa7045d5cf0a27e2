package ui

import "sort"

// pickMode distinguishes single-select from multi-select sessions.
type pickMode int

const (
	modeSingle pickMode = iota
	modeMulti
)

// selection holds the cursor position and, in multi mode, the set of toggled
// item indices. Indices into the item slice are the stable identity for the
// lifetime of a session.
type selection struct {
	cursor   int
	selected map[int]struct{}
}

func newSelection(m pickMode) selection {
	s := selection{}
	if m == modeMulti {
		s.selected = make(map[int]struct{})
	}
	return s
}

func (s selection) clone() selection {
	out := selection{cursor: s.cursor}
	if s.selected != nil {
		out.selected = make(map[int]struct{}, len(s.selected))
		for i := range s.selected {
			out.selected[i] = struct{}{}
		}
	}
	return out
}

func (s selection) equal(o selection) bool {
	if s.cursor != o.cursor || len(s.selected) != len(o.selected) {
		return false
	}
	for i := range s.selected {
		if _, ok := o.selected[i]; !ok {
			return false
		}
	}
	return true
}

// indices returns the selected indices in ascending order. Confirmed results
// are always ordered by item index, never by toggle order.
func (s selection) indices() []int {
	out := make([]int, 0, len(s.selected))
	for i := range s.selected {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// apply returns the selection that results from ev over n items. It never
// mutates its input, so scripted event sequences can be replayed against it
// without a terminal. Toggle events are meaningful only in multi mode.
func apply(s selection, ev keyEvent, n int, m pickMode) selection {
	switch ev {
	case keyUp:
		next := s.clone()
		next.cursor = (s.cursor - 1 + n) % n
		return next
	case keyDown:
		next := s.clone()
		next.cursor = (s.cursor + 1) % n
		return next
	case keyToggle:
		if m != modeMulti {
			return s
		}
		next := s.clone()
		if _, ok := next.selected[s.cursor]; ok {
			delete(next.selected, s.cursor)
		} else {
			next.selected[s.cursor] = struct{}{}
		}
		return next
	case keyToggleAll:
		if m != modeMulti {
			return s
		}
		next := s.clone()
		if len(next.selected) == n {
			next.selected = make(map[int]struct{})
		} else {
			for i := 0; i < n; i++ {
				next.selected[i] = struct{}{}
			}
		}
		return next
	}
	return s
}
