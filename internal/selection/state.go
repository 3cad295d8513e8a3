// Package selection holds the user's personal agenda: the set of
// selected event IDs plus the two view flags, and the query-string
// codec that makes that state shareable through a URL. The URL is the
// only persistence substrate; there is no server-side copy.
package selection

// State is the only mutable entity in the system. Selected IDs keep
// their insertion order so that encoding the state is deterministic.
type State struct {
	ids      []string
	member   map[string]bool
	readOnly bool
	showOnly bool
}

// NewState returns the first-visit state: editable, unfiltered, empty
// selection.
func NewState() *State {
	return &State{member: map[string]bool{}}
}

// Toggle flips membership of id in the selection and reports whether
// the state changed. In read-only mode it is a strict no-op.
func (s *State) Toggle(id string) bool {
	if s.readOnly || id == "" {
		return false
	}
	if s.member[id] {
		delete(s.member, id)
		for i, existing := range s.ids {
			if existing == id {
				s.ids = append(s.ids[:i], s.ids[i+1:]...)
				break
			}
		}
		return true
	}
	s.member[id] = true
	s.ids = append(s.ids, id)
	return true
}

// Has reports whether id is currently selected.
func (s *State) Has(id string) bool {
	return s.member[id]
}

// Selected returns the selected IDs in insertion order.
func (s *State) Selected() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

// Len returns the number of selected IDs.
func (s *State) Len() int {
	return len(s.ids)
}

// ReadOnly reports whether the state came from a shared link and
// toggling is disabled.
func (s *State) ReadOnly() bool {
	return s.readOnly
}

// SwitchToEdit leaves read-only mode, preserving the selection. It is
// the only way out of read-only; the only way in is decoding a URL
// that carries the shared-view marker.
func (s *State) SwitchToEdit() {
	s.readOnly = false
}

// ShowOnlySelected reports the raw filter flag. Most callers want
// FilterActive instead.
func (s *State) ShowOnlySelected() bool {
	return s.showOnly
}

// SetShowOnlySelected toggles the agenda filter. The flag is
// independent of selection membership and of read-only mode.
func (s *State) SetShowOnlySelected(v bool) {
	s.showOnly = v
}

// FilterActive reports whether the filtered view actually applies: the
// filter must never hide everything, so with an empty selection it
// degrades to the unfiltered view.
func (s *State) FilterActive() bool {
	return s.showOnly && len(s.ids) > 0
}

// Equal reports whether two states are indistinguishable: same IDs in
// the same order and same flags.
func (s *State) Equal(o *State) bool {
	if s.readOnly != o.readOnly || s.showOnly != o.showOnly || len(s.ids) != len(o.ids) {
		return false
	}
	for i, id := range s.ids {
		if o.ids[i] != id {
			return false
		}
	}
	return true
}
