package selection

import "testing"

func TestToggle(t *testing.T) {
	s := NewState()

	if !s.Toggle("bandalos-chinos-d1") {
		t.Fatal("Toggle() = false on editable state")
	}
	if !s.Has("bandalos-chinos-d1") || s.Len() != 1 {
		t.Fatal("event not selected after toggle")
	}

	// Toggling the same id twice restores the original membership.
	if !s.Toggle("bandalos-chinos-d1") {
		t.Fatal("second Toggle() = false")
	}
	if s.Has("bandalos-chinos-d1") || s.Len() != 0 {
		t.Fatal("event still selected after toggle pair")
	}
}

func TestToggleKeepsInsertionOrder(t *testing.T) {
	s := NewState()
	s.Toggle("c")
	s.Toggle("a")
	s.Toggle("b")
	s.Toggle("a") // remove from the middle

	got := s.Selected()
	want := []string{"c", "b"}
	if len(got) != len(want) {
		t.Fatalf("Selected() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Selected() = %v, want %v", got, want)
		}
	}
}

func TestToggleReadOnly(t *testing.T) {
	s := DecodeQuery("ids=a,b&view=shared")
	if !s.ReadOnly() {
		t.Fatal("state not read-only")
	}

	if s.Toggle("c") {
		t.Error("Toggle() mutated a read-only state")
	}
	if s.Len() != 2 {
		t.Errorf("selection changed in read-only mode: %v", s.Selected())
	}

	// Switching to edit is the only way out and keeps the selection.
	s.SwitchToEdit()
	if s.ReadOnly() {
		t.Error("still read-only after SwitchToEdit")
	}
	if !s.Toggle("c") || s.Len() != 3 {
		t.Error("toggle failed after switching to edit")
	}
}

func TestFilterActive(t *testing.T) {
	s := NewState()
	s.SetShowOnlySelected(true)

	// The filter must never hide everything: with an empty selection it
	// degrades to the unfiltered view.
	if s.FilterActive() {
		t.Error("FilterActive() = true with empty selection")
	}

	s.Toggle("a")
	if !s.FilterActive() {
		t.Error("FilterActive() = false with a non-empty selection")
	}

	s.Toggle("a")
	if s.FilterActive() {
		t.Error("FilterActive() = true again after selection emptied")
	}
}
