package selection

import (
	"net/url"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	// Every reachable state must survive decode(encode(s)). The filter
	// flag is only reachable alongside a non-empty selection, per the
	// "never hide everything" invariant.
	states := []*State{
		NewState(),
		DecodeQuery("ids=a"),
		DecodeQuery("ids=a,b,c"),
		DecodeQuery("ids=a,b&view=shared"),
		DecodeQuery("ids=a,b&filter=selected"),
		DecodeQuery("ids=a,b&view=shared&filter=selected"),
		DecodeQuery("view=shared"),
	}

	for _, s := range states {
		got := Decode(Encode(s))
		if !s.Equal(got) {
			t.Errorf("round trip changed state: %q -> %q", EncodeQuery(s), EncodeQuery(got))
		}
	}
}

func TestEncodeIdempotent(t *testing.T) {
	s := DecodeQuery("ids=b,a&view=shared&filter=selected")

	first := EncodeQuery(s)
	second := EncodeQuery(Decode(Encode(s)))
	if first != second {
		t.Errorf("encode not idempotent: %q vs %q", first, second)
	}
}

func TestEncodeOmissions(t *testing.T) {
	tests := []struct {
		name  string
		state *State
		want  url.Values
	}{
		{
			name:  "empty state encodes to nothing",
			state: NewState(),
			want:  url.Values{},
		},
		{
			name:  "ids only",
			state: DecodeQuery("ids=a,b"),
			want:  url.Values{"ids": {"a,b"}},
		},
		{
			name:  "shared flag without selection",
			state: DecodeQuery("view=shared"),
			want:  url.Values{"view": {"shared"}},
		},
		{
			name: "filter dropped when selection is empty",
			state: func() *State {
				s := NewState()
				s.SetShowOnlySelected(true)
				return s
			}(),
			want: url.Values{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Encode(tt.state)
			if got.Encode() != tt.want.Encode() {
				t.Errorf("Encode() = %q, want %q", got.Encode(), tt.want.Encode())
			}
		})
	}
}

func TestDecodeTolerance(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		wantIDs  int
		readOnly bool
		showOnly bool
	}{
		{"empty query", "", 0, false, false},
		{"stray commas discarded", "ids=,,a,,b,", 2, false, false},
		{"duplicate ids collapsed", "ids=a,a,a", 1, false, false},
		{"unknown view value ignored", "view=editor", 0, false, false},
		{"unknown filter value ignored", "ids=a&filter=everything", 1, false, false},
		{"case sensitive markers", "view=SHARED&filter=Selected", 0, false, false},
		{"well-formed shared link", "ids=a,b&view=shared&filter=selected", 2, true, true},
		{"unrelated params ignored", "utm_source=x&ids=a", 1, false, false},
		{"garbled query falls back to default", "ids=%zz;;;", 0, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DecodeQuery(tt.query)
			if s.Len() != tt.wantIDs {
				t.Errorf("Len() = %d, want %d", s.Len(), tt.wantIDs)
			}
			if s.ReadOnly() != tt.readOnly {
				t.Errorf("ReadOnly() = %v, want %v", s.ReadOnly(), tt.readOnly)
			}
			if s.ShowOnlySelected() != tt.showOnly {
				t.Errorf("ShowOnlySelected() = %v, want %v", s.ShowOnlySelected(), tt.showOnly)
			}
		})
	}
}

func TestShareQuery(t *testing.T) {
	s := DecodeQuery("ids=a,b")
	got := ShareQuery(s)

	shared := DecodeQuery(got)
	if !shared.ReadOnly() {
		t.Errorf("share query %q does not decode read-only", got)
	}
	if shared.Len() != 2 {
		t.Errorf("share query %q lost the selection", got)
	}
	if s.ReadOnly() {
		t.Error("ShareQuery mutated the source state")
	}

	// Loading the share link and switching to edit keeps the selection.
	shared.SwitchToEdit()
	if shared.ReadOnly() || shared.Len() != 2 {
		t.Error("switch to edit from shared link lost state")
	}
}
