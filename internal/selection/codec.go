package selection

import (
	"net/url"
	"strings"
)

// Query-string vocabulary. This is the canonical wire format for a
// shared agenda; anything else found in the query is ignored.
const (
	ParamIDs    = "ids"
	ParamView   = "view"
	ParamFilter = "filter"

	ViewShared     = "shared"
	FilterSelected = "selected"
)

// Decode reads a State out of URL query parameters.
//
// The URL is an advisory cache, not a strict protocol: a missing or
// garbled parameter never fails, it just decodes to the default
// (empty, editable, unfiltered). Empty tokens from stray commas in the
// ids list are discarded.
func Decode(q url.Values) *State {
	s := NewState()

	if raw := q.Get(ParamIDs); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			id = strings.TrimSpace(id)
			if id == "" || s.member[id] {
				continue
			}
			s.member[id] = true
			s.ids = append(s.ids, id)
		}
	}

	s.readOnly = q.Get(ParamView) == ViewShared
	s.showOnly = q.Get(ParamFilter) == FilterSelected

	return s
}

// Encode maps a State onto its canonical query parameters:
//
//   - "ids" is the comma-joined selection, omitted entirely when empty;
//   - "view=shared" is present iff the state is read-only;
//   - "filter=selected" is present iff the agenda filter is actually in
//     effect, i.e. never with an empty selection.
//
// Encode is idempotent: encoding the decode of an encoded state yields
// the same parameters.
func Encode(s *State) url.Values {
	q := url.Values{}

	if len(s.ids) > 0 {
		q.Set(ParamIDs, strings.Join(s.ids, ","))
	}
	if s.readOnly {
		q.Set(ParamView, ViewShared)
	}
	if s.FilterActive() {
		q.Set(ParamFilter, FilterSelected)
	}

	return q
}

// EncodeQuery renders the canonical query string. url.Values.Encode
// sorts keys, so equal states always produce byte-identical strings.
func EncodeQuery(s *State) string {
	return Encode(s).Encode()
}

// ShareQuery renders the query string for a read-only share link of
// the given state. Loading such a link is the only way into read-only
// mode; the state itself is not mutated here.
func ShareQuery(s *State) string {
	q := Encode(s)
	q.Set(ParamView, ViewShared)
	return q.Encode()
}

// DecodeQuery parses a raw query string, tolerating malformed input by
// falling back to the default state.
func DecodeQuery(raw string) *State {
	q, err := url.ParseQuery(raw)
	if err != nil {
		return NewState()
	}
	return Decode(q)
}
