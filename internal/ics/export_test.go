package ics

import (
	"strings"
	"testing"
	"time"

	"github.com/lucianorarrua/cosquin-rock-lineup/internal/model"
)

func testEvents() []model.FestivalEvent {
	return []model.FestivalEvent{
		{
			ID:      "bandalos-chinos-d1",
			Artist:  "Bandalos Chinos",
			Day:     1,
			Stage:   "Norte",
			StartAt: time.Date(2026, 2, 15, 1, 30, 0, 0, time.UTC),
			EndAt:   time.Date(2026, 2, 15, 2, 30, 0, 0, time.UTC),
		},
		{
			ID:      "divididos-d1",
			Artist:  "Divididos",
			Day:     1,
			Stage:   "Norte",
			StartAt: time.Date(2026, 2, 15, 3, 10, 0, 0, time.UTC),
			EndAt:   time.Date(2026, 2, 15, 4, 40, 0, 0, time.UTC),
		},
	}
}

func TestGenerate(t *testing.T) {
	body := Generate(testEvents(), "Mi agenda")

	if !strings.HasPrefix(body, "BEGIN:VCALENDAR") {
		t.Error("missing VCALENDAR header")
	}
	if !strings.Contains(body, "END:VCALENDAR") {
		t.Error("missing VCALENDAR terminator")
	}
	if n := strings.Count(body, "BEGIN:VCALENDAR"); n != 1 {
		t.Errorf("got %d VCALENDAR blocks, want 1", n)
	}

	if n := strings.Count(body, "BEGIN:VEVENT"); n != 2 {
		t.Errorf("got %d BEGIN:VEVENT, want 2", n)
	}
	if n := strings.Count(body, "END:VEVENT"); n != 2 {
		t.Errorf("got %d END:VEVENT, want 2", n)
	}

	// CRLF line endings per RFC 5545.
	if !strings.Contains(body, "\r\n") {
		t.Error("output does not use CRLF line endings")
	}

	// UIDs derived from event IDs, one per event, unique.
	for _, uid := range []string{"bandalos-chinos-d1@", "divididos-d1@"} {
		if n := strings.Count(body, uid); n != 1 {
			t.Errorf("UID %q appears %d times, want 1", uid, n)
		}
	}

	// UTC basic-format timestamps.
	if !strings.Contains(body, "20260215T013000Z") {
		t.Error("missing UTC DTSTART for first event")
	}
	if !strings.Contains(body, "20260215T044000Z") {
		t.Error("missing UTC DTEND for second event")
	}

	for _, want := range []string{"SUMMARY:Bandalos Chinos", "SUMMARY:Divididos", "LOCATION:Escenario Norte"} {
		if !strings.Contains(body, want) {
			t.Errorf("missing %q", want)
		}
	}
}

func TestGenerateEmpty(t *testing.T) {
	body := Generate(nil, "")

	if strings.Contains(body, "BEGIN:VEVENT") {
		t.Error("empty selection produced VEVENT blocks")
	}
	if !strings.Contains(body, "BEGIN:VCALENDAR") {
		t.Error("empty calendar is not a valid VCALENDAR")
	}
}
