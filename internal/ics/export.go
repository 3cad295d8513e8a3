// Package ics renders a selection of festival events as an iCalendar
// document so users can drop their personal agenda into any calendar
// app.
package ics

import (
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/lucianorarrua/cosquin-rock-lineup/internal/model"
)

const (
	productID = "-//Cosquin Rock//Lineup//ES"
	uidDomain = "lineup.cosquinrock.net"
)

// Generate builds an iCalendar document with one VEVENT per event.
// Timestamps are emitted in UTC basic format and the serializer uses
// CRLF line endings as the format requires. UIDs are derived from the
// stable event IDs, so re-importing an updated agenda replaces the
// previous entries instead of duplicating them.
//
// Callers are expected to guard against an empty selection themselves;
// an empty slice still produces a valid, empty VCALENDAR.
func Generate(events []model.FestivalEvent, calName string) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)
	if calName != "" {
		cal.SetXWRCalName(calName)
	}

	now := time.Now().UTC()

	for _, ev := range events {
		ve := cal.AddEvent(fmt.Sprintf("%s@%s", ev.ID, uidDomain))
		ve.SetDtStampTime(now)
		ve.SetStartAt(ev.StartAt)
		ve.SetEndAt(ev.EndAt)
		ve.SetSummary(ev.Artist)
		ve.SetLocation(fmt.Sprintf("Escenario %s", ev.Stage))
		ve.SetDescription(fmt.Sprintf("%s en el escenario %s (día %d)", ev.Artist, ev.Stage, ev.Day))
	}

	return cal.Serialize(ical.WithNewLineWindows)
}
