// Package timegrid converts UTC instants into the festival's grid
// coordinate space: minutes relative to the day's start hour, with
// early-morning times re-anchored so a set after midnight renders as a
// continuation of the previous evening instead of wrapping to the top
// of the grid.
package timegrid

import (
	"fmt"
	"time"
)

const (
	// MinutesPerDay is one calendar day in minutes.
	MinutesPerDay = 24 * 60
)

// LocalMinutes converts a UTC instant into local clock minutes using a
// fixed hour offset, then re-anchors it against the grid start hour:
// any local time earlier than startHour (e.g. 01:00 when the grid
// starts at 14:00) gains a full day, so 00:00 becomes 1440 and 01:00
// becomes 1500. Exactly startHour stays un-shifted.
//
// The offset is deliberately a constant, not a timezone rule: the
// festival window never crosses a DST transition in its region.
func LocalMinutes(instant time.Time, utcOffsetHours, startHour int) int {
	utc := instant.UTC()
	minutes := utc.Hour()*60 + utc.Minute() + utcOffsetHours*60

	// Wrap into [0, 1440) before re-anchoring; a negative offset can
	// push the raw value below zero.
	minutes = ((minutes % MinutesPerDay) + MinutesPerDay) % MinutesPerDay

	if minutes < startHour*60 {
		minutes += MinutesPerDay
	}
	return minutes
}

// Normalize shifts re-anchored local minutes into the grid-relative
// coordinate where 0 is the grid start hour.
func Normalize(localMinutes, startHour int) int {
	return localMinutes - startHour*60
}

// NormalizeUTC is the composition of LocalMinutes and Normalize.
func NormalizeUTC(instant time.Time, utcOffsetHours, startHour int) int {
	return Normalize(LocalMinutes(instant, utcOffsetHours, startHour), startHour)
}

// HourLabel is the inverse of Normalize for display purposes: it maps a
// grid-relative minute back to a local wall-clock "HH:MM" label,
// wrapping past midnight (e.g. grid minute 660 with a 14:00 start
// formats as "01:00").
func HourLabel(gridMinute, startHour int) string {
	local := gridMinute + startHour*60
	hour := (local / 60) % 24
	minute := local % 60

	return fmt.Sprintf("%02d:%02d", hour, minute)
}
