// Package layout projects grid-relative minutes onto pixel geometry.
// Stages are independent columns, so no collision handling is needed;
// the projector only computes vertical position, height and gridlines.
package layout

import (
	"github.com/lucianorarrua/cosquin-rock-lineup/internal/model"
	"github.com/lucianorarrua/cosquin-rock-lineup/internal/timegrid"
)

// Projector converts minutes to pixels for one rendered grid.
type Projector struct {
	// PixelsPerMinute is the vertical scale of the grid.
	PixelsPerMinute int

	// MinEventHeight is the floor applied to very short sets so they
	// stay tappable regardless of true duration.
	MinEventHeight int

	// GridStartHour is needed to turn grid minutes back into wall-clock
	// labels on the hour lines.
	GridStartHour int
}

// Top returns the pixel offset of an event from the top of its day's
// grid, whose origin is gridStartMinute.
func (p Projector) Top(ev model.FestivalEvent, gridStartMinute int) int {
	return (ev.StartMinutes - gridStartMinute) * p.PixelsPerMinute
}

// Height returns the pixel height of an event block, never below the
// minimum tappable height.
func (p Projector) Height(ev model.FestivalEvent) int {
	h := ev.Duration * p.PixelsPerMinute
	if h < p.MinEventHeight {
		return p.MinEventHeight
	}
	return h
}

// HourLine is a horizontal gridline with its wall-clock label.
type HourLine struct {
	Minute int    `json:"minute"`
	Top    int    `json:"top"`
	Label  string `json:"label"`
}

// HourLines returns a gridline for every full hour between the day's
// start and end minute, both inclusive. Labels wrap past midnight, so
// a grid running 14:00-27:00 ends with "03:00".
func (p Projector) HourLines(day model.DaySchedule) []HourLine {
	lines := make([]HourLine, 0, (day.EndMinute-day.StartMinute)/60+1)
	for m := day.StartMinute; m <= day.EndMinute; m += 60 {
		lines = append(lines, HourLine{
			Minute: m,
			Top:    (m - day.StartMinute) * p.PixelsPerMinute,
			Label:  timegrid.HourLabel(m, p.GridStartHour),
		})
	}
	return lines
}
